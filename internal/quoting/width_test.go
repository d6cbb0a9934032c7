package quoting

import "testing"

func TestResolveEffectiveWidthsPicksBindingCap(t *testing.T) {
	media := VinylMedia{RollWidthMM: 1370, PrintWidthMM: 1340, MaxPrintWidthMM: 1200}
	s := Normalize(RawSettings{MaxPrintWidthMM: f(1600), MaxCutWidthMM: f(1300)})

	eff := ResolveEffectiveWidths(media, s)
	if eff.PrintMM != 1200 {
		t.Fatalf("print width should bind on the per-media cap, got %v", eff.PrintMM)
	}
	if eff.CutMM != 1300 {
		t.Fatalf("cut width should bind on the machine cap, got %v", eff.CutMM)
	}
}

func TestResolveEffectiveWidthsZeroCapsDoNotBind(t *testing.T) {
	media := VinylMedia{RollWidthMM: 610, PrintWidthMM: 600}
	eff := ResolveEffectiveWidths(media, Normalize(RawSettings{}))

	if eff.PrintMM != 600 || eff.CutMM != 610 {
		t.Fatalf("absent caps must not bind: %+v", eff)
	}
}

func TestResolveEffectiveWidthsNonPrintableMedia(t *testing.T) {
	media := VinylMedia{RollWidthMM: 610}
	eff := ResolveEffectiveWidths(media, Normalize(RawSettings{}))

	if eff.PrintMM != 0 {
		t.Fatalf("media without a printable width should resolve to 0, got %v", eff.PrintMM)
	}
}

func TestResolveEffectiveWidthsMonotonic(t *testing.T) {
	media := VinylMedia{RollWidthMM: 1370, PrintWidthMM: 1340}

	prev := ResolveEffectiveWidths(media, Normalize(RawSettings{})).PrintMM
	for _, limit := range []float64{1400, 1340, 1000, 500, 100} {
		eff := ResolveEffectiveWidths(media, Normalize(RawSettings{MaxPrintWidthMM: f(limit)})).PrintMM
		if eff > prev {
			t.Fatalf("effective width grew from %v to %v when cap shrank to %v", prev, eff, limit)
		}
		prev = eff
	}
}
