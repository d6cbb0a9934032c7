package quoting

import "math"

// EffectiveWidths is the binding printable and cuttable width of a media
// roll after machine-wide, roll and per-media caps are applied.
type EffectiveWidths struct {
	PrintMM float64
	CutMM   float64
}

// ResolveEffectiveWidths computes the minimum of every applicable cap for
// the given media. A cap of 0 does not bind.
func ResolveEffectiveWidths(m VinylMedia, s Settings) EffectiveWidths {
	return EffectiveWidths{
		PrintMM: minCap(s.MaxPrintWidthMM, m.PrintWidthMM, m.MaxPrintWidthMM),
		CutMM:   minCap(s.MaxCutWidthMM, m.RollWidthMM, m.MaxCutWidthMM),
	}
}

// minCap returns the smallest positive cap, or 0 when no cap binds.
func minCap(caps ...float64) float64 {
	bound := math.Inf(1)
	for _, c := range caps {
		if c > 0 && c < bound {
			bound = c
		}
	}
	if math.IsInf(bound, 1) {
		return 0
	}
	return bound
}
