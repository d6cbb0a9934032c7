package quoting

import (
	"errors"
	"reflect"
	"testing"
)

var (
	cutVinyl = VinylMedia{
		ID: "orajet-610", Name: "Gloss 610", RollWidthMM: 610, PricePerLM: 8,
	}
	printVinyl = VinylMedia{
		ID: "orajet-1370", Name: "Print 1370", RollWidthMM: 1370, PrintWidthMM: 1340, PricePerLM: 6,
	}
)

func plainSettings() Settings {
	return Normalize(RawSettings{
		VinylWasteLM: f(0),
		SetupFee:     f(0),
	})
}

func TestQuoteSolidCutVinylScenario(t *testing.T) {
	// 1000x500 sign on a 610mm cutter with 5mm margin: one 505mm row.
	b, err := Quote(SignRequest{
		Mode: ModeSolidColourCutVinyl, WidthMM: 1000, HeightMM: 500, Quantity: 1,
	}, &cutVinyl, nil, Normalize(RawSettings{}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "vinyl lm", b.VinylLM, 0.505)
	nearlyEqual(t, "vinyl with waste", b.VinylLMWithWaste, 0.505) // cut-only adds no waste
	nearlyEqual(t, "materials", b.Materials, 4.04)                // 0.505 * 8
	nearlyEqual(t, "ink", b.Ink, 0)
}

func TestQuotePrintedVinylAddsInkAndWaste(t *testing.T) {
	s := Normalize(RawSettings{InkPerSqM: f(4)})
	b, err := Quote(SignRequest{
		Mode: ModePrintedVinylOnly, WidthMM: 1000, HeightMM: 500, Quantity: 1,
		VinylSplitMode: SplitAuto,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "vinyl lm", b.VinylLM, 0.505)
	nearlyEqual(t, "with waste", b.VinylLMWithWaste, 1.505)
	nearlyEqual(t, "materials", b.Materials, 9.03) // 1.505 * 6
	nearlyEqual(t, "ink", b.Ink, 2)                // 0.5 sqm * 4
}

func TestQuoteDoubleSidedDoublesVinylAndInk(t *testing.T) {
	s := Normalize(RawSettings{InkPerSqM: f(4), VinylWasteLM: f(0)})
	single, err := Quote(SignRequest{
		Mode: ModePrintAndCutVinyl, WidthMM: 1000, HeightMM: 500, Quantity: 1,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	double, err := Quote(SignRequest{
		Mode: ModePrintAndCutVinyl, WidthMM: 1000, HeightMM: 500, Quantity: 1,
		DoubleSided: true,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "vinyl lm", double.VinylLM, 2*single.VinylLM)
	nearlyEqual(t, "ink", double.Ink, 2*single.Ink)
}

func TestQuotePrintAndCutAddOns(t *testing.T) {
	s := Normalize(RawSettings{
		VinylWasteLM:     f(0),
		TapePerLM:        f(2),
		HemEyeletPerUnit: f(1.5),
		FinishingUplifts: map[string]float64{FinishingHemEyelet: 0.1},
	})
	b, err := Quote(SignRequest{
		Mode: ModePrintAndCutVinyl, WidthMM: 1000, HeightMM: 500, Quantity: 2,
		ApplicationTape: true, Finishing: FinishingHemEyelet,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Rotated layout: 2 per row, one 1.005m row. Tape 2/lm on 1.005 lm.
	nearlyEqual(t, "vinyl lm", b.VinylLM, 1.005)
	nearlyEqual(t, "materials", b.Materials, 1.005*6+1.005*2)
	nearlyEqual(t, "cutting", b.Cutting, 3) // hem/eyelets 1.5 x 2
	// 10% finishing uplift on materials+ink+cutting+setup, rounded at
	// emission: 0.1 x 11.04 = 1.104 -> 1.10.
	nearlyEqual(t, "uplift", b.FinishingUplift, 1.1)
}

func TestQuoteVinylOnSubstrateUsesPanelForDelivery(t *testing.T) {
	s := Normalize(RawSettings{
		VinylWasteLM: f(0),
		Delivery: &DeliveryRule{Base: 5, Bands: []DeliveryBand{
			{Name: "small", MaxCM: 130, Charge: 3},
			{Name: "large", MaxCM: 250, Charge: 12},
		}},
	})
	b, err := Quote(SignRequest{
		Mode: ModePrintedVinylOnSubstrate, WidthMM: 2400, HeightMM: 600, Quantity: 1,
		PanelSplits: 2, PanelOrientation: OrientationVertical,
	}, &printVinyl, &foamex, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Panels are 1200x600, so the 130cm band applies even though the whole
	// sign is 240cm long.
	if b.DeliveryBand != "small" {
		t.Fatalf("expected panel-sized delivery band, got %q", b.DeliveryBand)
	}
	nearlyEqual(t, "delivery", b.Delivery, 8)
	nearlyEqual(t, "sheets charged", b.SheetsCharged, 0.5)
}

func TestQuoteSubstrateOnly(t *testing.T) {
	b, err := Quote(SignRequest{
		Mode: ModeSubstrateOnly, WidthMM: 300, HeightMM: 300, Quantity: 1,
	}, nil, &foamex, plainSettings())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "sheets charged", b.SheetsCharged, 0.5)
	nearlyEqual(t, "materials", b.Materials, 15)
	nearlyEqual(t, "ink", b.Ink, 0)
	nearlyEqual(t, "vinyl lm", b.VinylLM, 0)
}

func TestQuotePlotterCutReplacesDefaultCutting(t *testing.T) {
	s := Normalize(RawSettings{
		VinylWasteLM:   f(0),
		CuttingPerSign: f(2),
		PlotterCutRates: map[string]PlotterCutRate{
			"contour": {Setup: 10, PerMetre: 1.5, PerPiece: 0.5},
		},
	})

	withDefault, err := Quote(SignRequest{
		Mode: ModePrintedVinylOnly, WidthMM: 1000, HeightMM: 500, Quantity: 4,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	nearlyEqual(t, "default cutting", withDefault.Cutting, 8)

	withPlotter, err := Quote(SignRequest{
		Mode: ModePrintedVinylOnly, WidthMM: 1000, HeightMM: 500, Quantity: 4,
		PlotterCut: "contour",
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// setup 10 + 1.5 x 3m perimeter + 0.5 x 4 pieces.
	nearlyEqual(t, "plotter cutting", withPlotter.Cutting, 16.5)
}

func TestQuoteProfitMultiplierAppliesToMaterialsAndInk(t *testing.T) {
	s := Normalize(RawSettings{
		VinylWasteLM:     f(0),
		InkPerSqM:        f(4),
		SetupFee:         f(10),
		CuttingPerSign:   f(2),
		ProfitMultiplier: f(2.5),
	})
	b, err := Quote(SignRequest{
		Mode: ModePrintedVinylOnly, WidthMM: 1000, HeightMM: 500, Quantity: 1,
	}, &printVinyl, nil, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// (materials 3.03 + ink 2) x 2.5 + setup 10 + cutting 2.
	nearlyEqual(t, "pre-delivery", b.PreDelivery, 24.58)
	nearlyEqual(t, "total", b.Total, 24.58)
}

func TestQuoteMissingSelections(t *testing.T) {
	if _, err := Quote(SignRequest{Mode: ModeSubstrateOnly, WidthMM: 100, HeightMM: 100, Quantity: 1},
		nil, nil, plainSettings()); !errors.Is(err, ErrSubstrateRequired) {
		t.Fatalf("expected ErrSubstrateRequired, got %v", err)
	}
	if _, err := Quote(SignRequest{Mode: ModePrintAndCutVinyl, WidthMM: 100, HeightMM: 100, Quantity: 1},
		nil, nil, plainSettings()); !errors.Is(err, ErrMediaRequired) {
		t.Fatalf("expected ErrMediaRequired, got %v", err)
	}
	if _, err := Quote(SignRequest{Mode: ModePrintedVinylOnSubstrate, WidthMM: 100, HeightMM: 100, Quantity: 1},
		&printVinyl, nil, plainSettings()); !errors.Is(err, ErrSubstrateRequired) {
		t.Fatalf("expected ErrSubstrateRequired, got %v", err)
	}
	if _, err := Quote(SignRequest{Mode: ModePrintedVinylOnly, WidthMM: 100, HeightMM: 100, Quantity: 1},
		&cutVinyl, nil, plainSettings()); !errors.Is(err, ErrNoUsableWidth) {
		t.Fatalf("expected ErrNoUsableWidth for non-printable media, got %v", err)
	}
	if _, err := Quote(SignRequest{Mode: "embroidery", WidthMM: 100, HeightMM: 100, Quantity: 1},
		nil, nil, plainSettings()); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestQuoteDeterminism(t *testing.T) {
	req := SignRequest{
		Mode: ModePrintedVinylOnSubstrate, WidthMM: 1200, HeightMM: 900, Quantity: 3,
		PanelSplits: 2, PanelOrientation: OrientationHorizontal,
		Finishing: "laminated", Delivery: DeliveryBoxed,
	}
	s := Normalize(RawSettings{
		InkPerSqM:        f(4),
		SetupFee:         f(15),
		FinishingUplifts: map[string]float64{"laminated": 0.25},
		DeliveryBase:     f(5),
		DeliveryBands:    []DeliveryBand{{Name: "std", MaxCM: 150, Charge: 8}},
	})

	first, err := Quote(req, &printVinyl, &foamex, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Quote(req, &printVinyl, &foamex, s)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("quote is not deterministic:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}
