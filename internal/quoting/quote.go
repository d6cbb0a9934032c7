package quoting

import (
	"errors"
	"fmt"
	"math"
)

// Request-validation failures. All are synchronous and non-retryable; no
// partial breakdown is produced alongside them.
var (
	ErrMediaRequired     = errors.New("no vinyl media selected")
	ErrSubstrateRequired = errors.New("no substrate selected")
	ErrPanelTooLarge     = errors.New("panel cannot be cut from the selected sheet")
	ErrNoUsableWidth     = errors.New("media has no usable width")
)

// Quote computes the full price breakdown for one sign request against a
// catalog snapshot and normalized settings. It is pure: identical inputs
// always yield identical output.
func Quote(req SignRequest, media *VinylMedia, sub *Substrate, s Settings) (*Breakdown, error) {
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	w, h := req.WidthMM, req.HeightMM

	b := &Breakdown{
		Mode:  req.Mode,
		Lines: []CostLine{},
		Notes: []string{},
	}

	var materials, ink, cutting float64
	setup := s.SetupFee
	defaultCutting := true
	longestMM := math.Max(w, h)

	switch req.Mode {
	case ModeSolidColourCutVinyl:
		if media == nil {
			return nil, ErrMediaRequired
		}
		eff := ResolveEffectiveWidths(*media, s).CutMM
		if eff <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoUsableWidth, media.Name)
		}
		plan := planCutRows(w, h, qty, s.VinylMarginMM, eff)
		lm := plan.LengthMM / 1000
		b.VinylLM = lm
		b.VinylLMWithWaste = lm
		vinylCost := lm * media.PricePerLM
		materials += vinylCost
		b.Lines = append(b.Lines, CostLine{Label: "vinyl: " + media.Name, Amount: vinylCost})
		b.Notes = append(b.Notes, plan.Note,
			fmt.Sprintf("%.3f lm of %s at %.2f/lm", lm, media.Name, media.PricePerLM))

		if rate, ok := s.ComplexityRates[req.Complexity]; ok && req.Complexity != "" {
			surcharge := rate * float64(qty)
			cutting += surcharge
			b.Notes = append(b.Notes, fmt.Sprintf("complexity %q: %.2f per unit", req.Complexity, rate))
		}

	case ModePrintAndCutVinyl, ModePrintedVinylOnly, ModePrintedVinylOnSubstrate:
		if media == nil {
			return nil, ErrMediaRequired
		}
		eff := ResolveEffectiveWidths(*media, s).PrintMM
		if eff <= 0 {
			return nil, fmt.Errorf("%w: %s is not printable", ErrNoUsableWidth, media.Name)
		}

		plan := PlanVinyl(VinylLayoutInput{
			WidthMM:          w,
			HeightMM:         h,
			Quantity:         qty,
			GutterMM:         s.VinylMarginMM,
			OverlapMM:        s.TileOverlapMM,
			EffectiveWidthMM: eff,
			SplitMode:        req.VinylSplitMode,
			Splits:           req.VinylSplits,
			SplitOrientation: req.VinylSplitOrientation,
		})
		lm := plan.LengthMM / 1000

		ink = w * h / 1e6 * float64(qty) * s.InkPerSqM
		if req.DoubleSided {
			lm *= 2
			ink *= 2
			b.Notes = append(b.Notes, "double sided: vinyl and ink doubled")
		}
		lmWithWaste := lm + s.VinylWasteLM
		b.VinylLM = lm
		b.VinylLMWithWaste = lmWithWaste

		vinylCost := lmWithWaste * media.PricePerLM
		materials += vinylCost
		b.Lines = append(b.Lines, CostLine{Label: "vinyl: " + media.Name, Amount: vinylCost})
		b.Notes = append(b.Notes, plan.Note,
			fmt.Sprintf("%.3f lm printed + %.2f lm waste at %.2f/lm", lm, s.VinylWasteLM, media.PricePerLM))

		if req.Mode == ModePrintAndCutVinyl {
			if req.ApplicationTape {
				tape := lmWithWaste * s.TapePerLM
				materials += tape
				b.Lines = append(b.Lines, CostLine{Label: "application tape", Amount: tape})
			}
			if req.WhiteBacking {
				backing := lmWithWaste * s.WhiteBackingPerLM
				materials += backing
				b.Lines = append(b.Lines, CostLine{Label: "white backing", Amount: backing})
			}
			if req.Finishing == FinishingHemEyelet && s.HemEyeletPerUnit > 0 {
				hem := s.HemEyeletPerUnit * float64(qty)
				cutting += hem
				b.Notes = append(b.Notes, fmt.Sprintf("hem and eyelets: %.2f per unit", s.HemEyeletPerUnit))
			}
		}

		if req.Mode == ModePrintedVinylOnSubstrate {
			if sub == nil {
				return nil, ErrSubstrateRequired
			}
			pp, err := PlanPanels(w, h, qty, req.PanelSplits, req.PanelOrientation, *sub, s.SubstrateMarginMM)
			if err != nil {
				return nil, err
			}
			materials += pp.SheetCost
			b.SheetsNeeded = pp.SheetsNeeded
			b.SheetsCharged = pp.SheetsCharged
			b.Lines = append(b.Lines, CostLine{Label: "substrate: " + sub.Name, Amount: pp.SheetCost})
			b.Notes = append(b.Notes, pp.Note)
			longestMM = pp.LongestSideMM
		}

	case ModeSubstrateOnly:
		if sub == nil {
			return nil, ErrSubstrateRequired
		}
		pp, err := PlanPanels(w, h, qty, req.PanelSplits, req.PanelOrientation, *sub, s.SubstrateMarginMM)
		if err != nil {
			return nil, err
		}
		materials += pp.SheetCost
		b.SheetsNeeded = pp.SheetsNeeded
		b.SheetsCharged = pp.SheetsCharged
		b.Lines = append(b.Lines, CostLine{Label: "substrate: " + sub.Name, Amount: pp.SheetCost})
		b.Notes = append(b.Notes, pp.Note)
		longestMM = pp.LongestSideMM

	default:
		return nil, fmt.Errorf("unknown product mode %q", req.Mode)
	}

	// Cross-cutting add-ons.
	if req.PlotterCut != "" {
		if rate, ok := s.PlotterCutRates[req.PlotterCut]; ok {
			perimeterM := 2 * (w + h) / 1000
			plotter := rate.Setup + rate.PerMetre*perimeterM + rate.PerPiece*float64(qty)
			cutting += plotter
			defaultCutting = false
			b.Notes = append(b.Notes, fmt.Sprintf("plotter cut %q: %.2f", req.PlotterCut, plotter))
		}
	}
	if defaultCutting {
		cutting += s.CuttingPerSign * float64(qty)
	}

	base := materials + ink + cutting + setup
	var uplift float64
	if rate, ok := s.CuttingStyleUplifts[req.CuttingStyle]; ok && req.CuttingStyle != "" {
		uplift += base * rate
		b.Notes = append(b.Notes, fmt.Sprintf("cutting style %q: +%.0f%%", req.CuttingStyle, rate*100))
	}
	if rate, ok := s.FinishingUplifts[req.Finishing]; ok && req.Finishing != "" {
		uplift += base * rate
		b.Notes = append(b.Notes, fmt.Sprintf("finishing %q: +%.0f%%", req.Finishing, rate*100))
	}

	preDelivery := (materials+ink)*s.ProfitMultiplier + setup + cutting + uplift
	dq := ResolveDelivery(s.Delivery, longestMM, req.Delivery)
	total := preDelivery + dq.Charge

	b.Materials = round2(materials)
	b.Ink = round2(ink)
	b.Setup = round2(setup)
	b.Cutting = round2(cutting)
	b.FinishingUplift = round2(uplift)
	b.PreDelivery = round2(preDelivery)
	b.Delivery = round2(dq.Charge)
	b.Total = round2(total)
	b.DeliveryBand = dq.Band
	for i := range b.Lines {
		b.Lines[i].Amount = round2(b.Lines[i].Amount)
	}
	b.Notes = append(b.Notes,
		fmt.Sprintf("delivery band %q: %.2f", dq.Band, dq.Charge),
		fmt.Sprintf("total inc. VAT (%.0f%%): %.2f", s.VATRate*100, round2(total*(1+s.VATRate))))

	return b, nil
}

// round2 rounds a currency amount to two decimal places. Applied only at
// emission; intermediate accumulation stays unrounded.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
