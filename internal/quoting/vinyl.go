package quoting

import (
	"fmt"
	"math"
)

// VinylLayoutInput carries everything the roll planner needs for one
// layout decision. Dimensions are millimetres; EffectiveWidthMM is the
// binding printable (or cuttable) width of the chosen roll.
type VinylLayoutInput struct {
	WidthMM  float64
	HeightMM float64
	Quantity int

	GutterMM  float64
	OverlapMM float64

	EffectiveWidthMM float64

	SplitMode        SplitMode
	Splits           int
	SplitOrientation Orientation
}

// VinylPlan is the planner output: total roll length consumed and a
// human-readable description of the chosen layout.
type VinylPlan struct {
	LengthMM float64
	Note     string
}

// PlanVinyl computes the linear roll length required to produce the
// requested pieces. Auto mode lays out the whole sign, trying both
// orientations; custom mode first splits the sign into N pieces along the
// chosen orientation and lays those out. Either way, a piece wider than
// the roll falls back to overlap tiling.
func PlanVinyl(in VinylLayoutInput) VinylPlan {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	if in.SplitMode == SplitCustom && in.Splits > 1 {
		n := in.Splits
		if n > 6 {
			n = 6
		}
		pieceW, pieceH := in.WidthMM, in.HeightMM
		if in.SplitOrientation == OrientationVertical {
			pieceW = in.WidthMM / float64(n)
		} else {
			pieceH = in.HeightMM / float64(n)
		}
		plan := planRect(pieceW, pieceH, n*qty, in.GutterMM, in.OverlapMM, in.EffectiveWidthMM)
		plan.Note = fmt.Sprintf("split into %d pieces of %.0fx%.0fmm; %s", n, pieceW, pieceH, plan.Note)
		return plan
	}

	return planRect(in.WidthMM, in.HeightMM, qty, in.GutterMM, in.OverlapMM, in.EffectiveWidthMM)
}

// planRect lays out count copies of a w x h rectangle across the roll.
// Both orientations are evaluated; the shorter total length wins. One
// gutter is reserved per row of pieces (trim edge plus inter-row spacing).
func planRect(wMM, hMM float64, count int, gutterMM, overlapMM, effWidthMM float64) VinylPlan {
	type orientation struct {
		across, along float64
	}
	orients := []orientation{{wMM, hMM}, {hMM, wMM}}

	best := VinylPlan{LengthMM: math.Inf(1)}
	for _, o := range orients {
		if o.across > effWidthMM {
			continue
		}
		perRow := int(effWidthMM / (o.across + gutterMM))
		if perRow < 1 {
			perRow = 1
		}
		rows := (count + perRow - 1) / perRow
		length := float64(rows) * (o.along + gutterMM)
		if length < best.LengthMM {
			best = VinylPlan{
				LengthMM: length,
				Note: fmt.Sprintf("%d per row x %d rows at %.0fmm across the roll",
					perRow, rows, o.across),
			}
		}
	}
	if !math.IsInf(best.LengthMM, 1) {
		return best
	}

	// Neither orientation fits across the roll: tile into overlapped
	// columns and print each column full length.
	for _, o := range orients {
		usable := effWidthMM - overlapMM
		if usable < 1 {
			usable = 1
		}
		cols := int(math.Ceil((o.across + overlapMM) / usable))
		length := float64(cols) * float64(count) * (o.along + gutterMM)
		if length < best.LengthMM {
			best = VinylPlan{
				LengthMM: length,
				Note: fmt.Sprintf("tiled into %d columns with %.0fmm overlap (%.0fmm across)",
					cols, overlapMM, o.across),
			}
		}
	}
	return best
}

// planCutRows packs count pieces across the cuttable width in a single
// orientation, the layout used for solid-colour cut vinyl. Pieces wider
// than the roll still occupy one per row; cut vinyl is never tiled.
func planCutRows(wMM, hMM float64, count int, gutterMM, effWidthMM float64) VinylPlan {
	perRow := int(effWidthMM / (wMM + gutterMM))
	if perRow < 1 {
		perRow = 1
	}
	rows := (count + perRow - 1) / perRow
	return VinylPlan{
		LengthMM: float64(rows) * (hMM + gutterMM),
		Note:     fmt.Sprintf("%d per row x %d rows on the cutter", perRow, rows),
	}
}
