package quoting

import (
	"fmt"
	"math"
)

// PanelPlan describes how a sign's panels are cut from stock sheets and
// what the sheet material costs.
type PanelPlan struct {
	PanelWidthMM   float64
	PanelHeightMM  float64
	PanelsPerSheet int
	SheetsNeeded   float64
	SheetsCharged  float64
	SheetCost      float64
	LongestSideMM  float64
	Note           string
}

// PlanPanels computes panel geometry from the split settings, the grid
// yield per stock sheet (margins at the sheet edges only), and the sheet
// count to charge. Half a sheet is the minimum charge; above that, whole
// sheets.
func PlanPanels(wMM, hMM float64, qty, splits int, orient Orientation, sub Substrate, marginMM float64) (PanelPlan, error) {
	if qty < 1 {
		qty = 1
	}
	n := splits
	if n < 1 {
		n = 1
	}
	if n > 6 {
		n = 6
	}

	panelW, panelH := wMM, hMM
	if orient == OrientationVertical {
		panelW = wMM / float64(n)
	} else if n > 1 {
		panelH = hMM / float64(n)
	}

	usableW := sub.SheetWidthMM - 2*marginMM
	usableH := sub.SheetHeightMM - 2*marginMM

	perSheet := 0
	if usableW >= panelW && usableH >= panelH {
		perSheet = int(usableW/panelW) * int(usableH/panelH)
	}
	if perSheet == 0 {
		return PanelPlan{}, fmt.Errorf("%w: %.0fx%.0fmm panel on %.0fx%.0fmm sheet",
			ErrPanelTooLarge, panelW, panelH, sub.SheetWidthMM, sub.SheetHeightMM)
	}

	totalPanels := qty * n
	needed := float64(totalPanels) / float64(perSheet)
	charged := math.Ceil(needed)
	if needed <= 0.5 {
		charged = 0.5
	}

	return PanelPlan{
		PanelWidthMM:   panelW,
		PanelHeightMM:  panelH,
		PanelsPerSheet: perSheet,
		SheetsNeeded:   needed,
		SheetsCharged:  charged,
		SheetCost:      charged * sub.PricePerSheet,
		LongestSideMM:  math.Max(panelW, panelH),
		Note: fmt.Sprintf("%d panels of %.0fx%.0fmm, %d per sheet, %.2f sheets charged",
			totalPanels, panelW, panelH, perSheet, charged),
	}, nil
}
