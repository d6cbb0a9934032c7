package quoting

// Mode selects the product family being quoted. Each computation runs
// exactly one mode branch; the request carries only the fields that
// branch reads.
type Mode string

const (
	ModeSolidColourCutVinyl     Mode = "solid-colour-cut-vinyl"
	ModePrintAndCutVinyl        Mode = "print-and-cut-vinyl"
	ModePrintedVinylOnly        Mode = "printed-vinyl-only"
	ModePrintedVinylOnSubstrate Mode = "printed-vinyl-on-substrate"
	ModeSubstrateOnly           Mode = "substrate-only"
)

// Orientation describes which way a sign is split into pieces or panels:
// vertical splits divide the width, horizontal splits divide the height.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// SplitMode selects the vinyl layout strategy.
type SplitMode string

const (
	SplitAuto   SplitMode = "auto"
	SplitCustom SplitMode = "custom"
)

// DeliveryMode distinguishes flat/boxed shipments from material sent on a
// roll; rolled shipments waive the size-band surcharge.
type DeliveryMode string

const (
	DeliveryBoxed  DeliveryMode = "boxed"
	DeliveryRolled DeliveryMode = "rolled"
)

// FinishingHemEyelet is the finishing option that additionally carries a
// per-unit hem/eyelet charge on print-and-cut work.
const FinishingHemEyelet = "hem-eyelet"

// VinylMedia is one roll in the catalog. PrintWidthMM is the printable
// width and never exceeds RollWidthMM; the Max*WidthMM overrides are
// optional per-media caps where 0 means no cap.
type VinylMedia struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	RollWidthMM     float64 `json:"roll_width_mm"`
	PrintWidthMM    float64 `json:"print_width_mm"`
	PricePerLM      float64 `json:"price_per_lm"`
	MaxPrintWidthMM float64 `json:"max_print_width_mm,omitempty"`
	MaxCutWidthMM   float64 `json:"max_cut_width_mm,omitempty"`
	Category        string  `json:"category,omitempty"`
}

// Substrate is one rigid stock sheet in the catalog.
type Substrate struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	SheetWidthMM  float64 `json:"sheet_width_mm"`
	SheetHeightMM float64 `json:"sheet_height_mm"`
	PricePerSheet float64 `json:"price_per_sheet"`
	ThicknessMM   float64 `json:"thickness_mm,omitempty"`
}

// SignRequest is the engine input for one computation. Dimensions are in
// millimetres. Media and substrate selections are resolved to catalog
// records by the caller before the engine runs.
type SignRequest struct {
	Mode     Mode    `json:"mode" validate:"required"`
	WidthMM  float64 `json:"width_mm" validate:"gt=0"`
	HeightMM float64 `json:"height_mm" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"min=1"`

	MediaID     string `json:"media_id,omitempty"`
	SubstrateID string `json:"substrate_id,omitempty"`

	DoubleSided     bool   `json:"double_sided,omitempty"`
	Finishing       string `json:"finishing,omitempty"`
	Complexity      string `json:"complexity,omitempty"`
	ApplicationTape bool   `json:"application_tape,omitempty"`
	WhiteBacking    bool   `json:"white_backing,omitempty"`

	PanelSplits      int         `json:"panel_splits,omitempty" validate:"min=0,max=6"`
	PanelOrientation Orientation `json:"panel_orientation,omitempty"`

	VinylSplitMode        SplitMode   `json:"vinyl_split_mode,omitempty"`
	VinylSplits           int         `json:"vinyl_splits,omitempty" validate:"min=0,max=6"`
	VinylSplitOrientation Orientation `json:"vinyl_split_orientation,omitempty"`

	PlotterCut   string `json:"plotter_cut,omitempty"`
	CuttingStyle string `json:"cutting_style,omitempty"`

	Delivery DeliveryMode `json:"delivery,omitempty"`
}

// CostLine is one labelled amount in the breakdown, e.g. the vinyl or
// substrate material line.
type CostLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Breakdown is the full costing output of one quote computation. Currency
// amounts are rounded to two decimal places at emission; length and sheet
// figures are left unrounded.
type Breakdown struct {
	Mode Mode `json:"mode"`

	Materials       float64 `json:"materials"`
	Ink             float64 `json:"ink"`
	Setup           float64 `json:"setup"`
	Cutting         float64 `json:"cutting"`
	FinishingUplift float64 `json:"finishing_uplift"`
	PreDelivery     float64 `json:"pre_delivery"`
	Delivery        float64 `json:"delivery"`
	Total           float64 `json:"total"`

	VinylLM          float64 `json:"vinyl_lm,omitempty"`
	VinylLMWithWaste float64 `json:"vinyl_lm_with_waste,omitempty"`
	SheetsNeeded     float64 `json:"sheets_needed,omitempty"`
	SheetsCharged    float64 `json:"sheets_charged,omitempty"`

	DeliveryBand string     `json:"delivery_band,omitempty"`
	Lines        []CostLine `json:"lines"`
	Notes        []string   `json:"notes"`
}
