package quoting

// Documented defaults applied by Normalize when a field is absent.
const (
	DefaultVinylMarginMM     = 5.0
	DefaultSubstrateMarginMM = 5.0
	DefaultTileOverlapMM     = 10.0
	DefaultVinylWasteLM      = 1.0
	DefaultVATRate           = 0.20
	DefaultProfitMultiplier  = 1.0
)

// DeliveryBand is one priced tier of the delivery rule. MaxCM is the
// inclusive upper bound on the shipped item's longest dimension in
// centimetres.
type DeliveryBand struct {
	Name   string  `json:"name"`
	MaxCM  float64 `json:"max_cm"`
	Charge float64 `json:"charge"`
}

// DeliveryRule is a base fee plus an ordered list of size bands.
type DeliveryRule struct {
	Base  float64        `json:"base"`
	Bands []DeliveryBand `json:"bands"`
}

// PlotterCutRate prices one plotter-cut option: a setup charge, a rate per
// metre of sign perimeter, and a rate per cut piece.
type PlotterCutRate struct {
	Setup    float64 `json:"setup"`
	PerMetre float64 `json:"per_metre"`
	PerPiece float64 `json:"per_piece"`
}

// Settings is the canonical price-rule configuration consumed by the
// engine. Width caps of 0 mean "no cap". Only Normalize constructs one
// from raw configuration; downstream code never re-interprets aliases.
type Settings struct {
	MaxPrintWidthMM float64 `json:"max_print_width_mm"`
	MaxCutWidthMM   float64 `json:"max_cut_width_mm"`

	VinylMarginMM     float64 `json:"vinyl_margin_mm"`
	SubstrateMarginMM float64 `json:"substrate_margin_mm"`
	TileOverlapMM     float64 `json:"tile_overlap_mm"`
	VinylWasteLM      float64 `json:"vinyl_waste_lm"`

	SetupFee          float64 `json:"setup_fee"`
	CuttingPerSign    float64 `json:"cutting_per_sign"`
	InkPerSqM         float64 `json:"ink_per_sqm"`
	TapePerLM         float64 `json:"tape_per_lm"`
	WhiteBackingPerLM float64 `json:"white_backing_per_lm"`
	HemEyeletPerUnit  float64 `json:"hem_eyelet_per_unit"`
	ProfitMultiplier  float64 `json:"profit_multiplier"`

	FinishingUplifts    map[string]float64        `json:"finishing_uplifts"`
	ComplexityRates     map[string]float64        `json:"complexity_rates"`
	PlotterCutRates     map[string]PlotterCutRate `json:"plotter_cut_rates"`
	CuttingStyleUplifts map[string]float64        `json:"cutting_style_uplifts"`

	Delivery DeliveryRule `json:"delivery"`
	VATRate  float64      `json:"vat_rate"`
}

// RawSettings is the loosely-typed configuration shape accepted from
// storage or the API. Pointer fields distinguish "absent" from zero.
// Deprecated aliases sit next to their canonical field; Normalize prefers
// the canonical name when both are present.
type RawSettings struct {
	MaxPrintWidthMM *float64 `json:"max_print_width_mm,omitempty"`
	PrintWidthLimit *float64 `json:"print_width_limit,omitempty"` // deprecated alias
	MaxCutWidthMM   *float64 `json:"max_cut_width_mm,omitempty"`
	CutWidthLimit   *float64 `json:"cut_width_limit,omitempty"` // deprecated alias

	VinylMarginMM     *float64 `json:"vinyl_margin_mm,omitempty"`
	SubstrateMarginMM *float64 `json:"substrate_margin_mm,omitempty"`
	TileOverlapMM     *float64 `json:"tile_overlap_mm,omitempty"`
	VinylWasteLM      *float64 `json:"vinyl_waste_lm,omitempty"`

	SetupFee          *float64 `json:"setup_fee,omitempty"`
	CuttingPerSign    *float64 `json:"cutting_per_sign,omitempty"`
	InkPerSqM         *float64 `json:"ink_per_sqm,omitempty"`
	InkSqMCost        *float64 `json:"ink_sqm_cost,omitempty"` // deprecated alias
	TapePerLM         *float64 `json:"tape_per_lm,omitempty"`
	AppTapePerLM      *float64 `json:"app_tape_per_lm,omitempty"` // deprecated alias
	WhiteBackingPerLM *float64 `json:"white_backing_per_lm,omitempty"`
	HemEyeletPerUnit  *float64 `json:"hem_eyelet_per_unit,omitempty"`
	ProfitMultiplier  *float64 `json:"profit_multiplier,omitempty"`
	Markup            *float64 `json:"markup,omitempty"` // deprecated alias

	FinishingUplifts    map[string]float64        `json:"finishing_uplifts,omitempty"`
	ComplexityRates     map[string]float64        `json:"complexity_rates,omitempty"`
	PlotterCutRates     map[string]PlotterCutRate `json:"plotter_cut_rates,omitempty"`
	CuttingStyleUplifts map[string]float64        `json:"cutting_style_uplifts,omitempty"`

	Delivery *DeliveryRule `json:"delivery,omitempty"`
	// Legacy flat delivery form: a base fee plus bands whose surcharges
	// are additive to it. Used only when the nested rule is absent.
	DeliveryBase  *float64       `json:"delivery_base,omitempty"`
	DeliveryBands []DeliveryBand `json:"delivery_bands,omitempty"`

	VATRate *float64 `json:"vat_rate,omitempty"`
}

// Normalize reconciles a raw configuration into the canonical Settings.
// It is idempotent: normalizing the Raw form of its own output returns an
// identical value.
func Normalize(raw RawSettings) Settings {
	s := Settings{
		MaxPrintWidthMM: pickFloat(0, raw.MaxPrintWidthMM, raw.PrintWidthLimit),
		MaxCutWidthMM:   pickFloat(0, raw.MaxCutWidthMM, raw.CutWidthLimit),

		VinylMarginMM:     pickFloat(DefaultVinylMarginMM, raw.VinylMarginMM),
		SubstrateMarginMM: pickFloat(DefaultSubstrateMarginMM, raw.SubstrateMarginMM),
		TileOverlapMM:     pickFloat(DefaultTileOverlapMM, raw.TileOverlapMM),
		VinylWasteLM:      pickFloat(DefaultVinylWasteLM, raw.VinylWasteLM),

		SetupFee:          pickFloat(0, raw.SetupFee),
		CuttingPerSign:    pickFloat(0, raw.CuttingPerSign),
		InkPerSqM:         pickFloat(0, raw.InkPerSqM, raw.InkSqMCost),
		TapePerLM:         pickFloat(0, raw.TapePerLM, raw.AppTapePerLM),
		WhiteBackingPerLM: pickFloat(0, raw.WhiteBackingPerLM),
		HemEyeletPerUnit:  pickFloat(0, raw.HemEyeletPerUnit),
		ProfitMultiplier:  pickFloat(DefaultProfitMultiplier, raw.ProfitMultiplier, raw.Markup),

		FinishingUplifts:    nonNilRates(raw.FinishingUplifts),
		ComplexityRates:     nonNilRates(raw.ComplexityRates),
		PlotterCutRates:     nonNilCutRates(raw.PlotterCutRates),
		CuttingStyleUplifts: nonNilRates(raw.CuttingStyleUplifts),

		VATRate: pickFloat(DefaultVATRate, raw.VATRate),
	}

	switch {
	case raw.Delivery != nil:
		s.Delivery = *raw.Delivery
	case raw.DeliveryBase != nil || len(raw.DeliveryBands) > 0:
		// Legacy bands already express their charge as a surcharge on the
		// base, which matches the nested rule's semantics directly.
		s.Delivery = DeliveryRule{
			Base:  pickFloat(0, raw.DeliveryBase),
			Bands: raw.DeliveryBands,
		}
	default:
		s.Delivery = DeliveryRule{}
	}
	if s.Delivery.Bands == nil {
		s.Delivery.Bands = []DeliveryBand{}
	}

	return s
}

// Raw converts a canonical Settings back to the raw shape with every
// canonical field populated. Normalize(s.Raw()) == s for any normalized s.
func (s Settings) Raw() RawSettings {
	delivery := s.Delivery
	return RawSettings{
		MaxPrintWidthMM:   &s.MaxPrintWidthMM,
		MaxCutWidthMM:     &s.MaxCutWidthMM,
		VinylMarginMM:     &s.VinylMarginMM,
		SubstrateMarginMM: &s.SubstrateMarginMM,
		TileOverlapMM:     &s.TileOverlapMM,
		VinylWasteLM:      &s.VinylWasteLM,
		SetupFee:          &s.SetupFee,
		CuttingPerSign:    &s.CuttingPerSign,
		InkPerSqM:         &s.InkPerSqM,
		TapePerLM:         &s.TapePerLM,
		WhiteBackingPerLM: &s.WhiteBackingPerLM,
		HemEyeletPerUnit:  &s.HemEyeletPerUnit,
		ProfitMultiplier:  &s.ProfitMultiplier,

		FinishingUplifts:    s.FinishingUplifts,
		ComplexityRates:     s.ComplexityRates,
		PlotterCutRates:     s.PlotterCutRates,
		CuttingStyleUplifts: s.CuttingStyleUplifts,

		Delivery: &delivery,
		VATRate:  &s.VATRate,
	}
}

// pickFloat returns the first present candidate, or fallback when none is.
func pickFloat(fallback float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func nonNilRates(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func nonNilCutRates(m map[string]PlotterCutRate) map[string]PlotterCutRate {
	if m == nil {
		return map[string]PlotterCutRate{}
	}
	return m
}
