package quoting

import "sort"

// DeliveryQuote is the resolved delivery band and its total price
// including the rule's base fee.
type DeliveryQuote struct {
	Band   string
	Charge float64
}

// ResolveDelivery maps the shipped item's longest dimension (millimetres)
// to a priced band. The threshold is an inclusive upper bound; an item
// larger than every band takes the last one. Rolled delivery waives the
// band surcharge but still pays the base fee.
func ResolveDelivery(rule DeliveryRule, longestMM float64, mode DeliveryMode) DeliveryQuote {
	if len(rule.Bands) == 0 {
		return DeliveryQuote{Band: "standard", Charge: rule.Base}
	}

	bands := make([]DeliveryBand, len(rule.Bands))
	copy(bands, rule.Bands)
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].MaxCM < bands[j].MaxCM })

	longestCM := longestMM / 10
	selected := bands[len(bands)-1]
	for _, b := range bands {
		if b.MaxCM >= longestCM {
			selected = b
			break
		}
	}

	charge := rule.Base
	if mode != DeliveryRolled {
		charge += selected.Charge
	}
	return DeliveryQuote{Band: selected.Name, Charge: charge}
}
