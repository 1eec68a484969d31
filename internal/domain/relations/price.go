package relations

import "math"

// RecomputePrice sums the member unit prices (nil counts as 0), applies the
// discount when enabled with the percent clamped to [0, 100], rounds to
// cents and never returns a negative price.
func RecomputePrice(unitPrices []*float64, discountEnabled bool, discountPercent float64) float64 {
	total := 0.0
	for _, price := range unitPrices {
		if price == nil || math.IsNaN(*price) {
			continue
		}
		total += *price
	}

	discount := 0.0
	if discountEnabled {
		discount = ClampPercent(discountPercent)
	}

	price := RoundCents(total * (1 - discount/100))
	if price < 0 {
		return 0
	}
	return price
}

func ClampPercent(value float64) float64 {
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return value
	}
}

func RoundCents(value float64) float64 {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		// normalizes -0
		return 0
	}
	return rounded
}

// Prices adapts plain values to RecomputePrice's nullable input.
func Prices(values ...float64) []*float64 {
	result := make([]*float64, 0, len(values))
	for i := range values {
		result = append(result, &values[i])
	}
	return result
}
