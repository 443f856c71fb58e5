// internal/scoring/composite.go
package scoring

import "math"

// investmentWeight is the fixed baseline weight for the investment component.
const investmentWeight = 0.25

// transitWeight maps the user's transit-importance ordinal to the transit
// component weight. Unknown ordinals fall back to the low weight.
func transitWeight(importance int) float64 {
	switch importance {
	case 3:
		return 0.3
	case 5:
		return 0.4
	default:
		return 0.2
	}
}

// FinalScore combines the three component scores using importance-weighted,
// normalized weights. Transit weight is the only one that varies with user
// input; momentum absorbs the remainder but never drops below 0.15 before
// normalization.
func FinalScore(transit, investment, momentum float64, transitImportance int) float64 {
	w1 := transitWeight(transitImportance)
	w2 := investmentWeight
	w3 := math.Max(1-(w1+w2), 0.15)

	total := w1 + w2 + w3
	final := (transit*w1 + investment*w2 + momentum*w3) / total

	return clamp(final, 0, 100)
}
