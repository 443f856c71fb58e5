// internal/scoring/narrator.go
package scoring

// Interpret maps any 0-100 score to a generic quality label.
func Interpret(score float64) string {
	switch {
	case score >= 80:
		return "very good"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	case score >= 20:
		return "low"
	default:
		return "very low"
	}
}

// InterpretTransit describes a transit score in context of how much the user
// weighted accessibility. At the lowest importance the score is reference
// information only, regardless of its value.
func InterpretTransit(score float64, transitImportance int) string {
	if transitImportance == 1 {
		return "Transit access was weighted lightly for this search; treat it as reference only."
	}

	switch {
	case score >= 80:
		return "Excellent transit accessibility."
	case score >= 60:
		return "Good transit accessibility."
	case score >= 40:
		return "Basic transit accessibility."
	default:
		return "Transit accessibility is limited."
	}
}

// InterpretMomentum describes recent trading activity.
func InterpretMomentum(score float64) string {
	switch {
	case score >= 80:
		return "Recent trading activity is very high."
	case score >= 60:
		return "Recent trading volume is trending up."
	case score >= 40:
		return "Trading volume is steady."
	case score >= 20:
		return "Recent trading volume is trending down."
	default:
		return "Not enough transaction data."
	}
}
