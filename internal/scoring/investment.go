// internal/scoring/investment.go
package scoring

import (
	"math"
	"time"

	"apt-recommender/internal/models"
)

// InvestmentScore rates an apartment's static attributes for the given
// investment style. Building age is computed against asOf, not the wall
// clock. Missing or non-positive attributes simply contribute nothing.
func InvestmentScore(apt models.Apartment, style models.InvestmentStyle, asOf time.Time) float64 {
	if style == models.StyleStable {
		return stableScore(apt, asOf)
	}
	return profitScore(apt, asOf)
}

// stableScore prefers large, established complexes: household count adds up
// to 30 points, excessive age subtracts.
func stableScore(apt models.Apartment, asOf time.Time) float64 {
	score := 50.0

	if apt.Households > 0 {
		score += math.Min(float64(apt.Households)/1000*30, 30)
	}

	if apt.BuiltYear > 0 {
		age := asOf.Year() - apt.BuiltYear
		if age > 30 {
			score -= 20
		} else if age > 20 {
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// profitScore prefers redevelopment potential: older buildings and larger
// representative areas score higher.
func profitScore(apt models.Apartment, asOf time.Time) float64 {
	score := 50.0

	if apt.BuiltYear > 0 {
		age := asOf.Year() - apt.BuiltYear
		if age > 30 {
			score += 30
		} else if age > 20 {
			score += 15
		}
	}

	if apt.ReprAreaM2 > 100 {
		score += 20
	} else if apt.ReprAreaM2 > 80 {
		score += 10
	}

	return clamp(score, 0, 100)
}
