// internal/scoring/momentum.go
package scoring

import (
	"math"
	"time"

	"apt-recommender/internal/models"
)

// momentumRatioCap keeps a single outlier spike from saturating the score.
const momentumRatioCap = 3.0

// MomentumScore measures recent trading-volume acceleration: transactions in
// the 3 months before asOf against a monthly baseline from the trailing year.
// Volume is used instead of price because price alone is dominated by
// unit/area mix noise in small samples.
func MomentumScore(transactions []models.Transaction, asOf time.Time) float64 {
	if len(transactions) == 0 {
		return 0
	}

	threeMonthsAgo := asOf.AddDate(0, -3, 0)
	oneYearAgo := asOf.AddDate(-1, 0, 0)

	var recent, baseline int
	for _, t := range transactions {
		switch {
		case !t.ContractDate.Before(threeMonthsAgo):
			recent++
		case !t.ContractDate.Before(oneYearAgo):
			baseline++
		}
	}

	// Insufficient history is handled conservatively: a flat 30 when there
	// is any recent activity, never an extreme score.
	if baseline == 0 {
		if recent > 0 {
			return 30
		}
		return 0
	}

	baselineRate := float64(baseline) / 12
	ratio := momentumRatioCap
	if baselineRate > 0 {
		ratio = math.Min(float64(recent)/baselineRate, momentumRatioCap)
	}

	return clamp(ratio/momentumRatioCap*100, 0, 100)
}
