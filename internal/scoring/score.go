// internal/scoring/score.go
//
// Pure scoring functions for the recommendation engine. Everything in this
// package is stateless and deterministic: the same inputs always produce the
// same score, and every score lands in [0,100] after clamping. Time-dependent
// scorers take an explicit as-of timestamp instead of reading the clock.
package scoring

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
