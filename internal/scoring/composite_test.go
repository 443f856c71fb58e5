package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalScore_WeightsByImportance(t *testing.T) {
	// With transit=100 and the other components at 0 the final score equals
	// the normalized transit weight times 100.
	tests := []struct {
		name       string
		importance int
		expected   float64
	}{
		{"low importance", 1, 20},
		{"medium importance", 3, 30},
		{"high importance", 5, 40},
		{"unknown ordinal falls back to low", 2, 20},
		{"zero ordinal falls back to low", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FinalScore(100, 0, 0, tt.importance)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestFinalScore_EqualComponentsAreImportanceInvariant(t *testing.T) {
	for _, importance := range []int{1, 3, 5} {
		assert.InDelta(t, 70.0, FinalScore(70, 70, 70, importance), 1e-9)
	}
}

func TestFinalScore_HigherImportanceFavorsTransit(t *testing.T) {
	// Transit dominates, other components held equal.
	low := FinalScore(95, 40, 40, 1)
	high := FinalScore(95, 40, 40, 5)
	assert.GreaterOrEqual(t, high, low)
}

func TestFinalScore_MomentumNeverCrowdedOut(t *testing.T) {
	// Even at the highest transit importance momentum keeps a 0.35 share,
	// well above its 0.15 floor.
	score := FinalScore(0, 0, 100, 5)
	assert.InDelta(t, 35.0, score, 1e-9)
}

func TestFinalScore_AlwaysInRange(t *testing.T) {
	cases := []struct {
		transit, investment, momentum float64
		importance                    int
	}{
		{0, 0, 0, 1},
		{100, 100, 100, 5},
		{100, 0, 100, 3},
		{50, 50, 50, 7},
	}
	for _, c := range cases {
		score := FinalScore(c.transit, c.investment, c.momentum, c.importance)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
