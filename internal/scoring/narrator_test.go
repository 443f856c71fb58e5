package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret_Thresholds(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, "very good"},
		{80, "very good"},
		{79.9, "good"},
		{60, "good"},
		{40, "fair"},
		{20, "low"},
		{19.9, "very low"},
		{0, "very low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Interpret(tt.score))
	}
}

func TestInterpretTransit_LowImportanceShortCircuits(t *testing.T) {
	// At importance 1 the message is fixed regardless of score.
	high := InterpretTransit(95, 1)
	low := InterpretTransit(5, 1)

	assert.Equal(t, high, low)
	assert.Contains(t, high, "reference only")
}

func TestInterpretTransit_Graded(t *testing.T) {
	assert.Contains(t, InterpretTransit(85, 3), "Excellent")
	assert.Contains(t, InterpretTransit(65, 3), "Good")
	assert.Contains(t, InterpretTransit(45, 5), "Basic")
	assert.Contains(t, InterpretTransit(10, 5), "limited")
}

func TestInterpretMomentum_Graded(t *testing.T) {
	assert.Contains(t, InterpretMomentum(85), "very high")
	assert.Contains(t, InterpretMomentum(65), "trending up")
	assert.Contains(t, InterpretMomentum(45), "steady")
	assert.Contains(t, InterpretMomentum(25), "trending down")
	assert.Contains(t, InterpretMomentum(5), "Not enough")
}
