package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"apt-recommender/internal/models"
)

var investmentAsOf = time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

func TestInvestmentScore_StableBasics(t *testing.T) {
	apt := models.Apartment{
		BuiltYear:  2010, // 16 years old, no penalty
		Households: 800,
		ReprAreaM2: 84,
	}

	score := InvestmentScore(apt, models.StyleStable, investmentAsOf)

	// base 50 + 800/1000*30 = 74
	assert.InDelta(t, 74.0, score, 1e-9)
}

func TestInvestmentScore_StableHouseholdCap(t *testing.T) {
	apt := models.Apartment{Households: 5000, BuiltYear: 2015}
	score := InvestmentScore(apt, models.StyleStable, investmentAsOf)
	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestInvestmentScore_StableAgePenaltyThresholds(t *testing.T) {
	tests := []struct {
		name      string
		builtYear int
		expected  float64
	}{
		{"age exactly 20, no penalty", 2006, 50},
		{"age 21, minor penalty", 2005, 40},
		{"age exactly 30, minor penalty", 1996, 40},
		{"age 31, major penalty", 1995, 30},
		{"built year missing, no penalty", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := models.Apartment{BuiltYear: tt.builtYear}
			score := InvestmentScore(apt, models.StyleStable, investmentAsOf)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestInvestmentScore_ProfitAgeBonusThresholds(t *testing.T) {
	tests := []struct {
		name      string
		builtYear int
		expected  float64
	}{
		{"age exactly 20, no bonus", 2006, 50},
		{"age 21, half bonus", 2005, 65},
		{"age exactly 30, half bonus", 1996, 65},
		{"age 31, full bonus", 1995, 80},
		{"built year missing, no bonus", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := models.Apartment{BuiltYear: tt.builtYear}
			score := InvestmentScore(apt, models.StyleProfit, investmentAsOf)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestInvestmentScore_ProfitAreaBonus(t *testing.T) {
	tests := []struct {
		name     string
		areaM2   float64
		expected float64
	}{
		{"large area, full bonus", 110, 70},
		{"area exactly 100, half bonus", 100, 60},
		{"mid area, half bonus", 84, 60},
		{"area exactly 80, no bonus", 80, 50},
		{"missing area, no bonus", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := models.Apartment{ReprAreaM2: tt.areaM2}
			score := InvestmentScore(apt, models.StyleProfit, investmentAsOf)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestInvestmentScore_OppositeAgeDirections(t *testing.T) {
	// The same aging building should hurt a stable profile and help a
	// profit profile.
	oldApt := models.Apartment{BuiltYear: 1990}
	newApt := models.Apartment{BuiltYear: 2020}

	assert.Less(t,
		InvestmentScore(oldApt, models.StyleStable, investmentAsOf),
		InvestmentScore(newApt, models.StyleStable, investmentAsOf))
	assert.Greater(t,
		InvestmentScore(oldApt, models.StyleProfit, investmentAsOf),
		InvestmentScore(newApt, models.StyleProfit, investmentAsOf))
}

func TestInvestmentScore_AlwaysInRange(t *testing.T) {
	apts := []models.Apartment{
		{},
		{BuiltYear: 1900, Households: 100000, ReprAreaM2: 500},
		{BuiltYear: 2026, Households: -5, ReprAreaM2: -10},
	}
	for _, apt := range apts {
		for _, style := range []models.InvestmentStyle{models.StyleStable, models.StyleProfit} {
			score := InvestmentScore(apt, style, investmentAsOf)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}
