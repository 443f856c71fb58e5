// internal/models/recommendation.go
package models

import "time"

// InvestmentStyle selects which investment scoring profile applies.
type InvestmentStyle string

const (
	StyleStable InvestmentStyle = "stable"
	StyleProfit InvestmentStyle = "profit"
)

// Transit importance ordinals. Any other value falls back to the low weight.
const (
	ImportanceLow    = 1
	ImportanceMedium = 3
	ImportanceHigh   = 5
)

// ScoringRequest is a validated recommendation request. Budget is in the
// smallest whole currency unit; MinAreaM2 in square meters.
type ScoringRequest struct {
	Budget            int64           `json:"budget"`
	MinAreaM2         float64         `json:"minAreaM2"`
	Style             InvestmentStyle `json:"investmentStyle"`
	TransitImportance int             `json:"transitImportance"`
	PreferredDistrict string          `json:"preferredDistrict,omitempty"`
}

// ScoredApartment is one ranked recommendation. Scores are rounded to the
// nearest integer and always within [0,100].
type ScoredApartment struct {
	ApartmentID      int64              `json:"apartmentId"`
	Name             string             `json:"name"`
	District         string             `json:"district"`
	Neighborhood     string             `json:"neighborhood"`
	Location         Coordinate         `json:"location"`
	BuiltYear        int                `json:"builtYear,omitempty"`
	Households       int                `json:"households,omitempty"`
	ReprAreaM2       float64            `json:"reprAreaM2,omitempty"`
	LatestPrice      int64              `json:"latestPrice"`
	LatestAreaM2     float64            `json:"latestAreaM2"`
	TransitScore     int                `json:"transitScore"`
	InvestmentScore  int                `json:"investmentScore"`
	MomentumScore    int                `json:"momentumScore"`
	FinalScore       int                `json:"finalScore"`
	NearbyStations   []StationProximity `json:"nearbyStations"`
	TransactionCount int                `json:"transactionCount"`
	Explanation      string             `json:"explanation"`
	TransitSummary   string             `json:"transitSummary"`
	MomentumSummary  string             `json:"momentumSummary"`
}

// RecommendationRecord is a persisted recommendation row (result sink).
type RecommendationRecord struct {
	ID              int64     `json:"id"`
	RunID           string    `json:"runId"`
	UserID          int64     `json:"userId"`
	ApartmentID     int64     `json:"apartmentId"`
	FinalScore      int       `json:"finalScore"`
	TransitScore    int       `json:"transitScore"`
	InvestmentScore int       `json:"investmentScore"`
	MomentumScore   int       `json:"momentumScore"`
	Explanation     string    `json:"explanation"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ApartmentDetail bundles one apartment with its history and surroundings.
type ApartmentDetail struct {
	Apartment    Apartment     `json:"apartment"`
	Transactions []Transaction `json:"transactions"`
	Stations     []Station     `json:"stations"`
}
