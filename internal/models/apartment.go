// internal/models/apartment.go
package models

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Apartment holds the static attributes of one apartment complex.
// Optional numeric fields use zero as "unknown"; scorers treat
// non-positive values as missing.
type Apartment struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	District     string     `json:"district"`
	Neighborhood string     `json:"neighborhood"`
	Location     Coordinate `json:"location"`
	BuiltYear    int        `json:"builtYear,omitempty"`
	Households   int        `json:"households,omitempty"`
	ReprAreaM2   float64    `json:"reprAreaM2,omitempty"`
}

// Candidate is an apartment annotated with its most recent observed
// transaction, as returned by the budget/area filter query.
type Candidate struct {
	Apartment
	LatestPrice  int64   `json:"latestPrice"`
	LatestAreaM2 float64 `json:"latestAreaM2"`
}
