// internal/models/station.go
package models

// Station is a transit station as stored by the station provider.
type Station struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Line       string     `json:"line"`
	Location   Coordinate `json:"location"`
	IsTransfer bool       `json:"isTransfer"`
}

// StationProximity is a station paired with its distance from a specific
// candidate. Derived at scoring time, never persisted.
type StationProximity struct {
	Name       string  `json:"name"`
	Line       string  `json:"line"`
	DistanceKm float64 `json:"distanceKm"`
	IsTransfer bool    `json:"isTransfer"`
}
