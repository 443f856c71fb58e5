// internal/scoring/transit.go
package scoring

import (
	"math"

	"apt-recommender/internal/models"
)

// MaxStationDistanceKm is the hard relevance boundary for nearby stations.
// A station at exactly 1 km still counts; anything beyond it is ignored.
const MaxStationDistanceKm = 1.0

// TransitScore converts a candidate's station proximities into a 0-100
// accessibility score. Density and proximity are rewarded independently,
// plus a flat bonus when a transfer station is in range.
func TransitScore(stations []models.StationProximity) float64 {
	nearby := make([]models.StationProximity, 0, len(stations))
	for _, s := range stations {
		if s.DistanceKm <= MaxStationDistanceKm {
			nearby = append(nearby, s)
		}
	}
	if len(nearby) == 0 {
		return 0
	}

	countScore := math.Min(float64(len(nearby))*15, 60)

	minDistance := nearby[0].DistanceKm
	hasTransfer := false
	for _, s := range nearby {
		if s.DistanceKm < minDistance {
			minDistance = s.DistanceKm
		}
		if s.IsTransfer {
			hasTransfer = true
		}
	}
	distanceScore := math.Max(0, 40-minDistance*40)

	transferBonus := 0.0
	if hasTransfer {
		transferBonus = 10
	}

	return clamp(countScore+distanceScore+transferBonus, 0, 100)
}
