// internal/scoring/distance.go
package scoring

import (
	"math"

	"apt-recommender/internal/models"
)

const earthRadiusKm = 6371

// Distance returns the great-circle distance between two coordinates in
// kilometers using the haversine formula. Identical coordinates yield 0.
func Distance(a, b models.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
