package utils

import (
	"math"

	"ftb/src/models"
)

const earthRadiusKm = 6371

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinRadius reports whether the search point falls inside the profile's
// service circle. Profiles with a missing base coordinate or radius are never
// within range.
func WithinRadius(p *models.Profile, lat, lon float64) bool {
	if p.BaseLatitude == nil || p.BaseLongitude == nil || p.OperationRadiusKm == nil {
		return false
	}
	distanceM := DistanceKm(*p.BaseLatitude, *p.BaseLongitude, lat, lon) * 1000
	return distanceM <= *p.OperationRadiusKm*1000
}
