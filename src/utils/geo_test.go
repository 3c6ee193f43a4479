package utils

import (
	"testing"

	"ftb/src/models"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	// Warsaw -> Krakow, roughly 252 km
	warsawLat, warsawLon := 52.2297, 21.0122
	krakowLat, krakowLon := 50.0647, 19.9450

	d := DistanceKm(warsawLat, warsawLon, krakowLat, krakowLon)
	assert.InDelta(t, 252, d, 5)

	assert.Zero(t, DistanceKm(warsawLat, warsawLon, warsawLat, warsawLon))

	// symmetric
	assert.InDelta(t, d, DistanceKm(krakowLat, krakowLon, warsawLat, warsawLon), 0.0001)
}

func TestWithinRadius(t *testing.T) {
	warsawLat, warsawLon := 52.2297, 21.0122

	t.Run("inside the service circle", func(t *testing.T) {
		p := models.Profile{
			BaseLatitude:      fptr(warsawLat),
			BaseLongitude:     fptr(warsawLon),
			OperationRadiusKm: fptr(50),
		}
		assert.False(t, WithinRadius(&p, 52.4064, 16.9252), "Poznan is outside a 50km radius")
		assert.True(t, WithinRadius(&p, 52.25, 21.0), "a point inside Warsaw is within range")
	})

	t.Run("radius boundary is inclusive", func(t *testing.T) {
		p := models.Profile{
			BaseLatitude:      fptr(warsawLat),
			BaseLongitude:     fptr(warsawLon),
			OperationRadiusKm: fptr(DistanceKm(warsawLat, warsawLon, 50.0647, 19.9450)),
		}
		assert.True(t, WithinRadius(&p, 50.0647, 19.9450))
	})

	t.Run("profiles without geodata are never within range", func(t *testing.T) {
		noLat := models.Profile{BaseLongitude: fptr(warsawLon), OperationRadiusKm: fptr(100)}
		noLon := models.Profile{BaseLatitude: fptr(warsawLat), OperationRadiusKm: fptr(100)}
		noRadius := models.Profile{BaseLatitude: fptr(warsawLat), BaseLongitude: fptr(warsawLon)}

		assert.False(t, WithinRadius(&noLat, warsawLat, warsawLon))
		assert.False(t, WithinRadius(&noLon, warsawLat, warsawLon))
		assert.False(t, WithinRadius(&noRadius, warsawLat, warsawLon))
	})
}
