// Package geo provides great-circle distance math over latitude/longitude
// pairs. All calculations use the Haversine formula on WGS-84 coordinates.
package geo

import (
	"math"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers.
func DistanceKm(a, b models.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceM returns the great-circle distance between two points in meters.
func DistanceM(a, b models.Location) float64 {
	return DistanceKm(a, b) * 1000.0
}

// RouteDistanceKm returns the total length of an ordered route in kilometers.
func RouteDistanceKm(route []models.Location) float64 {
	total := 0.0
	for i := 0; i < len(route)-1; i++ {
		total += DistanceKm(route[i], route[i+1])
	}
	return total
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
