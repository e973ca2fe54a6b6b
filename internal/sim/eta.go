package sim

import (
	"math"

	"github.com/kavinmb/fleet-telemetry/internal/geo"
	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// minETASpeedKmh is the floor below which time-to-arrival is not meaningful.
const minETASpeedKmh = 5.0

// ETA is an arrival estimate for the remaining route.
type ETA struct {
	Seconds int
	Minutes int
}

// RemainingKm returns the distance from the current position to the next
// unconsumed waypoint plus the lengths of all subsequent full segments.
func RemainingKm(route []models.Location, routeIndex int, pos models.Location) float64 {
	distance := 0.0

	if routeIndex < len(route)-1 {
		distance += geo.DistanceKm(pos, route[routeIndex+1])
	}
	for i := routeIndex + 1; i < len(route)-1; i++ {
		distance += geo.DistanceKm(route[i], route[i+1])
	}
	return distance
}

// EstimateETA converts the remaining route distance into an arrival estimate
// at the given speed. Returns nil when the speed is at or below the floor.
func EstimateETA(route []models.Location, routeIndex int, pos models.Location, speedKmh float64) *ETA {
	if speedKmh <= minETASpeedKmh {
		return nil
	}

	remainingKm := RemainingKm(route, routeIndex, pos)
	seconds := math.Max(0, remainingKm/(speedKmh/3600))

	return &ETA{
		Seconds: int(math.Round(seconds)),
		Minutes: int(math.Ceil(seconds / 60)),
	}
}
