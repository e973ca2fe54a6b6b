package sim

import (
	"math/rand"

	"github.com/kavinmb/fleet-telemetry/internal/geo"
	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// Speed envelope for a vehicle that is en route. The simulated vehicle never
// fully stops mid-route and never exceeds the ceiling.
const (
	MinSpeedKmh = 25.0
	MaxSpeedKmh = 100.0

	// trafficChance is the per-tick probability of a sharp traffic jolt in
	// either direction.
	trafficChance = 0.04
	trafficJolt   = 6.0

	// DefaultVisualMultiplier scales one tick's travel distance so that a
	// route visibly completes in demo time instead of real time.
	DefaultVisualMultiplier = 25.0
)

// NextSpeed derives a new speed from the previous one: a bounded random
// acceleration in [-2,+4) km/h, a rare traffic jolt of ±6 km/h, then a clamp
// to [MinSpeedKmh, MaxSpeedKmh].
func NextSpeed(prev float64, rng *rand.Rand) float64 {
	accel := rng.Float64()*6 - 2

	traffic := rng.Float64()
	if traffic < trafficChance {
		accel -= trafficJolt
	}
	if traffic > 1-trafficChance {
		accel += trafficJolt
	}

	speed := prev + accel
	if speed < MinSpeedKmh {
		speed = MinSpeedKmh
	}
	if speed > MaxSpeedKmh {
		speed = MaxSpeedKmh
	}
	return speed
}

// TickBudgetM converts a speed into this tick's travel budget in meters,
// scaled by the visual multiplier.
func TickBudgetM(speedKmh, multiplier float64) float64 {
	return speedKmh * 1000 / 3600 * multiplier
}

// Advance consumes budgetM meters of route starting at routeIndex. Whole
// segments that fit in the budget advance the index; a segment that does not
// fit places the position on it by linear interpolation from the segment
// start. Returns the new route index and position.
func Advance(route []models.Location, routeIndex int, pos models.Location, budgetM float64) (int, models.Location) {
	for budgetM > 0 && routeIndex < len(route)-1 {
		curr := route[routeIndex]
		next := route[routeIndex+1]

		segM := geo.DistanceM(curr, next)
		if budgetM >= segM {
			budgetM -= segM
			routeIndex++
			pos = next
			continue
		}

		pos = lerp(curr, next, budgetM/segM)
		budgetM = 0
	}
	return routeIndex, pos
}

func lerp(a, b models.Location, t float64) models.Location {
	return models.Location{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}
