// Package scoring turns a driver's cumulative behaviour counters into a
// bounded performance score.
package scoring

import (
	"math"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// Event weights, heaviest first: fatigue, overspeed, harsh braking, harsh
// acceleration.
const (
	weightOverspeed  = 4.0
	weightHarshBrake = 3.0
	weightHarshAccel = 2.0
	weightFatigue    = 6.0
)

// Score computes the performance score in [0,100] from the cumulative
// counters. Speed-event penalties are normalized per 10 km so a long trip is
// not punished harder than a short one for the same event rate; fatigue is
// deliberately not normalized.
func Score(p *models.DriverPerformance) int {
	distanceFactor := p.TotalDistanceKm / 10
	if distanceFactor < 1 {
		distanceFactor = 1
	}

	score := 100.0
	score -= float64(p.OverspeedCount) * weightOverspeed / distanceFactor
	score -= float64(p.HarshBrakingCount) * weightHarshBrake / distanceFactor
	score -= float64(p.HarshAccelerationCount) * weightHarshAccel / distanceFactor
	score -= float64(p.FatigueAlerts) * weightFatigue

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
