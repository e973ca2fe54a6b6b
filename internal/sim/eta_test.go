package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavinmb/fleet-telemetry/internal/geo"
	"github.com/kavinmb/fleet-telemetry/internal/models"
)

func TestRemainingKm_FullRoute(t *testing.T) {
	route := equatorRoute(3, 1.0)
	got := RemainingKm(route, 0, route[0])
	assert.InDelta(t, geo.RouteDistanceKm(route), got, 1e-9)
}

func TestRemainingKm_PartwayThroughSegment(t *testing.T) {
	route := equatorRoute(2, 1.0)

	// Halfway along the first segment: half a segment plus one full one.
	mid := models.Location{Lat: 0, Lng: route[1].Lng / 2}
	got := RemainingKm(route, 0, mid)
	assert.InDelta(t, 1.5, got, 0.01)
}

func TestRemainingKm_AtFinalWaypoint(t *testing.T) {
	route := equatorRoute(2, 1.0)
	got := RemainingKm(route, 2, route[2])
	assert.Zero(t, got)
}

func TestEstimateETA_SlowSpeedIsUndefined(t *testing.T) {
	route := equatorRoute(2, 1.0)
	assert.Nil(t, EstimateETA(route, 0, route[0], 5))
	assert.Nil(t, EstimateETA(route, 0, route[0], 0))
}

func TestEstimateETA(t *testing.T) {
	route := equatorRoute(1, 1.0)

	// ~1 km remaining at 60 km/h is ~60 seconds, one minute.
	eta := EstimateETA(route, 0, route[0], 60)
	require.NotNil(t, eta)
	assert.InDelta(t, 60, eta.Seconds, 2)
	assert.Equal(t, 1, eta.Minutes)
}

func TestEstimateETA_MinutesRoundUp(t *testing.T) {
	route := equatorRoute(2, 1.0)

	// ~2 km at 60 km/h is ~120 s; at 50 km/h it is ~144 s, i.e. 3 minutes
	// after rounding up.
	eta := EstimateETA(route, 0, route[0], 50)
	require.NotNil(t, eta)
	assert.InDelta(t, 144, eta.Seconds, 3)
	assert.Equal(t, 3, eta.Minutes)
}
