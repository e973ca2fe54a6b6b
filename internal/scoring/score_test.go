package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		perf models.DriverPerformance
		want int
	}{
		{
			name: "zero events is a perfect score",
			perf: models.DriverPerformance{TotalDistanceKm: 250},
			want: 100,
		},
		{
			name: "overspeed normalized per 10km",
			perf: models.DriverPerformance{
				TotalDistanceKm: 100,
				OverspeedCount:  5,
			},
			want: 98, // 100 - (5*4)/10
		},
		{
			name: "short trips use the unit distance factor",
			perf: models.DriverPerformance{
				TotalDistanceKm:   2,
				HarshBrakingCount: 4,
			},
			want: 88, // 100 - 4*3, factor clamped to 1
		},
		{
			name: "fatigue is not distance normalized",
			perf: models.DriverPerformance{
				TotalDistanceKm: 1000,
				FatigueAlerts:   3,
			},
			want: 82, // 100 - 3*6 regardless of distance
		},
		{
			name: "mixed events",
			perf: models.DriverPerformance{
				TotalDistanceKm:        50,
				OverspeedCount:         5,
				HarshBrakingCount:      5,
				HarshAccelerationCount: 5,
				FatigueAlerts:          1,
			},
			want: 85, // 100 - (20+15+10)/5 - 6
		},
		{
			name: "score clamps at zero",
			perf: models.DriverPerformance{
				TotalDistanceKm: 1,
				FatigueAlerts:   50,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.perf)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestScore_AlwaysBounded(t *testing.T) {
	perfs := []models.DriverPerformance{
		{},
		{TotalDistanceKm: 0.001, OverspeedCount: 10000},
		{TotalDistanceKm: 1e6},
		{FatigueAlerts: 1 << 20},
	}
	for _, p := range perfs {
		got := Score(&p)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
