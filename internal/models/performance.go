package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverPerformance is the lifetime behaviour record for one driver,
// created lazily the first time the engine touches that driver.
type DriverPerformance struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID primitive.ObjectID `json:"driver_id" bson:"driver"`

	OverspeedCount         int `json:"overspeed_count" bson:"overspeed_count"`
	HarshBrakingCount      int `json:"harsh_braking_count" bson:"harsh_braking_count"`
	HarshAccelerationCount int `json:"harsh_acceleration_count" bson:"harsh_acceleration_count"`
	FatigueAlerts          int `json:"fatigue_alerts" bson:"fatigue_alerts"`

	IdleTimeMinutes     float64 `json:"idle_time_minutes" bson:"idle_time_minutes"`
	TotalTrips          int     `json:"total_trips" bson:"total_trips"`
	TotalDistanceKm     float64 `json:"total_distance_km" bson:"total_distance_km"`
	TotalDrivingMinutes float64 `json:"total_driving_minutes" bson:"total_driving_minutes"`

	// PerformanceScore is derived from the counters above, always in [0,100].
	PerformanceScore int `json:"performance_score" bson:"performance_score"`

	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewDriverPerformance returns a fresh record with the default perfect score.
func NewDriverPerformance(driverID primitive.ObjectID) *DriverPerformance {
	now := time.Now()
	return &DriverPerformance{
		DriverID:         driverID,
		PerformanceScore: 100,
		LastUpdated:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
