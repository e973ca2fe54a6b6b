package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip statuses. A trip only ever moves forward through these.
const (
	TripScheduled = "scheduled"
	TripOngoing   = "ongoing"
	TripCompleted = "completed"
)

// TickStats holds the driving events accrued during a single trip. It is
// reset when the trip transitions to ongoing and is distinct from the
// driver's lifetime counters on DriverPerformance.
type TickStats struct {
	Overspeed  int `json:"overspeed" bson:"overspeed"`
	HarshBrake int `json:"harsh_brake" bson:"harsh_brake"`
	HarshAccel int `json:"harsh_accel" bson:"harsh_accel"`
	Fatigue    int `json:"fatigue" bson:"fatigue"`
}

// Trip represents a scheduled journey of one vehicle with one driver.
type Trip struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID         primitive.ObjectID `json:"vehicle_id" bson:"vehicle"`
	DriverID          primitive.ObjectID `json:"driver_id" bson:"driver"`
	Origin            string             `json:"origin" bson:"origin"`
	Destination       string             `json:"destination" bson:"destination"`
	OriginCoords      Location           `json:"origin_coords" bson:"origin_coords"`
	DestinationCoords Location           `json:"destination_coords" bson:"destination_coords"`
	StartTime         time.Time          `json:"start_time" bson:"start_time"`
	EndTime           *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Duration          float64            `json:"duration" bson:"duration"` // planned, minutes
	Status            string             `json:"status" bson:"status"`

	// Route is the ordered waypoint path fetched from the route provider.
	// Empty until the first successful fetch; immutable afterwards.
	Route []Location `json:"route,omitempty" bson:"route,omitempty"`

	// RouteIndex points at the last fully consumed waypoint.
	RouteIndex int       `json:"route_index" bson:"route_index"`
	TickStats  TickStats `json:"tick_stats" bson:"tick_stats"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// RouteExhausted reports whether the route index has reached the final
// waypoint, the terminal signal for the trip lifecycle.
func (t *Trip) RouteExhausted() bool {
	return len(t.Route) > 0 && t.RouteIndex >= len(t.Route)-1
}
