package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver availability statuses.
const (
	DriverAvailable = "available"
	DriverReserved  = "reserved"
	DriverOnTrip    = "on-trip"
	DriverOffDuty   = "off-duty"
)

// Driver represents a fleet driver.
type Driver struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Phone         string              `json:"phone" bson:"phone"`
	License       string              `json:"license" bson:"license"`
	Rating        float64             `json:"rating" bson:"rating"`
	Status        string              `json:"status" bson:"status"`
	CurrentTripID *primitive.ObjectID `json:"current_trip_id,omitempty" bson:"current_trip_id,omitempty"`
	TripHistory   []TripHistoryEntry  `json:"trip_history" bson:"trip_history"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// TripHistoryEntry is the archived summary of a completed trip, pushed onto
// the driver document when the trip leaves the active set.
type TripHistoryEntry struct {
	TripID      primitive.ObjectID `json:"trip_id" bson:"trip_id"`
	StartTime   time.Time          `json:"start_time" bson:"start_time"`
	EndTime     time.Time          `json:"end_time" bson:"end_time"`
	Origin      string             `json:"origin" bson:"origin"`
	Destination string             `json:"destination" bson:"destination"`
	DistanceKm  float64            `json:"distance_km" bson:"distance_km"`
	DurationMin float64            `json:"duration_min" bson:"duration_min"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	Status      string             `json:"status" bson:"status"`
}
