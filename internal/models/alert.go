package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driving event types reported by the detector.
const (
	EventOverspeed  = "overspeed"
	EventHarshBrake = "harsh_brake"
	EventHarshAccel = "harsh_accel"
	EventFatigue    = "fatigue"
)

// Event is a single discrete driving event as handed to the alert sink.
type Event struct {
	Type      string             `json:"type"`
	VehicleID primitive.ObjectID `json:"vehicle_id"`
	DriverID  primitive.ObjectID `json:"driver_id"`
}

// Alert is the persisted form of an Event.
type Alert struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      string             `json:"type" bson:"type"`
	VehicleID primitive.ObjectID `json:"vehicle_id" bson:"vehicle"`
	DriverID  primitive.ObjectID `json:"driver_id" bson:"driver"`
	Message   string             `json:"message" bson:"message"`
	Status    string             `json:"status" bson:"status"` // "Resolved" or "Unresolved"
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// VehicleUpdate is the per-tick state event published through the broadcast
// sink for every simulated vehicle.
type VehicleUpdate struct {
	ID         primitive.ObjectID `json:"id"`
	Lat        float64            `json:"lat"`
	Lng        float64            `json:"lng"`
	Speed      float64            `json:"speed"`
	Status     string             `json:"status"`
	ETASeconds *int               `json:"eta_seconds"`
	ETAMinutes *int               `json:"eta_minutes"`
}
