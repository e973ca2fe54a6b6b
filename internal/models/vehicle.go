package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle statuses. The engine only ever writes "running" and "stopped";
// "idle" is the resting state a vehicle is created in.
const (
	VehicleRunning = "running"
	VehicleIdle    = "idle"
	VehicleStopped = "stopped"
)

// Vehicle represents a fleet vehicle and its latest known telemetry.
type Vehicle struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VehicleNumber string              `json:"vehicle_number" bson:"vehicle_number"` // number plate
	Model         string              `json:"model" bson:"model"`
	DriverName    string              `json:"driver_name" bson:"driver_name"`
	Lat           float64             `json:"lat" bson:"lat"`
	Lng           float64             `json:"lng" bson:"lng"`
	Speed         float64             `json:"speed" bson:"speed"` // km/h
	Status        string              `json:"status" bson:"status"`
	Fuel          float64             `json:"fuel" bson:"fuel"` // percent
	CurrentTripID *primitive.ObjectID `json:"current_trip_id,omitempty" bson:"current_trip_id,omitempty"`
	LastUpdated   time.Time           `json:"last_updated" bson:"last_updated"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}
