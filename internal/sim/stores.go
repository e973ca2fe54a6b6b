package sim

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// TripStore persists trip state. Mutating methods update only the fields the
// engine owns so concurrent CRUD traffic cannot clobber engine writes.
type TripStore interface {
	// FindActive returns trips with status scheduled or ongoing. Completed
	// trips re-entering the active set are filtered out here by contract.
	FindActive(ctx context.Context) ([]*models.Trip, error)

	// Start records the scheduled→ongoing transition: status, reset route
	// index and tick stats.
	Start(ctx context.Context, trip *models.Trip) error

	// SetRoute stores a freshly fetched route and resets the route index.
	SetRoute(ctx context.Context, id primitive.ObjectID, route []models.Location) error

	// SaveProgress persists the per-tick mutations: route index and tick stats.
	SaveProgress(ctx context.Context, trip *models.Trip) error

	// Complete records the ongoing→completed transition with the end time.
	Complete(ctx context.Context, trip *models.Trip) error
}

// VehicleStore persists vehicle state.
type VehicleStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)

	// SavePosition persists position, speed, status and last-update time.
	SavePosition(ctx context.Context, v *models.Vehicle) error
}

// DriverStore persists driver state.
type DriverStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)

	// ArchiveTrip appends a completed trip to the driver's trip history.
	ArchiveTrip(ctx context.Context, driverID primitive.ObjectID, entry models.TripHistoryEntry) error

	// Release marks the driver available and clears the current trip
	// reference.
	Release(ctx context.Context, driverID primitive.ObjectID) error
}

// PerformanceStore persists per-driver cumulative performance counters.
// Counter mutations are increments, not read-modify-write.
type PerformanceStore interface {
	// FindOrCreate returns the driver's record, creating a default one on
	// first touch.
	FindOrCreate(ctx context.Context, driverID primitive.ObjectID) (*models.DriverPerformance, error)

	// AddDistance accrues incremental distance and driving time.
	AddDistance(ctx context.Context, driverID primitive.ObjectID, km, minutes float64) error

	// IncEvent increments the counter for one event type.
	IncEvent(ctx context.Context, driverID primitive.ObjectID, eventType string, n int) error

	// AddTrip accrues a completed trip and its estimated distance.
	AddTrip(ctx context.Context, driverID primitive.ObjectID, distanceKm float64) error

	// SetScore stores a freshly computed performance score.
	SetScore(ctx context.Context, driverID primitive.ObjectID, score int) error
}

// AlertStore persists driving-event alerts.
type AlertStore interface {
	Insert(ctx context.Context, alert *models.Alert) error
}

// RouteProvider fetches a drivable path between two coordinates. An empty
// slice means "route unavailable, retry later"; implementations log their
// own failures.
type RouteProvider interface {
	RoutePoints(ctx context.Context, origin, destination models.Location) []models.Location
}

// Broadcaster fans per-tick vehicle state out to subscribers. Delivery is
// at-most-once and must never block the tick.
type Broadcaster interface {
	PublishUpdate(update models.VehicleUpdate)
}

// AlertSink receives discrete driving events. Same fire-and-forget contract
// as the Broadcaster.
type AlertSink interface {
	PublishEvent(event models.Event)
}
