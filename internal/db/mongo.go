// Package db implements the engine's persistence contracts on MongoDB.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a referenced entity no longer exists.
var ErrNotFound = errors.New("not found")

// ConnectMongo connects to MongoDB at the given URI and verifies the
// connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Collections bundles the engine's repositories over one database.
type Collections struct {
	Trips       *TripCollection
	Vehicles    *VehicleCollection
	Drivers     *DriverCollection
	Performance *PerformanceCollection
	Alerts      *AlertCollection
}

// NewCollections wires repositories over the named database.
func NewCollections(client *mongo.Client, database string) *Collections {
	d := client.Database(database)
	return &Collections{
		Trips:       &TripCollection{Collection: d.Collection("trips")},
		Vehicles:    &VehicleCollection{Collection: d.Collection("vehicles")},
		Drivers:     &DriverCollection{Collection: d.Collection("drivers")},
		Performance: &PerformanceCollection{Collection: d.Collection("driver_performance")},
		Alerts:      &AlertCollection{Collection: d.Collection("alerts")},
	}
}
