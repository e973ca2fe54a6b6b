package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// DriverCollection wraps the drivers collection.
type DriverCollection struct {
	Collection *mongo.Collection
}

// Insert creates a new driver record.
func (c *DriverCollection) Insert(ctx context.Context, driver *models.Driver) error {
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, driver)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		driver.ID = id
	}
	return nil
}

// FindByID finds a driver by its ID.
func (c *DriverCollection) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	var driver models.Driver
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("driver %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, err
	}
	return &driver, nil
}

// ArchiveTrip appends a completed trip summary to the driver's history.
func (c *DriverCollection) ArchiveTrip(ctx context.Context, driverID primitive.ObjectID, entry models.TripHistoryEntry) error {
	update := bson.M{
		"$push": bson.M{"trip_history": entry},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": driverID}, update)
	if err != nil {
		return fmt.Errorf("archive trip for driver %s: %w", driverID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("driver %s: %w", driverID.Hex(), ErrNotFound)
	}
	return nil
}

// Release marks the driver available again and clears the trip reference.
func (c *DriverCollection) Release(ctx context.Context, driverID primitive.ObjectID) error {
	update := bson.M{
		"$set":   bson.M{"status": models.DriverAvailable, "updated_at": time.Now()},
		"$unset": bson.M{"current_trip_id": ""},
	}
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": driverID}, update)
	if err != nil {
		return fmt.Errorf("release driver %s: %w", driverID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("driver %s: %w", driverID.Hex(), ErrNotFound)
	}
	return nil
}
