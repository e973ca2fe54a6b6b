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

// VehicleCollection wraps the vehicles collection.
type VehicleCollection struct {
	Collection *mongo.Collection
}

// Insert creates a new vehicle record.
func (c *VehicleCollection) Insert(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		vehicle.ID = id
	}
	return nil
}

// FindByID finds a vehicle by its ID.
func (c *VehicleCollection) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, err
	}
	return &vehicle, nil
}

// SavePosition persists the simulation-owned fields of a vehicle: position,
// speed, status and the last-update timestamp.
func (c *VehicleCollection) SavePosition(ctx context.Context, v *models.Vehicle) error {
	update := bson.M{"$set": bson.M{
		"lat":          v.Lat,
		"lng":          v.Lng,
		"speed":        v.Speed,
		"status":       v.Status,
		"last_updated": v.LastUpdated,
		"updated_at":   time.Now(),
	}}
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": v.ID}, update)
	if err != nil {
		return fmt.Errorf("update vehicle %s: %w", v.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("vehicle %s: %w", v.ID.Hex(), ErrNotFound)
	}
	return nil
}
