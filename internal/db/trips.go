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

// TripCollection wraps the trips collection.
type TripCollection struct {
	Collection *mongo.Collection
}

// Insert creates a new trip record.
func (c *TripCollection) Insert(ctx context.Context, trip *models.Trip) error {
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, trip)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		trip.ID = id
	}
	return nil
}

// FindActive returns trips that are scheduled or ongoing. Completed trips
// can never re-enter the simulation through this query.
func (c *TripCollection) FindActive(ctx context.Context) ([]*models.Trip, error) {
	filter := bson.M{"status": bson.M{"$in": []string{models.TripScheduled, models.TripOngoing}}}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find active trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode active trips: %w", err)
	}
	return trips, nil
}

// Start records the scheduled→ongoing transition with its entry actions.
func (c *TripCollection) Start(ctx context.Context, trip *models.Trip) error {
	update := bson.M{"$set": bson.M{
		"status":      models.TripOngoing,
		"route_index": 0,
		"tick_stats":  models.TickStats{},
		"updated_at":  time.Now(),
	}}
	return c.updateByID(ctx, trip.ID, update)
}

// SetRoute stores a freshly fetched route and resets the route index.
func (c *TripCollection) SetRoute(ctx context.Context, id primitive.ObjectID, route []models.Location) error {
	update := bson.M{"$set": bson.M{
		"route":       route,
		"route_index": 0,
		"updated_at":  time.Now(),
	}}
	return c.updateByID(ctx, id, update)
}

// SaveProgress persists the per-tick mutations only, so concurrent CRUD
// writes to other fields are never clobbered.
func (c *TripCollection) SaveProgress(ctx context.Context, trip *models.Trip) error {
	update := bson.M{"$set": bson.M{
		"route_index": trip.RouteIndex,
		"tick_stats":  trip.TickStats,
		"updated_at":  time.Now(),
	}}
	return c.updateByID(ctx, trip.ID, update)
}

// Complete records the terminal transition.
func (c *TripCollection) Complete(ctx context.Context, trip *models.Trip) error {
	update := bson.M{"$set": bson.M{
		"status":      models.TripCompleted,
		"end_time":    trip.EndTime,
		"route_index": trip.RouteIndex,
		"tick_stats":  trip.TickStats,
		"updated_at":  time.Now(),
	}}
	return c.updateByID(ctx, trip.ID, update)
}

func (c *TripCollection) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update trip %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
