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

// PerformanceCollection wraps the driver_performance collection. All counter
// mutations are $inc updates so the high-frequency tick loop never loses
// increments to concurrent writers.
type PerformanceCollection struct {
	Collection *mongo.Collection
}

// eventCounterFields maps detector event types to their counter fields.
var eventCounterFields = map[string]string{
	models.EventOverspeed:  "overspeed_count",
	models.EventHarshBrake: "harsh_braking_count",
	models.EventHarshAccel: "harsh_acceleration_count",
	models.EventFatigue:    "fatigue_alerts",
}

// FindOrCreate returns the driver's performance record, creating a default
// one on first touch.
func (c *PerformanceCollection) FindOrCreate(ctx context.Context, driverID primitive.ObjectID) (*models.DriverPerformance, error) {
	var perf models.DriverPerformance
	err := c.Collection.FindOne(ctx, bson.M{"driver": driverID}).Decode(&perf)
	if err == nil {
		return &perf, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("find performance for driver %s: %w", driverID.Hex(), err)
	}

	fresh := models.NewDriverPerformance(driverID)
	res, err := c.Collection.InsertOne(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("create performance for driver %s: %w", driverID.Hex(), err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		fresh.ID = id
	}
	return fresh, nil
}

// AddDistance accrues incremental distance and driving time.
func (c *PerformanceCollection) AddDistance(ctx context.Context, driverID primitive.ObjectID, km, minutes float64) error {
	update := bson.M{
		"$inc": bson.M{"total_distance_km": km, "total_driving_minutes": minutes},
		"$set": bson.M{"last_updated": time.Now()},
	}
	_, err := c.Collection.UpdateOne(ctx, bson.M{"driver": driverID}, update)
	if err != nil {
		return fmt.Errorf("accrue distance for driver %s: %w", driverID.Hex(), err)
	}
	return nil
}

// IncEvent increments the counter for one detector event type.
func (c *PerformanceCollection) IncEvent(ctx context.Context, driverID primitive.ObjectID, eventType string, n int) error {
	field, ok := eventCounterFields[eventType]
	if !ok {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	update := bson.M{
		"$inc": bson.M{field: n},
		"$set": bson.M{"last_updated": time.Now()},
	}
	_, err := c.Collection.UpdateOne(ctx, bson.M{"driver": driverID}, update)
	if err != nil {
		return fmt.Errorf("increment %s for driver %s: %w", field, driverID.Hex(), err)
	}
	return nil
}

// AddTrip accrues a completed trip and its estimated distance.
func (c *PerformanceCollection) AddTrip(ctx context.Context, driverID primitive.ObjectID, distanceKm float64) error {
	update := bson.M{
		"$inc": bson.M{"total_trips": 1, "total_distance_km": distanceKm},
		"$set": bson.M{"last_updated": time.Now()},
	}
	_, err := c.Collection.UpdateOne(ctx, bson.M{"driver": driverID}, update)
	if err != nil {
		return fmt.Errorf("accrue trip for driver %s: %w", driverID.Hex(), err)
	}
	return nil
}

// SetScore stores a freshly computed performance score.
func (c *PerformanceCollection) SetScore(ctx context.Context, driverID primitive.ObjectID, score int) error {
	update := bson.M{"$set": bson.M{"performance_score": score, "last_updated": time.Now()}}
	_, err := c.Collection.UpdateOne(ctx, bson.M{"driver": driverID}, update)
	if err != nil {
		return fmt.Errorf("set score for driver %s: %w", driverID.Hex(), err)
	}
	return nil
}
