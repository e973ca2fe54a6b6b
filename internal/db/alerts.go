package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// AlertCollection wraps the alerts collection.
type AlertCollection struct {
	Collection *mongo.Collection
}

// Insert stores a driving-event alert.
func (c *AlertCollection) Insert(ctx context.Context, alert *models.Alert) error {
	res, err := c.Collection.InsertOne(ctx, alert)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		alert.ID = id
	}
	return nil
}
