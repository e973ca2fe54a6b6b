// Package broadcast fans simulation output out to subscribers: vehicle
// state every tick and discrete driving events. Every sink here is
// fire-and-forget; a slow or absent subscriber never blocks the tick loop.
package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// MQTT topics.
const (
	vehicleTopicPrefix = "fleet/vehicles/"
	alertsTopic        = "fleet/alerts"
)

// MQTTPublisher publishes vehicle updates and driving events over MQTT at
// QoS 0.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishUpdate publishes a per-tick vehicle state event. Delivery is
// at-most-once and not awaited.
func (p *MQTTPublisher) PublishUpdate(update models.VehicleUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		log.WithError(err).Error("failed to marshal vehicle update")
		return
	}
	p.client.Publish(vehicleTopicPrefix+update.ID.Hex(), 0, false, payload)
}

// PublishEvent publishes a discrete driving event.
func (p *MQTTPublisher) PublishEvent(event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("failed to marshal driving event")
		return
	}
	p.client.Publish(alertsTopic, 0, false, payload)
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
