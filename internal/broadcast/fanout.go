package broadcast

import "github.com/kavinmb/fleet-telemetry/internal/models"

// UpdateSink is the per-tick vehicle state consumer.
type UpdateSink interface {
	PublishUpdate(update models.VehicleUpdate)
}

// EventSink is the discrete driving event consumer.
type EventSink interface {
	PublishEvent(event models.Event)
}

// UpdateFanout forwards a vehicle update to several sinks.
type UpdateFanout []UpdateSink

// PublishUpdate forwards the update to every sink.
func (f UpdateFanout) PublishUpdate(update models.VehicleUpdate) {
	for _, s := range f {
		s.PublishUpdate(update)
	}
}

// EventFanout forwards a driving event to several sinks.
type EventFanout []EventSink

// PublishEvent forwards the event to every sink.
func (f EventFanout) PublishEvent(event models.Event) {
	for _, s := range f {
		s.PublishEvent(event)
	}
}
