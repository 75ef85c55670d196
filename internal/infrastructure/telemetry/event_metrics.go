package telemetry

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventMetrics counts domain events as they leave the bus. It subscribes
// to every event type.
type EventMetrics struct {
	published *Counter
	lag       *Histogram
	now       func() time.Time
}

// NewEventMetrics creates the domain event instruments on meter
func NewEventMetrics(meter metric.Meter) (*EventMetrics, error) {
	published, err := NewCounter(meter, "b3erp_domain_events_total", "Domain events dispatched", "{event}")
	if err != nil {
		return nil, err
	}
	lag, err := NewHistogram(meter, HistogramOpts{
		Name:        "b3erp_domain_event_dispatch_lag_seconds",
		Description: "Time between an event occurring and its dispatch",
		Unit:        "s",
		Boundaries:  []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	if err != nil {
		return nil, err
	}
	return &EventMetrics{published: published, lag: lag, now: time.Now}, nil
}

// EventTypes subscribes to all events
func (m *EventMetrics) EventTypes() []string {
	return nil
}

// Handle records one event
func (m *EventMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	attrs := []attribute.KeyValue{
		AttrEventType.String(event.EventType()),
		AttrAggregateType.String(event.AggregateType()),
	}
	m.published.Inc(ctx, attrs...)
	if occurred := event.OccurredAt(); !occurred.IsZero() {
		m.lag.RecordDuration(ctx, m.now().Sub(occurred), AttrAggregateType.String(event.AggregateType()))
	}
	return nil
}

var _ shared.EventHandler = (*EventMetrics)(nil)
