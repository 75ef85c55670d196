package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/b3erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BusStats is a snapshot of bus counters
type BusStats struct {
	Published int64 `json:"published"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

type busCounters struct {
	published, delivered, failed, dropped atomic.Int64
}

func (c *busCounters) snapshot() BusStats {
	return BusStats{
		Published: c.published.Load(),
		Delivered: c.delivered.Load(),
		Failed:    c.failed.Load(),
		Dropped:   c.dropped.Load(),
	}
}

// InMemoryEventBus hands events to in-process handlers on the publisher's
// goroutine. Handler errors and panics are logged and counted; Publish
// itself never fails.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	log      *zap.Logger
	closed   atomic.Bool
	counts   busCounters
}

// NewInMemoryEventBus returns an open bus with no handlers
func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{registry: NewHandlerRegistry(), log: log.Named("event_bus")}
}

func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		b.route(ctx, ev)
	}
	return nil
}

func (b *InMemoryEventBus) route(ctx context.Context, ev shared.DomainEvent) {
	if b.closed.Load() {
		b.counts.dropped.Add(1)
		b.log.Warn("event dropped, bus stopped", eventFields(ev)...)
		return
	}
	b.counts.published.Add(1)
	for _, h := range b.registry.GetHandlers(ev.EventType()) {
		if err := safeHandle(ctx, h, ev); err != nil {
			b.counts.failed.Add(1)
			b.log.Error("handler failed to process event",
				append(eventFields(ev), zap.String("handler", handlerName(h)), zap.Error(err))...)
			continue
		}
		b.counts.delivered.Add(1)
	}
}

// Subscribe registers h for eventTypes, falling back to h.EventTypes().
// An empty list means every event.
func (b *InMemoryEventBus) Subscribe(h shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = h.EventTypes()
	}
	b.registry.Register(h, eventTypes...)
	b.log.Debug("handler subscribed", zap.String("handler", handlerName(h)), zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(h shared.EventHandler) { b.registry.Unregister(h) }

// Start reopens a stopped bus
func (b *InMemoryEventBus) Start(context.Context) error {
	b.closed.Store(false)
	b.log.Info("event bus started", zap.Int("handlers", len(b.registry.GetAllHandlers())))
	return nil
}

// Stop closes the bus; later events are counted as dropped
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.closed.Store(true)
	b.log.Info("event bus stopped", zap.Any("stats", b.Stats()))
	return nil
}

func (b *InMemoryEventBus) Stats() BusStats { return b.counts.snapshot() }

func safeHandle(ctx context.Context, h shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, ev)
}

func eventFields(ev shared.DomainEvent) []zap.Field {
	return []zap.Field{
		zap.String("event_type", ev.EventType()),
		zap.Stringer("event_id", ev.EventID()),
		zap.Stringer("aggregate_id", ev.AggregateID()),
	}
}

func handlerName(h shared.EventHandler) string { return fmt.Sprintf("%T", h) }

var _ shared.EventBus = (*InMemoryEventBus)(nil)
