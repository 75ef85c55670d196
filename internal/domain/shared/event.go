package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate. Events are
// collected on the aggregate and published after it is saved.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent holds the envelope fields. Embed it by value.
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a fresh id and the current UTC time
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{ID: uuid.New(), Type: eventType, Timestamp: time.Now().UTC(), AggID: aggID, AggType: aggType}
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e *BaseDomainEvent) EventType() string      { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.Timestamp }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.AggID }
func (e *BaseDomainEvent) AggregateType() string  { return e.AggType }

// StatusChangedEvent records a lifecycle transition. Its type is
// "<aggregate>.<new status>", e.g. invoice.posted.
type StatusChangedEvent struct {
	BaseDomainEvent
	Reference string `json:"reference"`
	From      string `json:"from"`
	To        string `json:"to"`
	Actor     string `json:"actor,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func NewStatusChangedEvent(aggType string, aggID uuid.UUID, reference, from, to string) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: NewBaseDomainEvent(aggType+"."+to, aggType, aggID),
		Reference:       reference,
		From:            from,
		To:              to,
	}
}

// GetActor lets the audit log attribute the change
func (e *StatusChangedEvent) GetActor() string { return e.Actor }
