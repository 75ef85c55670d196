package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Log is the persisted record of one domain event
type Log struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	EventType     string          `gorm:"type:varchar(100);not null;index" json:"event_type"`
	AggregateType string          `gorm:"type:varchar(50);not null;index:idx_audit_aggregate" json:"aggregate_type"`
	AggregateID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_audit_aggregate" json:"aggregate_id"`
	Actor         string          `gorm:"type:varchar(100)" json:"actor"`
	OccurredAt    time.Time       `gorm:"not null;index" json:"occurred_at"`
	Payload       json.RawMessage `gorm:"type:jsonb" json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "audit_logs"
}

type actorCarrier interface {
	GetActor() string
}

// FromEvent builds an audit record from a domain event
func FromEvent(event shared.DomainEvent) (*Log, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	entry := &Log{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		CreatedAt:     time.Now(),
	}
	if a, ok := event.(actorCarrier); ok {
		entry.Actor = a.GetActor()
	}
	return entry, nil
}

// Repository persists audit records
type Repository interface {
	Save(ctx context.Context, entry *Log) error
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
