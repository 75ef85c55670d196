package event

import (
	"context"
	"fmt"

	"github.com/b3erp/backend/internal/domain/audit"
	"github.com/b3erp/backend/internal/domain/shared"
)

// AuditLogHandler records every domain event as an audit_logs row
type AuditLogHandler struct {
	repo audit.Repository
}

// NewAuditLogHandler creates an AuditLogHandler
func NewAuditLogHandler(repo audit.Repository) *AuditLogHandler {
	return &AuditLogHandler{repo: repo}
}

// EventTypes subscribes to all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle persists the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := audit.FromEvent(event)
	if err != nil {
		return fmt.Errorf("build audit entry: %w", err)
	}
	if err := h.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("save audit entry: %w", err)
	}
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
