package finance

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository persists invoices with their lines and payments
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindPastDue returns open invoices whose due date is before asOf
	FindPastDue(ctx context.Context, asOf time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
