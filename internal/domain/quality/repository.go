package quality

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefectCodeRepository persists defect codes
type DefectCodeRepository interface {
	FindByCode(ctx context.Context, code string) (*DefectCode, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DefectCode, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, code *DefectCode) error
	Delete(ctx context.Context, code string) error

	// InsertIfAbsent inserts code unless one with the same Code exists.
	// It reports whether a row was written.
	InsertIfAbsent(ctx context.Context, code *DefectCode) (bool, error)
}

// InspectionRepository persists inspections with their defects and attachments
type InspectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Inspection, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Inspection, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, inspection *Inspection) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAttachment(ctx context.Context, inspectionID, attachmentID uuid.UUID) error
}
