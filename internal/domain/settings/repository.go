package settings

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NumberSeriesRepository persists number series
type NumberSeriesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*NumberSeries, error)
	FindByCode(ctx context.Context, code string) (*NumberSeries, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]NumberSeries, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, series *NumberSeries) error
	Delete(ctx context.Context, id uuid.UUID) error

	// WithLocked loads the series by code under a row lock, applies fn and
	// persists the result in one transaction.
	WithLocked(ctx context.Context, code string, fn func(*NumberSeries) error) error
}
