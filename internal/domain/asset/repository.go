package asset

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssetRepository persists assets
type AssetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Asset, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsBySerialNumber(ctx context.Context, serial string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, asset *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}
