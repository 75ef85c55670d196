package storage

import (
	"context"
	"fmt"

	qualityapp "github.com/b3erp/backend/internal/application/quality"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the store selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (qualityapp.ObjectStorage, error) {
	switch cfg.Driver {
	case "", "memory":
		logger.Warn("using in-memory object storage; attachments are lost on restart")
		return NewMemoryObjectStorage(cfg.PresignExpiry), nil
	case "s3":
		s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(logger.Named("s3")))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
