package audit

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/audit"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogListFilter holds audit log query parameters
type LogListFilter struct {
	AggregateType string     `form:"aggregate_type" binding:"max=50"`
	AggregateID   string     `form:"aggregate_id" binding:"omitempty,uuid"`
	EventType     string     `form:"event_type" binding:"max=100"`
	Actor         string     `form:"actor" binding:"max=100"`
	FromDate      *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f LogListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	filter = filter.
		With("aggregate_type", f.AggregateType).
		With("aggregate_id", shared.OptionalID(f.AggregateID)).
		With("event_type", f.EventType).
		With("actor", f.Actor)
	if f.FromDate != nil {
		filter = filter.With("from_date", *f.FromDate)
	}
	if f.ToDate != nil {
		// inclusive of the whole day
		filter = filter.With("to_date", f.ToDate.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}
	return filter
}

// LogService is the read side of the audit trail
type LogService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewLogService creates a new LogService
func NewLogService(repo audit.Repository, logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{repo: repo, logger: logger.Named("audit")}
}

// List returns audit entries matching the filter, newest first by default
func (s *LogService) List(ctx context.Context, filter LogListFilter) ([]audit.Log, int64, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return nil, 0, shared.InvalidInput("to_date must not be before from_date")
	}
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	if list == nil {
		list = []audit.Log{}
	}
	return list, total, nil
}

// History returns the full trail of one aggregate in occurrence order
func (s *LogService) History(ctx context.Context, aggregateType string, aggregateID uuid.UUID) ([]audit.Log, error) {
	filter := shared.Filter{OrderBy: "occurred_at", OrderDir: "asc"}.
		With("aggregate_type", aggregateType).
		With("aggregate_id", aggregateID)
	list, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []audit.Log{}
	}
	return list, nil
}
