package settings

import (
	"context"
	"errors"
	"time"

	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// NumberSeriesService manages document number series and hands out numbers
// to the other contexts
type NumberSeriesService struct {
	repo   settings.NumberSeriesRepository
	events shared.EventPublisher
	now    func() time.Time
}

// NewNumberSeriesService creates a new NumberSeriesService
func NewNumberSeriesService(repo settings.NumberSeriesRepository, events shared.EventPublisher) *NumberSeriesService {
	return &NumberSeriesService{repo: repo, events: events, now: time.Now}
}

var _ shared.NumberGenerator = (*NumberSeriesService)(nil)

// Create creates a new series
func (s *NumberSeriesService) Create(ctx context.Context, req CreateNumberSeriesRequest) (*NumberSeriesResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.AlreadyExists("number series with this code already exists")
	}

	series, err := settings.NewNumberSeries(req.Code, req.Name, req.Module, req.toDomain(), settings.ResetPolicy(req.ResetPolicy))
	if err != nil {
		return nil, err
	}
	if req.Increment > 0 {
		series.Increment = req.Increment
	}
	if req.StartNumber > 0 {
		series.NextNumber = req.StartNumber
	}

	if err := s.repo.Save(ctx, series); err != nil {
		return nil, err
	}
	resp := ToNumberSeriesResponse(series, s.now())
	return &resp, nil
}

// GetByID retrieves a series
func (s *NumberSeriesService) GetByID(ctx context.Context, id uuid.UUID) (*NumberSeriesResponse, error) {
	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToNumberSeriesResponse(series, s.now())
	return &resp, nil
}

// List retrieves series with filtering and pagination
func (s *NumberSeriesService) List(ctx context.Context, filter NumberSeriesListFilter) ([]NumberSeriesResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.
		With("module", filter.Module).
		With("is_active", filter.IsActive)
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	out := make([]NumberSeriesResponse, len(list))
	for i := range list {
		out[i] = ToNumberSeriesResponse(&list[i], now)
	}
	return out, total, nil
}

// Update replaces the editable fields of a series
func (s *NumberSeriesService) Update(ctx context.Context, id uuid.UUID, req UpdateNumberSeriesRequest) (*NumberSeriesResponse, error) {
	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	policy := settings.ResetPolicy(req.ResetPolicy)
	if policy == "" {
		policy = series.ResetPolicy
	}
	increment := req.Increment
	if increment == 0 {
		increment = series.Increment
	}
	if err := series.Update(req.Name, req.Module, req.toDomain(), policy, increment); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			series.Activate()
		} else {
			series.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, series); err != nil {
		return nil, err
	}
	resp := ToNumberSeriesResponse(series, s.now())
	return &resp, nil
}

// Delete removes a series
func (s *NumberSeriesService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Preview returns the value the next call to Next would produce
func (s *NumberSeriesService) Preview(ctx context.Context, id uuid.UUID) (*SeriesValueResponse, error) {
	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SeriesValueResponse{Code: series.Code, Value: series.Preview(s.now())}, nil
}

// NextByID consumes the next value of the series with the given ID
func (s *NumberSeriesService) NextByID(ctx context.Context, id uuid.UUID) (*SeriesValueResponse, error) {
	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	value, err := s.Next(ctx, series.Code)
	if err != nil {
		return nil, err
	}
	return &SeriesValueResponse{Code: series.Code, Value: value}, nil
}

// Next consumes and returns the next formatted value of seriesCode under a row lock
func (s *NumberSeriesService) Next(ctx context.Context, seriesCode string) (value string, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "number_series", "next", telemetry.SpanAttrSeriesCode, seriesCode)
	defer func() { telemetry.EndSpan(span, err) }()

	err = s.repo.WithLocked(ctx, seriesCode, func(series *settings.NumberSeries) error {
		v, err := series.Consume(s.now())
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return "", err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrReference, value)
	return value, nil
}

// Reset restarts the counter, at 1 unless a start is given
func (s *NumberSeriesService) Reset(ctx context.Context, id uuid.UUID, req ResetNumberSeriesRequest) (*NumberSeriesResponse, error) {
	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	start := req.Start
	if start == 0 {
		start = 1
	}
	if err := series.Reset(start); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, series); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, series); err != nil {
		return nil, err
	}
	resp := ToNumberSeriesResponse(series, s.now())
	return &resp, nil
}

// FormatPreview renders an ad-hoc rule without touching any series
func (s *NumberSeriesService) FormatPreview(req FormatPreviewRequest) (*SeriesValueResponse, error) {
	rule := req.toDomain()
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	seq := req.Sequence
	if seq == 0 {
		seq = 1
	}
	at := s.now()
	if req.At != nil {
		at = *req.At
	}
	return &SeriesValueResponse{Value: rule.Format(seq, at)}, nil
}

// EnsureSeries creates each series whose code does not exist yet and
// returns how many were created
func (s *NumberSeriesService) EnsureSeries(ctx context.Context, defaults []*settings.NumberSeries) (int, error) {
	created := 0
	for _, series := range defaults {
		exists, err := s.repo.ExistsByCode(ctx, series.Code)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := s.repo.Save(ctx, series); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
