package quality

import (
	"context"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const seedLockKey = "seed:defect-codes"

// DefectCodeService manages the defect code catalog
type DefectCodeService struct {
	repo    quality.DefectCodeRepository
	catalog []DefectCodeSeed
	locker  RunLocker
	logger  *zap.Logger
}

// NewDefectCodeService creates a new DefectCodeService. locker may be nil
// for single-instance deployments.
func NewDefectCodeService(repo quality.DefectCodeRepository, catalog []DefectCodeSeed, locker RunLocker, logger *zap.Logger) *DefectCodeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefectCodeService{
		repo:    repo,
		catalog: catalog,
		locker:  locker,
		logger:  logger.Named("defect_codes"),
	}
}

// Create adds a custom defect code
func (s *DefectCodeService) Create(ctx context.Context, req CreateDefectCodeRequest) (*DefectCodeResponse, error) {
	code, err := quality.NewDefectCode(req.Code, req.Name, quality.DefectCategory(req.Category), quality.Severity(req.Severity))
	if err != nil {
		return nil, err
	}
	code.Description = req.Description

	inserted, err := s.repo.InsertIfAbsent(ctx, code)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, shared.AlreadyExists("defect code " + code.Code + " already exists")
	}
	resp := ToDefectCodeResponse(code)
	return &resp, nil
}

// Get retrieves a defect code by its code
func (s *DefectCodeService) Get(ctx context.Context, code string) (*DefectCodeResponse, error) {
	d, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToDefectCodeResponse(d)
	return &resp, nil
}

// List retrieves defect codes with filtering and pagination
func (s *DefectCodeService) List(ctx context.Context, filter DefectCodeListFilter) ([]DefectCodeResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.
		With("severity", filter.Severity).
		With("category", filter.Category).
		With("is_active", filter.IsActive)
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 50
	}

	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]DefectCodeResponse, len(list))
	for i := range list {
		out[i] = ToDefectCodeResponse(&list[i])
	}
	return out, total, nil
}

// Update changes a defect code; system codes may be deactivated this way
func (s *DefectCodeService) Update(ctx context.Context, code string, req UpdateDefectCodeRequest) (*DefectCodeResponse, error) {
	d, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	active := d.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := d.Update(req.Name, req.Description, quality.DefectCategory(req.Category), quality.Severity(req.Severity), active); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDefectCodeResponse(d)
	return &resp, nil
}

// Delete removes a custom defect code
func (s *DefectCodeService) Delete(ctx context.Context, code string) error {
	d, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := d.CanDelete(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, d.Code)
}

// SeedDefectCodes inserts every catalog entry whose code is not stored yet.
// With a locker configured the run is skipped while another instance holds
// the lock, and the result is then zero.
func (s *DefectCodeService) SeedDefectCodes(ctx context.Context) (SeedResult, error) {
	if s.locker == nil {
		return s.seed(ctx)
	}
	var result SeedResult
	err := s.locker.WithLock(ctx, seedLockKey, func(ctx context.Context) error {
		var err error
		result, err = s.seed(ctx)
		return err
	})
	return result, err
}

func (s *DefectCodeService) seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	for _, entry := range s.catalog {
		code, err := quality.NewSystemDefectCode(entry.Code, entry.Name, entry.Description, entry.Category, entry.Severity)
		if err != nil {
			return result, err
		}
		inserted, err := s.repo.InsertIfAbsent(ctx, code)
		if err != nil {
			return result, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}
	s.logger.Info("defect codes seeded",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
