package hr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EmployeeService handles employee records
type EmployeeService struct {
	repo    hr.EmployeeRepository
	leaves  hr.LeaveRequestRepository
	numbers shared.NumberGenerator
	events  shared.EventPublisher
	logger  *zap.Logger

	phoneRegion string
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	repo hr.EmployeeRepository,
	leaves hr.LeaveRequestRepository,
	numbers shared.NumberGenerator,
	events shared.EventPublisher,
	logger *zap.Logger,
) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		repo:    repo,
		leaves:  leaves,
		numbers: numbers,
		events:  events,
		logger:  logger.Named("employees"),
	}
}

// WithPhoneRegion sets the region assumed for phone numbers given without
// a country code
func (s *EmployeeService) WithPhoneRegion(region string) *EmployeeService {
	s.phoneRegion = region
	return s
}

// Create hires an employee coded from the EMPLOYEE series
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	profile := req.toDomain()
	profile.PhoneRegion = s.phoneRegion
	if err := s.ensureEmailFree(ctx, profile.Email, nil); err != nil {
		return nil, err
	}
	employee, err := hr.NewEmployee("", profile)
	if err != nil {
		return nil, err
	}
	code, err := s.numbers.Next(ctx, settings.SeriesEmployee)
	if err != nil {
		return nil, err
	}
	employee.EmployeeCode = code
	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("employee created",
		zap.String("employee_code", employee.EmployeeCode),
		zap.String("department", employee.Department))
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

func (s *EmployeeService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	email = strings.ToLower(strings.TrimSpace(email))
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.AlreadyExists(fmt.Sprintf("employee with email %s already exists", email))
	}
	return nil
}

// GetByID retrieves an employee
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

func (f EmployeeListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.
		With("department", f.Department).
		With("status", f.Status).
		With("employment_type", f.EmploymentType).
		With("manager_id", shared.OptionalID(f.ManagerID))
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves employees with filtering and pagination
func (s *EmployeeService) List(ctx context.Context, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toEmployeeResponses(list), total, nil
}

// ListForExport returns every employee matching filter, ignoring pagination
func (s *EmployeeService) ListForExport(ctx context.Context, filter EmployeeListFilter) ([]EmployeeResponse, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(list), nil
}

func toEmployeeResponses(list []hr.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(list))
	for i := range list {
		out[i] = ToEmployeeResponse(&list[i])
	}
	return out
}

// Update replaces the profile and optionally the status of a current employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	profile := req.toDomain()
	profile.PhoneRegion = s.phoneRegion
	if err := s.ensureEmailFree(ctx, profile.Email, &id); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(e *hr.Employee) error {
		if err := e.Update(profile); err != nil {
			return err
		}
		if req.Status != "" && hr.EmployeeStatus(req.Status) != e.Status {
			return e.SetStatus(hr.EmployeeStatus(req.Status))
		}
		return nil
	})
}

// Delete removes an employee record
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Resign records a voluntary exit
func (s *EmployeeService) Resign(ctx context.Context, id uuid.UUID, req SeparationRequest) (*EmployeeResponse, error) {
	return s.mutate(ctx, id, func(e *hr.Employee) error {
		return e.Resign(exitDate(req.ExitDate), req.Reason)
	})
}

// Terminate records an involuntary exit
func (s *EmployeeService) Terminate(ctx context.Context, id uuid.UUID, req SeparationRequest) (*EmployeeResponse, error) {
	return s.mutate(ctx, id, func(e *hr.Employee) error {
		return e.Terminate(exitDate(req.ExitDate), req.Reason)
	})
}

func exitDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (s *EmployeeService) mutate(ctx context.Context, id uuid.UUID, fn func(*hr.Employee) error) (*EmployeeResponse, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(employee); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Statistics summarises the workforce together with the open leave queue
func (s *EmployeeService) Statistics(ctx context.Context, filter EmployeeListFilter) (*EmployeeStatisticsResponse, error) {
	var (
		employees []hr.Employee
		pending   int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
		if err != nil {
			return err
		}
		employees = list
		return nil
	})
	g.Go(func() error {
		count, err := s.leaves.Count(ctx, shared.Filter{}.With("status", string(hr.LeavePending)))
		if err != nil {
			return err
		}
		pending = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &EmployeeStatisticsResponse{
		EmployeeStatistics:   hr.ComputeEmployeeStatistics(employees),
		PendingLeaveRequests: pending,
	}, nil
}
