package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeaveService handles leave requests and their approval trail
type LeaveService struct {
	repo      hr.LeaveRequestRepository
	employees hr.EmployeeRepository
	numbers   shared.NumberGenerator
	events    shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(
	repo hr.LeaveRequestRepository,
	employees hr.EmployeeRepository,
	numbers shared.NumberGenerator,
	events shared.EventPublisher,
	logger *zap.Logger,
) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		repo:      repo,
		employees: employees,
		numbers:   numbers,
		events:    events,
		logger:    logger.Named("leave"),
		now:       time.Now,
	}
}

// Stages returns the approval trail every request follows
func (s *LeaveService) Stages() []hr.ApprovalStage {
	return hr.LeaveApprovalStages
}

// Create files a pending request numbered from the LEAVE series. A request
// overlapping another pending or approved one of the same employee is refused.
func (s *LeaveService) Create(ctx context.Context, req CreateLeaveRequest) (*LeaveRequestResponse, error) {
	employee, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	request, err := hr.NewLeaveRequest("", employee, hr.LeaveType(req.LeaveType), req.FromDate, req.ToDate, req.HalfDay, req.Reason)
	if err != nil {
		return nil, err
	}

	blocking, err := s.repo.FindBlocking(ctx, employee.ID, request.FromDate, request.ToDate)
	if err != nil {
		return nil, err
	}
	if len(blocking) > 0 {
		return nil, shared.InvalidState(fmt.Sprintf("overlaps leave request %s (%s)",
			blocking[0].RequestNumber, blocking[0].Status))
	}

	number, err := s.numbers.Next(ctx, settings.SeriesLeave)
	if err != nil {
		return nil, err
	}
	request.RequestNumber = number
	if err := s.repo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info("leave requested",
		zap.String("request_number", number),
		zap.String("employee_code", employee.EmployeeCode),
		zap.String("days", request.Days.String()))
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}

// GetByID retrieves a leave request
func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (*LeaveRequestResponse, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}

func (f LeaveListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.
		With("status", f.Status).
		With("leave_type", f.LeaveType).
		With("employee_id", shared.OptionalID(f.EmployeeID))
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves leave requests with filtering and pagination
func (s *LeaveService) List(ctx context.Context, filter LeaveListFilter) ([]LeaveRequestResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LeaveRequestResponse, len(list))
	for i := range list {
		out[i] = ToLeaveRequestResponse(&list[i])
	}
	return out, total, nil
}

// Statistics summarises every request matching filter
func (s *LeaveService) Statistics(ctx context.Context, filter LeaveListFilter) (*hr.LeaveStatistics, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	stats := hr.ComputeLeaveStatistics(list)
	return &stats, nil
}

// Approve completes the approval trail of a pending request
func (s *LeaveService) Approve(ctx context.Context, id uuid.UUID, approver string) (*LeaveRequestResponse, error) {
	return s.mutate(ctx, id, func(l *hr.LeaveRequest) error { return l.Approve(approver) })
}

// Reject declines a pending request
func (s *LeaveService) Reject(ctx context.Context, id uuid.UUID, approver string, req LeaveDecisionRequest) (*LeaveRequestResponse, error) {
	return s.mutate(ctx, id, func(l *hr.LeaveRequest) error { return l.Reject(approver, req.Reason) })
}

// Cancel withdraws a pending request, or an approved one that has not started
func (s *LeaveService) Cancel(ctx context.Context, id uuid.UUID, actor string) (*LeaveRequestResponse, error) {
	return s.mutate(ctx, id, func(l *hr.LeaveRequest) error { return l.Cancel(actor, s.now()) })
}

func (s *LeaveService) mutate(ctx context.Context, id uuid.UUID, fn func(*hr.LeaveRequest) error) (*LeaveRequestResponse, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(request); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, request); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, request); err != nil {
		return nil, err
	}
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}
