package hr

import (
	"context"
	"fmt"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayrollServiceDeps holds the collaborators of PayrollService
type PayrollServiceDeps struct {
	Runs      hr.PayrollRunRepository
	Employees hr.EmployeeRepository
	Numbers   shared.NumberGenerator
	Events    shared.EventPublisher
	Policy    hr.DeductionPolicy
	Logger    *zap.Logger
}

// PayrollService handles payroll runs
type PayrollService struct {
	runs      hr.PayrollRunRepository
	employees hr.EmployeeRepository
	numbers   shared.NumberGenerator
	events    shared.EventPublisher
	policy    hr.DeductionPolicy
	logger    *zap.Logger
}

// NewPayrollService creates a new PayrollService. A zero Policy falls back
// to hr.DefaultDeductionPolicy.
func NewPayrollService(deps PayrollServiceDeps) *PayrollService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := deps.Policy
	if policy == (hr.DeductionPolicy{}) {
		policy = hr.DefaultDeductionPolicy()
	}
	return &PayrollService{
		runs:      deps.Runs,
		employees: deps.Employees,
		numbers:   deps.Numbers,
		events:    deps.Events,
		policy:    policy,
		logger:    logger.Named("payroll"),
	}
}

// Stages returns the payroll workflow
func (s *PayrollService) Stages() []hr.PayrollStage {
	return hr.PayrollStages
}

// Create defines a draft run numbered from the PAYROLL series. Only one
// live run may cover a period start.
func (s *PayrollService) Create(ctx context.Context, req CreatePayrollRunRequest) (*PayrollRunResponse, error) {
	run, err := hr.NewPayrollRun("", req.PeriodStart, req.PeriodEnd, req.PayDate)
	if err != nil {
		return nil, err
	}
	exists, err := s.runs.ExistsForPeriod(ctx, run.PeriodStart)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.InvalidState(fmt.Sprintf("a payroll run already covers %s", run.PeriodStart.Format("2006-01-02")))
	}
	number, err := s.numbers.Next(ctx, settings.SeriesPayroll)
	if err != nil {
		return nil, err
	}
	run.RunNumber = number
	run.Notes = req.Notes
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}
	resp := ToPayrollRunResponse(run)
	return &resp, nil
}

// GetByID retrieves a run with its entries
func (s *PayrollService) GetByID(ctx context.Context, id uuid.UUID) (*PayrollRunResponse, error) {
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayrollRunResponse(run)
	return &resp, nil
}

func (f PayrollListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.With("status", f.Status)
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves run headers with filtering and pagination
func (s *PayrollService) List(ctx context.Context, filter PayrollListFilter) ([]PayrollRunResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.runs.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.runs.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PayrollRunResponse, len(list))
	for i := range list {
		out[i] = ToPayrollRunResponse(&list[i])
	}
	return out, total, nil
}

// Statistics summarises every run
func (s *PayrollService) Statistics(ctx context.Context) (*hr.PayrollStatistics, error) {
	list, err := s.runs.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	stats := hr.ComputePayrollStatistics(list)
	return &stats, nil
}

// Process computes one entry per current employee
func (s *PayrollService) Process(ctx context.Context, id uuid.UUID) (_ *PayrollRunResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payroll", "process", telemetry.SpanAttrAggregateID, id)
	defer func() { telemetry.EndSpan(span, err) }()

	employees, err := s.employees.FindEmployed(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := s.mutate(ctx, id, func(r *hr.PayrollRun) error {
		return r.Process(employees, s.policy)
	})
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrReference, resp.RunNumber,
		telemetry.SpanAttrEntries, resp.EmployeeCount,
		telemetry.SpanAttrAmount, resp.TotalNet.String(),
	)
	s.logger.Info("payroll processed",
		zap.String("run_number", resp.RunNumber),
		zap.Int("employees", resp.EmployeeCount),
		zap.String("total_net", resp.TotalNet.String()))
	return resp, nil
}

// Approve signs off a processed run
func (s *PayrollService) Approve(ctx context.Context, id uuid.UUID, approver string) (*PayrollRunResponse, error) {
	return s.mutate(ctx, id, func(r *hr.PayrollRun) error { return r.Approve(approver) })
}

// Pay marks an approved run as disbursed
func (s *PayrollService) Pay(ctx context.Context, id uuid.UUID, actor string) (*PayrollRunResponse, error) {
	return s.mutate(ctx, id, func(r *hr.PayrollRun) error { return r.Pay(actor) })
}

// Cancel abandons an unpaid run
func (s *PayrollService) Cancel(ctx context.Context, id uuid.UUID, actor string) (*PayrollRunResponse, error) {
	return s.mutate(ctx, id, func(r *hr.PayrollRun) error { return r.Cancel(actor) })
}

func (s *PayrollService) mutate(ctx context.Context, id uuid.UUID, fn func(*hr.PayrollRun) error) (*PayrollRunResponse, error) {
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(run); err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, run); err != nil {
		return nil, err
	}
	resp := ToPayrollRunResponse(run)
	return &resp, nil
}
