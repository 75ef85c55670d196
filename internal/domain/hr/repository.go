package hr

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindEmployed(ctx context.Context) ([]Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeaveRequestRepository persists leave requests
type LeaveRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]LeaveRequest, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindBlocking returns pending or approved requests of the employee
	// that overlap the given range
	FindBlocking(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]LeaveRequest, error)
	Save(ctx context.Context, request *LeaveRequest) error
}

// PayrollRunRepository persists payroll runs with their entries
type PayrollRunRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PayrollRun, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PayrollRun, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// ExistsForPeriod reports whether a non-cancelled run covers periodStart
	ExistsForPeriod(ctx context.Context, periodStart time.Time) (bool, error)
	Save(ctx context.Context, run *PayrollRun) error
}
