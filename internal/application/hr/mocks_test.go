package hr

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployed(ctx context.Context) ([]hr.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLeaveRequestRepository struct {
	mock.Mock
}

func (m *MockLeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.LeaveRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindBlocking(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]hr.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) Save(ctx context.Context, request *hr.LeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockPayrollRunRepository struct {
	mock.Mock
}

func (m *MockPayrollRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.PayrollRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.PayrollRun, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayrollRunRepository) ExistsForPeriod(ctx context.Context, periodStart time.Time) (bool, error) {
	args := m.Called(ctx, periodStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRunRepository) Save(ctx context.Context, run *hr.PayrollRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context, seriesCode string) (string, error) {
	args := m.Called(ctx, seriesCode)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
