package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var employeeQuery = listQuery{
	searchColumns: []string{"employee_code", "first_name", "last_name", "email"},
	conditions: map[string]string{
		"department":      "department = ?",
		"status":          "status = ?",
		"employment_type": "employment_type = ?",
		"manager_id":      "manager_id = ?",
	},
	sortFields:   EmployeeSortFields,
	defaultOrder: "employee_code ASC",
}

var leaveRequestQuery = listQuery{
	searchColumns: []string{"request_number", "employee_name", "reason"},
	conditions: map[string]string{
		"status":      "status = ?",
		"leave_type":  "leave_type = ?",
		"employee_id": "employee_id = ?",
	},
	sortFields:   LeaveRequestSortFields,
	defaultOrder: "from_date DESC, request_number DESC",
}

var payrollRunQuery = listQuery{
	searchColumns: []string{"run_number"},
	conditions: map[string]string{
		"status": "status = ?",
	},
	sortFields:   PayrollRunSortFields,
	defaultOrder: "period_start DESC",
}

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	var e hr.Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

// FindAll finds employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Employee, error) {
	var list []hr.Employee
	query := employeeQuery.apply(r.db.WithContext(ctx).Model(&hr.Employee{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := employeeQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&hr.Employee{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindEmployed returns everyone not yet separated, in code order
func (r *GormEmployeeRepository) FindEmployed(ctx context.Context) ([]hr.Employee, error) {
	var list []hr.Employee
	if err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []hr.EmployeeStatus{hr.EmployeeResigned, hr.EmployeeTerminated}).
		Order("employee_code ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ExistsByEmail checks if the email is taken, optionally ignoring one employee
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&hr.Employee{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, employee, employee)
	})
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&hr.Employee{}, "id = ?", id))
}

// GormLeaveRequestRepository implements LeaveRequestRepository using GORM
type GormLeaveRequestRepository struct {
	db *gorm.DB
}

// NewGormLeaveRequestRepository creates a new GormLeaveRequestRepository
func NewGormLeaveRequestRepository(db *gorm.DB) *GormLeaveRequestRepository {
	return &GormLeaveRequestRepository{db: db}
}

// FindByID finds a leave request by ID
func (r *GormLeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.LeaveRequest, error) {
	var req hr.LeaveRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

// FindAll finds leave requests matching the filter
func (r *GormLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.LeaveRequest, error) {
	var list []hr.LeaveRequest
	query := leaveRequestQuery.apply(r.db.WithContext(ctx).Model(&hr.LeaveRequest{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts leave requests matching the filter
func (r *GormLeaveRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := leaveRequestQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&hr.LeaveRequest{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBlocking returns pending or approved requests overlapping [from, to]
func (r *GormLeaveRequestRepository) FindBlocking(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]hr.LeaveRequest, error) {
	var list []hr.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []hr.LeaveStatus{hr.LeavePending, hr.LeaveApproved}).
		Where("from_date <= ? AND to_date >= ?", to, from).
		Order("from_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save creates or updates a leave request
func (r *GormLeaveRequestRepository) Save(ctx context.Context, request *hr.LeaveRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, request, request)
	})
}

// GormPayrollRunRepository implements PayrollRunRepository using GORM
type GormPayrollRunRepository struct {
	db *gorm.DB
}

// NewGormPayrollRunRepository creates a new GormPayrollRunRepository
func NewGormPayrollRunRepository(db *gorm.DB) *GormPayrollRunRepository {
	return &GormPayrollRunRepository{db: db}
}

// FindByID loads a payroll run with its entries
func (r *GormPayrollRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.PayrollRun, error) {
	var run hr.PayrollRun
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("employee_code ASC") }).
		First(&run, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &run, nil
}

// FindAll finds payroll runs matching the filter
func (r *GormPayrollRunRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.PayrollRun, error) {
	var list []hr.PayrollRun
	query := payrollRunQuery.apply(r.db.WithContext(ctx).Model(&hr.PayrollRun{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts payroll runs matching the filter
func (r *GormPayrollRunRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := payrollRunQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&hr.PayrollRun{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForPeriod reports whether a non-cancelled run covers periodStart
func (r *GormPayrollRunRepository) ExistsForPeriod(ctx context.Context, periodStart time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&hr.PayrollRun{}).
		Where("status <> ?", hr.PayrollCancelled).
		Where("period_start <= ? AND period_end >= ?", periodStart, periodStart).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save writes the run and replaces its entries
func (r *GormPayrollRunRepository) Save(ctx context.Context, run *hr.PayrollRun) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, run, run); err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(run.Entries))
		for i, e := range run.Entries {
			ids[i] = e.ID
		}
		if err := pruneChildren(tx, &hr.PayrollEntry{}, "payroll_run_id", run.ID, ids); err != nil {
			return err
		}
		return upsertChildren(tx, &run.Entries, len(run.Entries))
	})
}

var (
	_ hr.EmployeeRepository     = (*GormEmployeeRepository)(nil)
	_ hr.LeaveRequestRepository = (*GormLeaveRequestRepository)(nil)
	_ hr.PayrollRunRepository   = (*GormPayrollRunRepository)(nil)
)
