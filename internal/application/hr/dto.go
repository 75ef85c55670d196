package hr

import (
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompensationRequest holds the monthly salary components
type CompensationRequest struct {
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HRA                decimal.Decimal `json:"hra"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	SpecialAllowance   decimal.Decimal `json:"special_allowance"`
}

// EmployeeRequest holds the editable employee fields
type EmployeeRequest struct {
	FirstName      string     `json:"first_name" binding:"required,max=100"`
	LastName       string     `json:"last_name" binding:"required,max=100"`
	Email          string     `json:"email" binding:"required,email,max=200"`
	Phone          string     `json:"phone" binding:"max=30"`
	Gender         string     `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Department     string     `json:"department" binding:"required,max=100"`
	Designation    string     `json:"designation" binding:"required,max=100"`
	EmploymentType string     `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract intern"`
	JoiningDate    time.Time  `json:"joining_date"`
	ManagerID      *uuid.UUID `json:"manager_id"`
	CompensationRequest
	BankAccountNo string `json:"bank_account_no" binding:"max=34"`
	BankName      string `json:"bank_name" binding:"max=100"`
	PAN           string `json:"pan" binding:"max=20"`
}

func (r EmployeeRequest) toDomain() hr.EmployeeProfile {
	return hr.EmployeeProfile{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Gender:         r.Gender,
		DateOfBirth:    r.DateOfBirth,
		Department:     r.Department,
		Designation:    r.Designation,
		EmploymentType: hr.EmploymentType(r.EmploymentType),
		JoiningDate:    r.JoiningDate,
		ManagerID:      r.ManagerID,
		Compensation: hr.Compensation{
			BasicSalary:        r.BasicSalary,
			HRA:                r.HRA,
			TransportAllowance: r.TransportAllowance,
			MedicalAllowance:   r.MedicalAllowance,
			SpecialAllowance:   r.SpecialAllowance,
		},
		BankAccountNo: r.BankAccountNo,
		BankName:      r.BankName,
		PAN:           r.PAN,
	}
}

// CreateEmployeeRequest hires an employee
type CreateEmployeeRequest struct {
	EmployeeRequest
}

// UpdateEmployeeRequest replaces the profile of an employee
type UpdateEmployeeRequest struct {
	EmployeeRequest
	Status string `json:"status" binding:"omitempty,oneof=active on_leave probation"`
}

// SeparationRequest records a resignation or termination
type SeparationRequest struct {
	ExitDate *time.Time `json:"exit_date"`
	Reason   string     `json:"reason" binding:"max=500"`
}

// EmployeeListFilter holds list query parameters
type EmployeeListFilter struct {
	Search         string `form:"search"`
	Department     string `form:"department"`
	Status         string `form:"status" binding:"omitempty,oneof=active on_leave probation resigned terminated"`
	EmploymentType string `form:"employment_type" binding:"omitempty,oneof=full_time part_time contract intern"`
	ManagerID      string `form:"manager_id" binding:"omitempty,uuid"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// EmployeeResponse represents an employee
type EmployeeResponse struct {
	ID             uuid.UUID       `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Gender         string          `json:"gender"`
	DateOfBirth    *time.Time      `json:"date_of_birth,omitempty"`
	Department     string          `json:"department"`
	Designation    string          `json:"designation"`
	EmploymentType string          `json:"employment_type"`
	Status         string          `json:"status"`
	JoiningDate    time.Time       `json:"joining_date"`
	ExitDate       *time.Time      `json:"exit_date,omitempty"`
	ManagerID      *uuid.UUID      `json:"manager_id,omitempty"`
	Compensation   hr.Compensation `json:"compensation"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	BankAccountNo  string          `json:"bank_account_no"`
	BankName       string          `json:"bank_name"`
	PAN            string          `json:"pan"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		Gender:         e.Gender,
		DateOfBirth:    e.DateOfBirth,
		Department:     e.Department,
		Designation:    e.Designation,
		EmploymentType: string(e.EmploymentType),
		Status:         string(e.Status),
		JoiningDate:    e.JoiningDate,
		ExitDate:       e.ExitDate,
		ManagerID:      e.ManagerID,
		Compensation:   e.Compensation,
		GrossSalary:    e.Compensation.Gross(),
		BankAccountNo:  e.BankAccountNo,
		BankName:       e.BankName,
		PAN:            e.PAN,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Version:        e.Version,
	}
}

// EmployeeStatisticsResponse adds open leave to the workforce summary
type EmployeeStatisticsResponse struct {
	hr.EmployeeStatistics
	PendingLeaveRequests int64 `json:"pending_leave_requests"`
}

// CreateLeaveRequest files a leave request
type CreateLeaveRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	LeaveType  string    `json:"leave_type" binding:"required,oneof=casual sick earned maternity paternity unpaid compensatory"`
	FromDate   time.Time `json:"from_date" binding:"required"`
	ToDate     time.Time `json:"to_date" binding:"required"`
	HalfDay    bool      `json:"half_day"`
	Reason     string    `json:"reason" binding:"required,max=500"`
}

// LeaveDecisionRequest carries the reason of a rejection
type LeaveDecisionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// LeaveListFilter holds list query parameters
type LeaveListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType  string `form:"leave_type" binding:"omitempty,oneof=casual sick earned maternity paternity unpaid compensatory"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaveRequestResponse represents a leave request
type LeaveRequestResponse struct {
	ID              uuid.UUID       `json:"id"`
	RequestNumber   string          `json:"request_number"`
	EmployeeID      uuid.UUID       `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	LeaveType       string          `json:"leave_type"`
	FromDate        time.Time       `json:"from_date"`
	ToDate          time.Time       `json:"to_date"`
	HalfDay         bool            `json:"half_day"`
	Days            decimal.Decimal `json:"days"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	CurrentStage    int             `json:"current_stage"`
	ApproverName    string          `json:"approver_name,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToLeaveRequestResponse converts a domain LeaveRequest to LeaveRequestResponse
func ToLeaveRequestResponse(l *hr.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              l.ID,
		RequestNumber:   l.RequestNumber,
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		LeaveType:       string(l.LeaveType),
		FromDate:        l.FromDate,
		ToDate:          l.ToDate,
		HalfDay:         l.HalfDay,
		Days:            l.Days,
		Reason:          l.Reason,
		Status:          string(l.Status),
		CurrentStage:    l.CurrentStage,
		ApproverName:    l.ApproverName,
		DecidedAt:       l.DecidedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// CreatePayrollRunRequest defines a pay period
type CreatePayrollRunRequest struct {
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
	PayDate     time.Time `json:"pay_date" binding:"required"`
	Notes       string    `json:"notes"`
}

// PayrollListFilter holds list query parameters
type PayrollListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft processed approved paid cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PayrollRunResponse represents a payroll run; entries are only set on detail reads
type PayrollRunResponse struct {
	ID              uuid.UUID         `json:"id"`
	RunNumber       string            `json:"run_number"`
	PeriodStart     time.Time         `json:"period_start"`
	PeriodEnd       time.Time         `json:"period_end"`
	PayDate         time.Time         `json:"pay_date"`
	Status          string            `json:"status"`
	EmployeeCount   int               `json:"employee_count"`
	TotalGross      decimal.Decimal   `json:"total_gross"`
	TotalDeductions decimal.Decimal   `json:"total_deductions"`
	TotalNet        decimal.Decimal   `json:"total_net"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
	ApprovedBy      string            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	Notes           string            `json:"notes"`
	Entries         []hr.PayrollEntry `json:"entries,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToPayrollRunResponse converts a domain PayrollRun to PayrollRunResponse
func ToPayrollRunResponse(r *hr.PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:              r.ID,
		RunNumber:       r.RunNumber,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		PayDate:         r.PayDate,
		Status:          string(r.Status),
		EmployeeCount:   r.EmployeeCount,
		TotalGross:      r.TotalGross,
		TotalDeductions: r.TotalDeductions,
		TotalNet:        r.TotalNet,
		ProcessedAt:     r.ProcessedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		PaidAt:          r.PaidAt,
		Notes:           r.Notes,
		Entries:         r.Entries,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
