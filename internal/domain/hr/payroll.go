package hr

import (
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypePayroll = "payroll_run"

// PayrollStatus is the processing state of a payroll run
type PayrollStatus string

const (
	PayrollDraft     PayrollStatus = "draft"
	PayrollProcessed PayrollStatus = "processed"
	PayrollApproved  PayrollStatus = "approved"
	PayrollPaid      PayrollStatus = "paid"
	PayrollCancelled PayrollStatus = "cancelled"
)

// AllPayrollStatuses lists every status
var AllPayrollStatuses = []PayrollStatus{PayrollDraft, PayrollProcessed, PayrollApproved, PayrollPaid, PayrollCancelled}

// PayrollStage describes one step of the payroll workflow
type PayrollStage struct {
	Sequence    int           `json:"sequence"`
	Status      PayrollStatus `json:"status"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// PayrollStages is the fixed workflow a run moves through
var PayrollStages = []PayrollStage{
	{Sequence: 1, Status: PayrollDraft, Name: "Draft", Description: "Period defined, no entries yet"},
	{Sequence: 2, Status: PayrollProcessed, Name: "Processed", Description: "Entries computed for active employees"},
	{Sequence: 3, Status: PayrollApproved, Name: "Approved", Description: "Totals reviewed and approved"},
	{Sequence: 4, Status: PayrollPaid, Name: "Paid", Description: "Salaries disbursed"},
}

// DeductionPolicy holds the statutory deduction rules applied at processing
type DeductionPolicy struct {
	ProvidentFundRate decimal.Decimal // percent of basic
	ProfessionalTax   decimal.Decimal // flat per employee
	IncomeTaxRate     decimal.Decimal // percent of gross
	ESIRate           decimal.Decimal // percent of gross
	ESIWageCeiling    decimal.Decimal // ESI applies when gross <= ceiling
}

// DefaultDeductionPolicy returns the standard deduction rules
func DefaultDeductionPolicy() DeductionPolicy {
	return DeductionPolicy{
		ProvidentFundRate: decimal.NewFromInt(12),
		ProfessionalTax:   decimal.NewFromInt(200),
		IncomeTaxRate:     decimal.NewFromInt(10),
		ESIRate:           decimal.RequireFromString("0.75"),
		ESIWageCeiling:    decimal.NewFromInt(21000),
	}
}

// PayrollEntry is one employee's payslip within a run
type PayrollEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;index" json:"payroll_run_id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	EmployeeCode string    `gorm:"type:varchar(30);not null" json:"employee_code"`
	EmployeeName string    `gorm:"type:varchar(200);not null" json:"employee_name"`
	Department   string    `gorm:"type:varchar(100)" json:"department"`

	Compensation `gorm:"embedded"`
	OvertimePay  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"overtime_pay"`
	GrossPay     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"gross_pay"`

	ProvidentFund   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"provident_fund"`
	ProfessionalTax decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"professional_tax"`
	IncomeTax       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"income_tax"`
	ESI             decimal.Decimal `gorm:"column:esi;type:decimal(18,2);not null;default:0" json:"esi"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_deductions"`
	NetPay          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_pay"`
}

// TableName returns the table name for GORM
func (PayrollEntry) TableName() string {
	return "payroll_entries"
}

// ComputeEntry builds a payslip for an employee under the given policy
func ComputeEntry(runID uuid.UUID, e *Employee, overtime decimal.Decimal, policy DeductionPolicy) PayrollEntry {
	gross := e.Compensation.Gross().Add(overtime)
	pf := shared.RoundMoney(e.BasicSalary.Mul(policy.ProvidentFundRate).Div(hundred))
	incomeTax := shared.RoundMoney(gross.Mul(policy.IncomeTaxRate).Div(hundred))
	esi := decimal.Zero
	if gross.LessThanOrEqual(policy.ESIWageCeiling) {
		esi = shared.RoundMoney(gross.Mul(policy.ESIRate).Div(hundred))
	}
	profTax := policy.ProfessionalTax
	if gross.IsZero() {
		profTax = decimal.Zero
	}
	deductions := pf.Add(profTax).Add(incomeTax).Add(esi)
	return PayrollEntry{
		ID:              uuid.New(),
		PayrollRunID:    runID,
		EmployeeID:      e.ID,
		EmployeeCode:    e.EmployeeCode,
		EmployeeName:    e.FullName(),
		Department:      e.Department,
		Compensation:    e.Compensation,
		OvertimePay:     shared.RoundMoney(overtime),
		GrossPay:        shared.RoundMoney(gross),
		ProvidentFund:   pf,
		ProfessionalTax: profTax,
		IncomeTax:       incomeTax,
		ESI:             esi,
		TotalDeductions: deductions,
		NetPay:          shared.RoundMoney(gross.Sub(deductions)),
	}
}

var hundred = decimal.NewFromInt(100)

// PayrollRun computes and tracks salaries for one pay period
type PayrollRun struct {
	shared.BaseAggregateRoot
	RunNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"run_number"`
	PeriodStart     time.Time       `gorm:"not null;index" json:"period_start"`
	PeriodEnd       time.Time       `gorm:"not null" json:"period_end"`
	PayDate         time.Time       `gorm:"not null" json:"pay_date"`
	Status          PayrollStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	EmployeeCount   int             `gorm:"not null;default:0" json:"employee_count"`
	TotalGross      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_gross"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_deductions"`
	TotalNet        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_net"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	ApprovedBy      string          `gorm:"type:varchar(100)" json:"approved_by"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes"`

	Entries []PayrollEntry `gorm:"foreignKey:PayrollRunID" json:"entries,omitempty"`
}

// TableName returns the table name for GORM
func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// NewPayrollRun creates a draft run for the period
func NewPayrollRun(number string, periodStart, periodEnd, payDate time.Time) (*PayrollRun, error) {
	periodStart, periodEnd, payDate = dateOnly(periodStart), dateOnly(periodEnd), dateOnly(payDate)
	if !periodEnd.After(periodStart) {
		return nil, shared.InvalidInput("period_end must be after period_start")
	}
	if payDate.Before(periodEnd) {
		return nil, shared.InvalidInput("pay_date cannot be before period_end")
	}
	return &PayrollRun{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RunNumber:         number,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		PayDate:           payDate,
		Status:            PayrollDraft,
		TotalGross:        decimal.Zero,
		TotalDeductions:   decimal.Zero,
		TotalNet:          decimal.Zero,
	}, nil
}

func (r *PayrollRun) transition(to PayrollStatus, actor string) {
	event := shared.NewStatusChangedEvent(aggregateTypePayroll, r.ID, r.RunNumber, string(r.Status), string(to))
	event.Actor = actor
	r.Status = to
	r.Touch()
	r.AddDomainEvent(event)
}

// Process computes entries for every employee on the payroll during the period
func (r *PayrollRun) Process(employees []Employee, policy DeductionPolicy) error {
	if r.Status != PayrollDraft {
		return shared.InvalidState(fmt.Sprintf("cannot process payroll in %s status", r.Status))
	}
	entries := make([]PayrollEntry, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		if !e.Status.IsEmployed() || e.JoiningDate.After(r.PeriodEnd) {
			continue
		}
		entries = append(entries, ComputeEntry(r.ID, e, decimal.Zero, policy))
	}
	if len(entries) == 0 {
		return shared.InvalidState("no eligible employees for this period")
	}
	r.Entries = entries
	r.recalculate()
	now := time.Now()
	r.ProcessedAt = &now
	r.transition(PayrollProcessed, "")
	return nil
}

func (r *PayrollRun) recalculate() {
	gross, ded, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range r.Entries {
		gross = gross.Add(e.GrossPay)
		ded = ded.Add(e.TotalDeductions)
		net = net.Add(e.NetPay)
	}
	r.EmployeeCount = len(r.Entries)
	r.TotalGross = gross
	r.TotalDeductions = ded
	r.TotalNet = net
}

// Approve signs off a processed run
func (r *PayrollRun) Approve(approver string) error {
	if r.Status != PayrollProcessed {
		return shared.InvalidState(fmt.Sprintf("cannot approve payroll in %s status", r.Status))
	}
	now := time.Now()
	r.ApprovedBy = approver
	r.ApprovedAt = &now
	r.transition(PayrollApproved, approver)
	return nil
}

// Pay marks an approved run as disbursed
func (r *PayrollRun) Pay(actor string) error {
	if r.Status != PayrollApproved {
		return shared.InvalidState(fmt.Sprintf("cannot pay payroll in %s status", r.Status))
	}
	now := time.Now()
	r.PaidAt = &now
	r.transition(PayrollPaid, actor)
	return nil
}

// Cancel abandons a run that has not been paid
func (r *PayrollRun) Cancel(actor string) error {
	if r.Status == PayrollPaid || r.Status == PayrollCancelled {
		return shared.InvalidState(fmt.Sprintf("cannot cancel payroll in %s status", r.Status))
	}
	r.transition(PayrollCancelled, actor)
	return nil
}
