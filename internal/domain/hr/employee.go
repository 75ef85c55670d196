package hr

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const aggregateTypeEmployee = "employee"

// EmploymentType is the contractual basis of employment
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

// IsValid reports whether t is a known employment type
func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}

// EmployeeStatus is the employment state
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
	EmployeeProbation  EmployeeStatus = "probation"
	EmployeeResigned   EmployeeStatus = "resigned"
	EmployeeTerminated EmployeeStatus = "terminated"
)

// AllEmployeeStatuses lists every status
var AllEmployeeStatuses = []EmployeeStatus{EmployeeActive, EmployeeOnLeave, EmployeeProbation, EmployeeResigned, EmployeeTerminated}

// IsEmployed reports whether the employee is still on the payroll
func (s EmployeeStatus) IsEmployed() bool {
	return s == EmployeeActive || s == EmployeeOnLeave || s == EmployeeProbation
}

// NormaliseName trims and title-cases a personal name.
// A Caser is stateful, so one is built per call.
func NormaliseName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

// DefaultPhoneRegion is used when a profile names no phone region
const DefaultPhoneRegion = "IN"

// NormalisePhone returns phone in E.164 form; blank stays blank. region is
// assumed for numbers given without a country code.
func NormalisePhone(phone, region string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultPhoneRegion
	}
	num, err := libphonenumber.Parse(phone, strings.ToUpper(region))
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return "", shared.InvalidInput("phone is not a valid number")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// Compensation holds the monthly salary components
type Compensation struct {
	BasicSalary        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"basic_salary"`
	HRA                decimal.Decimal `gorm:"column:hra;type:decimal(18,2);not null;default:0" json:"hra"`
	TransportAllowance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"medical_allowance"`
	SpecialAllowance   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"special_allowance"`
}

// Gross is the sum of all monthly components
func (c Compensation) Gross() decimal.Decimal {
	return c.BasicSalary.Add(c.HRA).Add(c.TransportAllowance).Add(c.MedicalAllowance).Add(c.SpecialAllowance)
}

func (c Compensation) validate() error {
	for _, v := range []decimal.Decimal{c.BasicSalary, c.HRA, c.TransportAllowance, c.MedicalAllowance, c.SpecialAllowance} {
		if v.IsNegative() {
			return shared.InvalidInput("salary components cannot be negative")
		}
	}
	return nil
}

// Employee is a person on the company's books
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeCode   string         `gorm:"type:varchar(30);not null;uniqueIndex" json:"employee_code"`
	FirstName      string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string         `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone          string         `gorm:"type:varchar(30)" json:"phone"`
	Gender         string         `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	Department     string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Designation    string         `gorm:"type:varchar(100);not null" json:"designation"`
	EmploymentType EmploymentType `gorm:"type:varchar(20);not null;index" json:"employment_type"`
	Status         EmployeeStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	JoiningDate    time.Time      `gorm:"not null" json:"joining_date"`
	ExitDate       *time.Time     `json:"exit_date,omitempty"`
	ManagerID      *uuid.UUID     `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	Compensation   `gorm:"embedded"`
	BankAccountNo string `gorm:"type:varchar(34)" json:"bank_account_no"`
	BankName      string `gorm:"type:varchar(100)" json:"bank_name"`
	PAN           string `gorm:"column:pan;type:varchar(20)" json:"pan"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// EmployeeProfile holds the editable attributes of an employee
type EmployeeProfile struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Gender         string
	DateOfBirth    *time.Time
	Department     string
	Designation    string
	EmploymentType EmploymentType
	JoiningDate    time.Time
	ManagerID      *uuid.UUID
	Compensation   Compensation
	BankAccountNo  string
	BankName       string
	PAN            string
	PhoneRegion    string // not stored
}

func (p *EmployeeProfile) normalise() error {
	p.FirstName = NormaliseName(p.FirstName)
	p.LastName = NormaliseName(p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.FirstName == "" || p.LastName == "" {
		return shared.InvalidInput("first_name and last_name are required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return shared.InvalidInput("email is invalid")
	}
	phone, err := NormalisePhone(p.Phone, p.PhoneRegion)
	if err != nil {
		return err
	}
	p.Phone = phone
	if strings.TrimSpace(p.Department) == "" || strings.TrimSpace(p.Designation) == "" {
		return shared.InvalidInput("department and designation are required")
	}
	if p.EmploymentType == "" {
		p.EmploymentType = EmploymentFullTime
	}
	if !p.EmploymentType.IsValid() {
		return shared.InvalidInput("unknown employment type: " + string(p.EmploymentType))
	}
	if p.JoiningDate.IsZero() {
		p.JoiningDate = time.Now()
	}
	if p.DateOfBirth != nil && !p.DateOfBirth.Before(p.JoiningDate) {
		return shared.InvalidInput("date_of_birth must be before joining_date")
	}
	p.PAN = strings.ToUpper(strings.TrimSpace(p.PAN))
	return p.Compensation.validate()
}

// NewEmployee creates an employee; interns and contractors start active,
// everyone else starts on probation.
func NewEmployee(code string, profile EmployeeProfile) (*Employee, error) {
	if err := profile.normalise(); err != nil {
		return nil, err
	}
	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeCode:      code,
		Status:            EmployeeProbation,
	}
	if profile.EmploymentType == EmploymentIntern || profile.EmploymentType == EmploymentContract {
		e.Status = EmployeeActive
	}
	e.apply(profile)
	return e, nil
}

func (e *Employee) apply(p EmployeeProfile) {
	e.FirstName = p.FirstName
	e.LastName = p.LastName
	e.Email = p.Email
	e.Phone = p.Phone
	e.Gender = p.Gender
	e.DateOfBirth = p.DateOfBirth
	e.Department = strings.TrimSpace(p.Department)
	e.Designation = strings.TrimSpace(p.Designation)
	e.EmploymentType = p.EmploymentType
	e.JoiningDate = p.JoiningDate
	e.ManagerID = p.ManagerID
	e.Compensation = p.Compensation
	e.BankAccountNo = p.BankAccountNo
	e.BankName = p.BankName
	e.PAN = p.PAN
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Update replaces the profile of a current employee
func (e *Employee) Update(p EmployeeProfile) error {
	if !e.Status.IsEmployed() {
		return shared.InvalidState("former employees cannot be updated")
	}
	if err := p.normalise(); err != nil {
		return err
	}
	if p.ManagerID != nil && *p.ManagerID == e.ID {
		return shared.InvalidInput("an employee cannot manage themselves")
	}
	e.apply(p)
	e.Touch()
	return nil
}

// SetStatus moves a current employee between active, on_leave and probation
func (e *Employee) SetStatus(status EmployeeStatus) error {
	if !e.Status.IsEmployed() || !status.IsEmployed() {
		return shared.InvalidState(fmt.Sprintf("cannot change status from %s to %s", e.Status, status))
	}
	e.Status = status
	e.Touch()
	return nil
}

func (e *Employee) separate(to EmployeeStatus, exitDate time.Time, reason string) error {
	if !e.Status.IsEmployed() {
		return shared.InvalidState(fmt.Sprintf("employee is already %s", e.Status))
	}
	if exitDate.IsZero() {
		exitDate = time.Now()
	}
	if exitDate.Before(e.JoiningDate) {
		return shared.InvalidInput("exit date cannot be before joining date")
	}
	event := shared.NewStatusChangedEvent(aggregateTypeEmployee, e.ID, e.EmployeeCode, string(e.Status), string(to))
	event.Reason = reason
	e.Status = to
	e.ExitDate = &exitDate
	e.Touch()
	e.AddDomainEvent(event)
	return nil
}

// Resign records a voluntary exit
func (e *Employee) Resign(exitDate time.Time, reason string) error {
	return e.separate(EmployeeResigned, exitDate, reason)
}

// Terminate records an involuntary exit
func (e *Employee) Terminate(exitDate time.Time, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("termination reason is required")
	}
	return e.separate(EmployeeTerminated, exitDate, reason)
}
