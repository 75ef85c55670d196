package hr

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypeLeave = "leave_request"

// LeaveType is the category of leave requested
type LeaveType string

const (
	LeaveCasual       LeaveType = "casual"
	LeaveSick         LeaveType = "sick"
	LeaveEarned       LeaveType = "earned"
	LeaveMaternity    LeaveType = "maternity"
	LeavePaternity    LeaveType = "paternity"
	LeaveUnpaid       LeaveType = "unpaid"
	LeaveCompensatory LeaveType = "compensatory"
)

// IsValid reports whether t is a known leave type
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveCasual, LeaveSick, LeaveEarned, LeaveMaternity, LeavePaternity, LeaveUnpaid, LeaveCompensatory:
		return true
	}
	return false
}

// LeaveStatus is the decision state of a request
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// AllLeaveStatuses lists every status
var AllLeaveStatuses = []LeaveStatus{LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled}

// ApprovalStage is one step of the leave approval trail
type ApprovalStage struct {
	Sequence int    `json:"sequence"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LeaveApprovalStages is the fixed approval trail every request follows
var LeaveApprovalStages = []ApprovalStage{
	{Sequence: 1, Name: "Employee Submission", Role: "employee"},
	{Sequence: 2, Name: "Manager Review", Role: "manager"},
	{Sequence: 3, Name: "HR Verification", Role: "hr"},
	{Sequence: 4, Name: "Final Approval", Role: "admin"},
}

// LeaveRequest is an employee's request for time off
type LeaveRequest struct {
	shared.BaseAggregateRoot
	RequestNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"request_number"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	EmployeeName    string          `gorm:"type:varchar(200);not null" json:"employee_name"`
	LeaveType       LeaveType       `gorm:"type:varchar(20);not null;index" json:"leave_type"`
	FromDate        time.Time       `gorm:"not null;index" json:"from_date"`
	ToDate          time.Time       `gorm:"not null;index" json:"to_date"`
	HalfDay         bool            `gorm:"not null;default:false" json:"half_day"`
	Days            decimal.Decimal `gorm:"type:decimal(5,1);not null" json:"days"`
	Reason          string          `gorm:"type:varchar(500);not null" json:"reason"`
	Status          LeaveStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CurrentStage    int             `gorm:"not null;default:1" json:"current_stage"`
	ApproverName    string          `gorm:"type:varchar(100)" json:"approver_name"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectionReason string          `gorm:"type:varchar(500)" json:"rejection_reason"`
}

// TableName returns the table name for GORM
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// NewLeaveRequest creates a pending request. Days counts calendar days
// inclusively, or 0.5 for a single half day.
func NewLeaveRequest(number string, employee *Employee, leaveType LeaveType, from, to time.Time, halfDay bool, reason string) (*LeaveRequest, error) {
	if employee == nil || !employee.Status.IsEmployed() {
		return nil, shared.InvalidState("leave can only be requested for current employees")
	}
	if !leaveType.IsValid() {
		return nil, shared.InvalidInput("unknown leave type: " + string(leaveType))
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.InvalidInput("reason is required")
	}
	from, to = dateOnly(from), dateOnly(to)
	if to.Before(from) {
		return nil, shared.InvalidInput("to_date cannot be before from_date")
	}
	if halfDay && !from.Equal(to) {
		return nil, shared.InvalidInput("a half day must start and end on the same date")
	}

	days := decimal.NewFromInt(int64(to.Sub(from).Hours()/24) + 1)
	if halfDay {
		days = decimal.RequireFromString("0.5")
	}
	return &LeaveRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestNumber:     number,
		EmployeeID:        employee.ID,
		EmployeeName:      employee.FullName(),
		LeaveType:         leaveType,
		FromDate:          from,
		ToDate:            to,
		HalfDay:           halfDay,
		Days:              days,
		Reason:            strings.TrimSpace(reason),
		Status:            LeavePending,
		CurrentStage:      2,
	}, nil
}

// Overlaps reports whether the two requests share at least one day
func (l *LeaveRequest) Overlaps(from, to time.Time) bool {
	return !dateOnly(to).Before(l.FromDate) && !dateOnly(from).After(l.ToDate)
}

// IsBlocking reports whether the request reserves its dates
func (l *LeaveRequest) IsBlocking() bool {
	return l.Status == LeavePending || l.Status == LeaveApproved
}

func (l *LeaveRequest) decide(to LeaveStatus, approver, reason string) {
	now := time.Now()
	event := shared.NewStatusChangedEvent(aggregateTypeLeave, l.ID, l.RequestNumber, string(l.Status), string(to))
	event.Actor = approver
	event.Reason = reason
	l.Status = to
	l.ApproverName = approver
	l.DecidedAt = &now
	l.Touch()
	l.AddDomainEvent(event)
}

// Approve completes the approval trail
func (l *LeaveRequest) Approve(approver string) error {
	if l.Status != LeavePending {
		return shared.InvalidState(fmt.Sprintf("cannot approve leave in %s status", l.Status))
	}
	if strings.TrimSpace(approver) == "" {
		return shared.InvalidInput("approver is required")
	}
	l.CurrentStage = len(LeaveApprovalStages)
	l.decide(LeaveApproved, approver, "")
	return nil
}

// Reject declines the request with a reason
func (l *LeaveRequest) Reject(approver, reason string) error {
	if l.Status != LeavePending {
		return shared.InvalidState(fmt.Sprintf("cannot reject leave in %s status", l.Status))
	}
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("rejection reason is required")
	}
	l.RejectionReason = reason
	l.decide(LeaveRejected, approver, reason)
	return nil
}

// Cancel withdraws a pending request, or an approved one before it starts
func (l *LeaveRequest) Cancel(actor string, now time.Time) error {
	switch l.Status {
	case LeavePending:
	case LeaveApproved:
		if !dateOnly(now).Before(l.FromDate) {
			return shared.InvalidState("approved leave can only be cancelled before it starts")
		}
	default:
		return shared.InvalidState(fmt.Sprintf("cannot cancel leave in %s status", l.Status))
	}
	l.decide(LeaveCancelled, actor, "")
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
