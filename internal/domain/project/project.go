package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const aggregateTypeProject = "project"

// Status is the lifecycle state of a project
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
	StatusClosed     Status = "closed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists every project status
var AllStatuses = []Status{StatusDraft, StatusPlanned, StatusInProgress, StatusOnHold, StatusCompleted, StatusClosed, StatusCancelled}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsFinal reports whether the project accepts no further work
func (s Status) IsFinal() bool {
	return s == StatusClosed || s == StatusCancelled
}

var transitions = map[Status][]Status{
	StatusDraft:      {StatusPlanned},
	StatusPlanned:    {StatusInProgress},
	StatusInProgress: {StatusOnHold, StatusCompleted},
	StatusOnHold:     {StatusInProgress},
	StatusCompleted:  {StatusClosed},
}

// CanTransitionTo reports whether the project may move from s to next.
// Any status except closed may move to cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return !s.IsFinal()
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority ranks projects and tasks
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Health is the schedule and budget health of a project
type Health string

const (
	HealthOnTrack Health = "on_track"
	HealthAtRisk  Health = "at_risk"
	HealthDelayed Health = "delayed"
)

// Project is a customer or internal project with milestones and tasks
type Project struct {
	shared.BaseAggregateRoot
	ProjectCode      string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"project_code"`
	Name             string          `gorm:"type:varchar(200);not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	CustomerName     string          `gorm:"type:varchar(200)" json:"customer_name"`
	Status           Status          `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority         Priority        `gorm:"type:varchar(20);not null;index" json:"priority"`
	Health           Health          `gorm:"type:varchar(20);not null;index" json:"health"`
	PlannedStartDate time.Time       `gorm:"not null" json:"planned_start_date"`
	PlannedEndDate   time.Time       `gorm:"not null" json:"planned_end_date"`
	ActualStartDate  *time.Time      `json:"actual_start_date,omitempty"`
	ActualEndDate    *time.Time      `json:"actual_end_date,omitempty"`
	Budget           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"budget"`
	ActualCost       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"actual_cost"`
	ManagerName      string          `gorm:"type:varchar(100)" json:"manager_name"`
	Progress         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"progress"`

	Milestones   []Milestone      `gorm:"foreignKey:ProjectID" json:"milestones,omitempty"`
	Tasks        []Task           `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Dependencies []TaskDependency `gorm:"foreignKey:ProjectID" json:"dependencies,omitempty"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "pm_projects"
}

// Details holds the editable attributes of a project
type Details struct {
	Name             string
	Description      string
	CustomerName     string
	Priority         Priority
	PlannedStartDate time.Time
	PlannedEndDate   time.Time
	Budget           decimal.Decimal
	ActualCost       decimal.Decimal
	ManagerName      string
}

func (d *Details) normalise() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return shared.InvalidInput("project name is required")
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.IsValid() {
		return shared.InvalidInput("unknown priority: " + string(d.Priority))
	}
	if d.PlannedStartDate.IsZero() || d.PlannedEndDate.IsZero() {
		return shared.InvalidInput("planned start and end dates are required")
	}
	if d.PlannedEndDate.Before(d.PlannedStartDate) {
		return shared.InvalidInput("planned_end_date cannot be before planned_start_date")
	}
	if d.Budget.IsNegative() || d.ActualCost.IsNegative() {
		return shared.InvalidInput("budget and actual_cost cannot be negative")
	}
	return nil
}

// NewProject creates a draft project
func NewProject(code string, d Details) (*Project, error) {
	if err := d.normalise(); err != nil {
		return nil, err
	}
	p := &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectCode:       code,
		Status:            StatusDraft,
		Health:            HealthOnTrack,
		Progress:          decimal.Zero,
	}
	p.apply(d)
	return p, nil
}

func (p *Project) apply(d Details) {
	p.Name = d.Name
	p.Description = d.Description
	p.CustomerName = strings.TrimSpace(d.CustomerName)
	p.Priority = d.Priority
	p.PlannedStartDate = d.PlannedStartDate
	p.PlannedEndDate = d.PlannedEndDate
	p.Budget = shared.RoundMoney(d.Budget)
	p.ActualCost = shared.RoundMoney(d.ActualCost)
	p.ManagerName = d.ManagerName
}

// Update replaces the project details
func (p *Project) Update(d Details) error {
	if p.Status.IsFinal() {
		return shared.InvalidState(fmt.Sprintf("cannot update project in %s status", p.Status))
	}
	if err := d.normalise(); err != nil {
		return err
	}
	p.apply(d)
	p.Touch()
	return nil
}

// ChangeStatus moves the project along its workflow
func (p *Project) ChangeStatus(to Status, actor, reason string, now time.Time) error {
	if !to.IsValid() {
		return shared.InvalidInput("unknown project status: " + string(to))
	}
	if !p.Status.CanTransitionTo(to) {
		return shared.InvalidState(fmt.Sprintf("cannot change project status from %s to %s", p.Status, to))
	}
	if to == StatusInProgress && p.ActualStartDate == nil {
		p.ActualStartDate = &now
	}
	if to == StatusCompleted {
		p.ActualEndDate = &now
	}
	event := shared.NewStatusChangedEvent(aggregateTypeProject, p.ID, p.ProjectCode, string(p.Status), string(to))
	event.Actor = actor
	event.Reason = reason
	p.Status = to
	p.Touch()
	p.AddDomainEvent(event)
	return nil
}

// CanDelete reports whether the project may be removed
func (p *Project) CanDelete() error {
	if p.Status != StatusDraft && p.Status != StatusCancelled {
		return shared.InvalidState("only draft or cancelled projects can be deleted")
	}
	return nil
}

func (p *Project) ensureOpen() error {
	if p.Status.IsFinal() {
		return shared.InvalidState(fmt.Sprintf("project is %s", p.Status))
	}
	return nil
}
