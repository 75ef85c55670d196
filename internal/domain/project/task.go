package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskStatus is the state of a task
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

// AllTaskStatuses lists every task status
var AllTaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskBlocked, TaskReview, TaskDone, TaskCancelled}

// IsValid reports whether s is a known task status
func (s TaskStatus) IsValid() bool {
	for _, v := range AllTaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task is a unit of work within a project
type Task struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	TaskCode         string          `gorm:"type:varchar(40);not null" json:"task_code"`
	Title            string          `gorm:"type:varchar(200);not null" json:"title"`
	Description      string          `gorm:"type:text" json:"description"`
	Status           TaskStatus      `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority         Priority        `gorm:"type:varchar(20);not null" json:"priority"`
	AssigneeName     string          `gorm:"type:varchar(100)" json:"assignee_name"`
	MilestoneID      *uuid.UUID      `gorm:"type:uuid" json:"milestone_id,omitempty"`
	PlannedStartDate *time.Time      `json:"planned_start_date,omitempty"`
	PlannedEndDate   *time.Time      `json:"planned_end_date,omitempty"`
	EstimatedHours   decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"estimated_hours"`
	ActualHours      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"actual_hours"`
	PercentComplete  int             `gorm:"not null;default:0" json:"percent_complete"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "pm_project_tasks"
}

// IsOverdue reports whether an open task is past its planned end
func (t *Task) IsOverdue(asOf time.Time) bool {
	if t.Status == TaskDone || t.Status == TaskCancelled || t.PlannedEndDate == nil {
		return false
	}
	return asOf.After(*t.PlannedEndDate)
}

// TaskInput holds the editable attributes of a task
type TaskInput struct {
	Title            string
	Description      string
	Status           TaskStatus
	Priority         Priority
	AssigneeName     string
	MilestoneID      *uuid.UUID
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	EstimatedHours   decimal.Decimal
	ActualHours      decimal.Decimal
	PercentComplete  int
}

func (p *Project) normaliseTask(in *TaskInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return shared.InvalidInput("task title is required")
	}
	if in.Status == "" {
		in.Status = TaskTodo
	}
	if !in.Status.IsValid() {
		return shared.InvalidInput("unknown task status: " + string(in.Status))
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.IsValid() {
		return shared.InvalidInput("unknown priority: " + string(in.Priority))
	}
	if in.PercentComplete < 0 || in.PercentComplete > 100 {
		return shared.InvalidInput("percent_complete must be between 0 and 100")
	}
	if in.EstimatedHours.IsNegative() || in.ActualHours.IsNegative() {
		return shared.InvalidInput("hours cannot be negative")
	}
	if in.PlannedStartDate != nil && in.PlannedEndDate != nil && in.PlannedEndDate.Before(*in.PlannedStartDate) {
		return shared.InvalidInput("task planned end cannot be before planned start")
	}
	if in.MilestoneID != nil {
		if _, err := p.FindMilestone(*in.MilestoneID); err != nil {
			return shared.InvalidInput("milestone does not belong to this project")
		}
	}
	if in.Status == TaskDone {
		in.PercentComplete = 100
	}
	return nil
}

func (t *Task) apply(in TaskInput, now time.Time) {
	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	t.AssigneeName = in.AssigneeName
	t.MilestoneID = in.MilestoneID
	t.PlannedStartDate = in.PlannedStartDate
	t.PlannedEndDate = in.PlannedEndDate
	t.EstimatedHours = in.EstimatedHours
	t.ActualHours = in.ActualHours
	t.PercentComplete = in.PercentComplete
	if in.Status == TaskDone && t.Status != TaskDone {
		t.CompletedAt = &now
	}
	if in.Status != TaskDone {
		t.CompletedAt = nil
	}
	t.Status = in.Status
	t.UpdatedAt = now
}

// AddTask appends a task; its code is the project code plus a sequence
func (p *Project) AddTask(in TaskInput) (*Task, error) {
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	if err := p.normaliseTask(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	t := Task{
		ID:        uuid.New(),
		ProjectID: p.ID,
		TaskCode:  fmt.Sprintf("%s-T%03d", p.ProjectCode, len(p.Tasks)+1),
		CreatedAt: now,
	}
	t.apply(in, now)
	p.Tasks = append(p.Tasks, t)
	p.refreshProgress()
	p.Touch()
	return &p.Tasks[len(p.Tasks)-1], nil
}

// FindTask returns the task with the given id
func (p *Project) FindTask(id uuid.UUID) (*Task, error) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], nil
		}
	}
	return nil, shared.NotFound("task")
}

// UpdateTask replaces the attributes of a task
func (p *Project) UpdateTask(id uuid.UUID, in TaskInput) (*Task, error) {
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	t, err := p.FindTask(id)
	if err != nil {
		return nil, err
	}
	if err := p.normaliseTask(&in); err != nil {
		return nil, err
	}
	t.apply(in, time.Now())
	p.refreshProgress()
	p.Touch()
	return t, nil
}

func (p *Project) refreshProgress() {
	p.Progress = decimal.NewFromFloat(ComputeProgress(p.Tasks))
}
