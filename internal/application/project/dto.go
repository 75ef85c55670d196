package project

import (
	"time"

	"github.com/b3erp/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectRequest holds the editable project fields
type ProjectRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Description      string          `json:"description"`
	CustomerName     string          `json:"customer_name" binding:"max=200"`
	Priority         string          `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	PlannedStartDate time.Time       `json:"planned_start_date" binding:"required"`
	PlannedEndDate   time.Time       `json:"planned_end_date" binding:"required"`
	Budget           decimal.Decimal `json:"budget"`
	ActualCost       decimal.Decimal `json:"actual_cost"`
	ManagerName      string          `json:"manager_name" binding:"max=100"`
}

func (r ProjectRequest) toDomain() project.Details {
	return project.Details{
		Name:             r.Name,
		Description:      r.Description,
		CustomerName:     r.CustomerName,
		Priority:         project.Priority(r.Priority),
		PlannedStartDate: r.PlannedStartDate,
		PlannedEndDate:   r.PlannedEndDate,
		Budget:           r.Budget,
		ActualCost:       r.ActualCost,
		ManagerName:      r.ManagerName,
	}
}

// ChangeStatusRequest moves a project along its workflow
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft planned in_progress on_hold completed closed cancelled"`
	Reason string `json:"reason" binding:"max=500"`
}

// MilestoneRequest adds a milestone
type MilestoneRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// TaskRequest adds or replaces a task
type TaskRequest struct {
	Title            string          `json:"title" binding:"required,max=200"`
	Description      string          `json:"description"`
	Status           string          `json:"status" binding:"omitempty,oneof=todo in_progress blocked review done cancelled"`
	Priority         string          `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	AssigneeName     string          `json:"assignee_name" binding:"max=100"`
	MilestoneID      *uuid.UUID      `json:"milestone_id"`
	PlannedStartDate *time.Time      `json:"planned_start_date"`
	PlannedEndDate   *time.Time      `json:"planned_end_date"`
	EstimatedHours   decimal.Decimal `json:"estimated_hours"`
	ActualHours      decimal.Decimal `json:"actual_hours"`
	PercentComplete  int             `json:"percent_complete" binding:"min=0,max=100"`
}

func (r TaskRequest) toDomain() project.TaskInput {
	return project.TaskInput{
		Title:            r.Title,
		Description:      r.Description,
		Status:           project.TaskStatus(r.Status),
		Priority:         project.Priority(r.Priority),
		AssigneeName:     r.AssigneeName,
		MilestoneID:      r.MilestoneID,
		PlannedStartDate: r.PlannedStartDate,
		PlannedEndDate:   r.PlannedEndDate,
		EstimatedHours:   r.EstimatedHours,
		ActualHours:      r.ActualHours,
		PercentComplete:  r.PercentComplete,
	}
}

// DependencyRequest makes the task in the path depend on a predecessor
type DependencyRequest struct {
	PredecessorID  uuid.UUID `json:"predecessor_id" binding:"required"`
	DependencyType string    `json:"dependency_type" binding:"omitempty,oneof=FS FF SS SF"`
	LagDays        int       `json:"lag_days"`
}

// ProjectListFilter holds list query parameters
type ProjectListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft planned in_progress on_hold completed closed cancelled"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Health   string `form:"health" binding:"omitempty,oneof=on_track at_risk delayed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TaskListFilter holds task list query parameters
type TaskListFilter struct {
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,oneof=todo in_progress blocked review done cancelled"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Assignee    string `form:"assignee"`
	MilestoneID string `form:"milestone_id" binding:"omitempty,uuid"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProjectResponse represents a project with its milestones, tasks and dependencies
type ProjectResponse struct {
	ID               uuid.UUID                `json:"id"`
	ProjectCode      string                   `json:"project_code"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	CustomerName     string                   `json:"customer_name"`
	Status           string                   `json:"status"`
	Priority         string                   `json:"priority"`
	Health           string                   `json:"health"`
	PlannedStartDate time.Time                `json:"planned_start_date"`
	PlannedEndDate   time.Time                `json:"planned_end_date"`
	ActualStartDate  *time.Time               `json:"actual_start_date,omitempty"`
	ActualEndDate    *time.Time               `json:"actual_end_date,omitempty"`
	Budget           decimal.Decimal          `json:"budget"`
	ActualCost       decimal.Decimal          `json:"actual_cost"`
	ManagerName      string                   `json:"manager_name"`
	Progress         decimal.Decimal          `json:"progress"`
	Milestones       []project.Milestone      `json:"milestones,omitempty"`
	Tasks            []project.Task           `json:"tasks,omitempty"`
	Dependencies     []project.TaskDependency `json:"dependencies,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	Version          int                      `json:"version"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		ProjectCode:      p.ProjectCode,
		Name:             p.Name,
		Description:      p.Description,
		CustomerName:     p.CustomerName,
		Status:           string(p.Status),
		Priority:         string(p.Priority),
		Health:           string(p.Health),
		PlannedStartDate: p.PlannedStartDate,
		PlannedEndDate:   p.PlannedEndDate,
		ActualStartDate:  p.ActualStartDate,
		ActualEndDate:    p.ActualEndDate,
		Budget:           p.Budget,
		ActualCost:       p.ActualCost,
		ManagerName:      p.ManagerName,
		Progress:         p.Progress,
		Milestones:       p.Milestones,
		Tasks:            p.Tasks,
		Dependencies:     p.Dependencies,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}
