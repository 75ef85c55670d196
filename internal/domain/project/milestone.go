package project

import (
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MilestoneStatus is the state of a milestone
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneMissed     MilestoneStatus = "missed"
)

// Milestone is a dated checkpoint in a project
type Milestone struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	Status      MilestoneStatus `gorm:"type:varchar(20);not null" json:"status"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Sequence    int             `gorm:"not null" json:"sequence"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for GORM
func (Milestone) TableName() string {
	return "pm_project_milestones"
}

// IsOverdue reports whether an unfinished milestone is past its due date
func (m *Milestone) IsOverdue(asOf time.Time) bool {
	return m.Status != MilestoneCompleted && asOf.After(m.DueDate)
}

// AddMilestone appends a pending milestone
func (p *Project) AddMilestone(name, description string, due time.Time) (*Milestone, error) {
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("milestone name is required")
	}
	if due.IsZero() {
		return nil, shared.InvalidInput("milestone due date is required")
	}
	m := Milestone{
		ID:          uuid.New(),
		ProjectID:   p.ID,
		Name:        name,
		Description: description,
		DueDate:     due,
		Status:      MilestonePending,
		Sequence:    len(p.Milestones) + 1,
		CreatedAt:   time.Now(),
	}
	p.Milestones = append(p.Milestones, m)
	p.Touch()
	return &p.Milestones[len(p.Milestones)-1], nil
}

// FindMilestone returns the milestone with the given id
func (p *Project) FindMilestone(id uuid.UUID) (*Milestone, error) {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return &p.Milestones[i], nil
		}
	}
	return nil, shared.NotFound("milestone")
}

// CompleteMilestone marks a milestone completed
func (p *Project) CompleteMilestone(id uuid.UUID, at time.Time) (*Milestone, error) {
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	m, err := p.FindMilestone(id)
	if err != nil {
		return nil, err
	}
	if m.Status == MilestoneCompleted {
		return nil, shared.InvalidState("milestone is already completed")
	}
	m.Status = MilestoneCompleted
	m.CompletedAt = &at
	p.Touch()
	event := shared.NewStatusChangedEvent("project_milestone", m.ID, p.ProjectCode+"/"+m.Name, string(MilestonePending), string(MilestoneCompleted))
	p.AddDomainEvent(event)
	return m, nil
}
