package project

import (
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DependencyType is the scheduling relation between two tasks
type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	FinishToFinish DependencyType = "FF"
	StartToStart   DependencyType = "SS"
	StartToFinish  DependencyType = "SF"
)

// IsValid reports whether t is a known dependency type
func (t DependencyType) IsValid() bool {
	switch t {
	case FinishToStart, FinishToFinish, StartToStart, StartToFinish:
		return true
	}
	return false
}

// TaskDependency links a predecessor task to a successor task
type TaskDependency struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	PredecessorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"predecessor_id"`
	SuccessorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"successor_id"`
	DependencyType DependencyType `gorm:"type:varchar(2);not null" json:"dependency_type"`
	LagDays        int            `gorm:"not null;default:0" json:"lag_days"`
}

// TableName returns the table name for GORM
func (TaskDependency) TableName() string {
	return "pm_task_dependencies"
}

// AddDependency makes successor depend on predecessor. Self links,
// duplicates and links that would close a cycle are rejected.
func (p *Project) AddDependency(predecessorID, successorID uuid.UUID, depType DependencyType, lagDays int) (*TaskDependency, error) {
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	if depType == "" {
		depType = FinishToStart
	}
	if !depType.IsValid() {
		return nil, shared.InvalidInput("unknown dependency type: " + string(depType))
	}
	if predecessorID == successorID {
		return nil, shared.InvalidInput("a task cannot depend on itself")
	}
	if _, err := p.FindTask(predecessorID); err != nil {
		return nil, err
	}
	if _, err := p.FindTask(successorID); err != nil {
		return nil, err
	}
	for _, d := range p.Dependencies {
		if d.PredecessorID == predecessorID && d.SuccessorID == successorID {
			return nil, shared.AlreadyExists("dependency already exists")
		}
	}
	if p.reachable(successorID, predecessorID) {
		return nil, shared.InvalidInput("dependency would create a cycle")
	}
	d := TaskDependency{
		ID:             uuid.New(),
		ProjectID:      p.ID,
		PredecessorID:  predecessorID,
		SuccessorID:    successorID,
		DependencyType: depType,
		LagDays:        lagDays,
	}
	p.Dependencies = append(p.Dependencies, d)
	p.Touch()
	return &p.Dependencies[len(p.Dependencies)-1], nil
}

// reachable reports whether to can be reached from from by following
// predecessor -> successor links
func (p *Project) reachable(from, to uuid.UUID) bool {
	next := make(map[uuid.UUID][]uuid.UUID, len(p.Dependencies))
	for _, d := range p.Dependencies {
		next[d.PredecessorID] = append(next[d.PredecessorID], d.SuccessorID)
	}
	seen := map[uuid.UUID]bool{from: true}
	stack := []uuid.UUID{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		for _, n := range next[cur] {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return false
}

// RemoveDependency deletes a dependency of the given successor task
func (p *Project) RemoveDependency(taskID, dependencyID uuid.UUID) error {
	if err := p.ensureOpen(); err != nil {
		return err
	}
	for i, d := range p.Dependencies {
		if d.ID == dependencyID && (d.SuccessorID == taskID || d.PredecessorID == taskID) {
			p.Dependencies = append(p.Dependencies[:i], p.Dependencies[i+1:]...)
			p.Touch()
			return nil
		}
	}
	return shared.NotFound("dependency")
}
