package project

import (
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ComputeProgress returns the completion percentage of the tasks, weighted by
// estimated hours. Without estimates it falls back to done over total.
// Cancelled tasks are ignored.
func ComputeProgress(tasks []Task) float64 {
	weighted, hours := decimal.Zero, decimal.Zero
	done, total := 0, 0
	for _, t := range tasks {
		if t.Status == TaskCancelled {
			continue
		}
		total++
		if t.Status == TaskDone {
			done++
		}
		hours = hours.Add(t.EstimatedHours)
		weighted = weighted.Add(t.EstimatedHours.Mul(decimal.NewFromInt(int64(t.PercentComplete))))
	}
	if hours.IsPositive() {
		v, _ := weighted.Div(hours).Round(2).Float64()
		return v
	}
	return shared.Percent(int64(done), int64(total))
}

// Summary is a point-in-time overview of a project
type Summary struct {
	ProjectID           string             `json:"project_id"`
	ProjectCode         string             `json:"project_code"`
	Status              Status             `json:"status"`
	TotalTasks          int                `json:"total_tasks"`
	TasksByStatus       map[TaskStatus]int `json:"tasks_by_status"`
	OverdueTasks        int                `json:"overdue_tasks"`
	Progress            float64            `json:"progress"`
	MilestonesTotal     int                `json:"milestones_total"`
	MilestonesCompleted int                `json:"milestones_completed"`
	MilestonesOverdue   int                `json:"milestones_overdue"`
	Budget              decimal.Decimal    `json:"budget"`
	ActualCost          decimal.Decimal    `json:"actual_cost"`
	BudgetUtilisation   float64            `json:"budget_utilisation"`
	EstimatedHours      decimal.Decimal    `json:"estimated_hours"`
	ActualHours         decimal.Decimal    `json:"actual_hours"`
	Health              Health             `json:"health"`
}

// Summarise builds the project summary as of the given time
func (p *Project) Summarise(asOf time.Time) Summary {
	s := Summary{
		ProjectID:       p.ID.String(),
		ProjectCode:     p.ProjectCode,
		Status:          p.Status,
		TotalTasks:      len(p.Tasks),
		TasksByStatus:   make(map[TaskStatus]int, len(AllTaskStatuses)),
		Progress:        ComputeProgress(p.Tasks),
		MilestonesTotal: len(p.Milestones),
		Budget:          p.Budget,
		ActualCost:      p.ActualCost,
		EstimatedHours:  decimal.Zero,
		ActualHours:     decimal.Zero,
	}
	for _, st := range AllTaskStatuses {
		s.TasksByStatus[st] = 0
	}
	for i := range p.Tasks {
		t := &p.Tasks[i]
		s.TasksByStatus[t.Status]++
		if t.IsOverdue(asOf) {
			s.OverdueTasks++
		}
		s.EstimatedHours = s.EstimatedHours.Add(t.EstimatedHours)
		s.ActualHours = s.ActualHours.Add(t.ActualHours)
	}
	for i := range p.Milestones {
		m := &p.Milestones[i]
		if m.Status == MilestoneCompleted {
			s.MilestonesCompleted++
		} else if m.IsOverdue(asOf) {
			s.MilestonesOverdue++
		}
	}
	s.BudgetUtilisation, _ = shared.PercentDecimal(p.ActualCost, p.Budget).Float64()
	s.Health = deriveHealth(p, s, asOf)
	return s
}

// deriveHealth marks a project delayed when it is past its planned end or
// has missed milestones, and at risk when it has overdue tasks or is over budget.
func deriveHealth(p *Project, s Summary, asOf time.Time) Health {
	if p.Status.IsFinal() || p.Status == StatusCompleted {
		return p.Health
	}
	if asOf.After(p.PlannedEndDate) || s.MilestonesOverdue > 0 {
		return HealthDelayed
	}
	if s.OverdueTasks > 0 || s.BudgetUtilisation > 100 {
		return HealthAtRisk
	}
	return HealthOnTrack
}

// RefreshHealth stores the derived health on the project
func (p *Project) RefreshHealth(asOf time.Time) Summary {
	s := p.Summarise(asOf)
	p.Health = s.Health
	p.Progress = decimal.NewFromFloat(s.Progress)
	return s
}
