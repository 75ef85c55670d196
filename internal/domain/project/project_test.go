package project

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject("PRJ-2024-001", Details{
		Name:             "Line 3 retrofit",
		CustomerName:     "Acme",
		PlannedStartDate: start,
		PlannedEndDate:   start.AddDate(0, 6, 0),
		Budget:           decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	return p
}

func TestNewProject(t *testing.T) {
	p := newTestProject(t)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, PriorityMedium, p.Priority)
	assert.Equal(t, HealthOnTrack, p.Health)

	_, err := NewProject("PRJ-2", Details{Name: "x", PlannedStartDate: start, PlannedEndDate: start.AddDate(0, 0, -1)})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusDraft, StatusPlanned, true},
		{StatusDraft, StatusInProgress, false},
		{StatusPlanned, StatusInProgress, true},
		{StatusInProgress, StatusOnHold, true},
		{StatusOnHold, StatusInProgress, true},
		{StatusOnHold, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusClosed, true},
		{StatusCompleted, StatusCancelled, true},
		{StatusClosed, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestChangeStatus(t *testing.T) {
	p := newTestProject(t)
	now := start.AddDate(0, 0, 3)
	require.NoError(t, p.ChangeStatus(StatusPlanned, "pm", "", now))
	require.NoError(t, p.ChangeStatus(StatusInProgress, "pm", "", now))
	require.NotNil(t, p.ActualStartDate)
	assert.True(t, errors.Is(p.ChangeStatus(StatusClosed, "pm", "", now), shared.ErrInvalidState))
	assert.Error(t, p.ChangeStatus("bogus", "pm", "", now))
	assert.Len(t, p.GetDomainEvents(), 2)
	assert.Error(t, p.CanDelete())
}

func TestTasksAndProgress(t *testing.T) {
	p := newTestProject(t)
	a, err := p.AddTask(TaskInput{Title: "Design", EstimatedHours: decimal.NewFromInt(30), PercentComplete: 100, Status: TaskDone})
	require.NoError(t, err)
	assert.Equal(t, "PRJ-2024-001-T001", a.TaskCode)
	assert.NotNil(t, a.CompletedAt)

	b, err := p.AddTask(TaskInput{Title: "Build", EstimatedHours: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, 75.0, ComputeProgress(p.Tasks))

	_, err = p.UpdateTask(b.ID, TaskInput{Title: "Build", EstimatedHours: decimal.NewFromInt(10), PercentComplete: 50, Status: TaskInProgress})
	require.NoError(t, err)
	assert.Equal(t, 87.5, ComputeProgress(p.Tasks))
	assert.True(t, p.Progress.Equal(decimal.RequireFromString("87.5")))

	_, err = p.AddTask(TaskInput{Title: "x", PercentComplete: 120})
	assert.Error(t, err)
}

func TestComputeProgress_CountFallback(t *testing.T) {
	tasks := []Task{{Status: TaskDone}, {Status: TaskTodo}, {Status: TaskTodo}, {Status: TaskCancelled}}
	assert.Equal(t, 33.33, ComputeProgress(tasks))
	assert.Equal(t, 0.0, ComputeProgress(nil))
}

func TestDependencies(t *testing.T) {
	p := newTestProject(t)
	a, _ := p.AddTask(TaskInput{Title: "A"})
	b, _ := p.AddTask(TaskInput{Title: "B"})
	c, _ := p.AddTask(TaskInput{Title: "C"})

	_, err := p.AddDependency(a.ID, a.ID, FinishToStart, 0)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	ab, err := p.AddDependency(a.ID, b.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, FinishToStart, ab.DependencyType)
	_, err = p.AddDependency(b.ID, c.ID, StartToStart, 2)
	require.NoError(t, err)

	_, err = p.AddDependency(c.ID, a.ID, FinishToStart, 0)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput), "cycle a->b->c->a")

	_, err = p.AddDependency(a.ID, b.ID, FinishToFinish, 0)
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	_, err = p.AddDependency(a.ID, b.ID, "XX", 0)
	assert.Error(t, err)

	require.NoError(t, p.RemoveDependency(b.ID, ab.ID))
	assert.Len(t, p.Dependencies, 1)
	assert.True(t, errors.Is(p.RemoveDependency(b.ID, ab.ID), shared.ErrNotFound))

	_, err = p.AddDependency(c.ID, a.ID, FinishToStart, 0)
	assert.NoError(t, err, "no cycle once a->b is gone")
}

func TestMilestonesAndSummary(t *testing.T) {
	p := newTestProject(t)
	m1, err := p.AddMilestone("Design freeze", "", start.AddDate(0, 1, 0))
	require.NoError(t, err)
	_, err = p.AddMilestone("FAT", "", start.AddDate(0, 4, 0))
	require.NoError(t, err)

	due := start.AddDate(0, 0, 10)
	_, err = p.AddTask(TaskInput{Title: "Late", PlannedEndDate: &due})
	require.NoError(t, err)

	asOf := start.AddDate(0, 0, 20)
	s := p.Summarise(asOf)
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 2, s.MilestonesTotal)
	assert.Equal(t, HealthAtRisk, s.Health)

	_, err = p.CompleteMilestone(m1.ID, asOf)
	require.NoError(t, err)
	_, err = p.CompleteMilestone(m1.ID, asOf)
	assert.Error(t, err)

	p.ActualCost = decimal.NewFromInt(25000)
	s = p.RefreshHealth(start.AddDate(0, 5, 0))
	assert.Equal(t, 1, s.MilestonesCompleted)
	assert.Equal(t, 1, s.MilestonesOverdue)
	assert.Equal(t, 50.0, s.BudgetUtilisation)
	assert.Equal(t, HealthDelayed, p.Health)
}
