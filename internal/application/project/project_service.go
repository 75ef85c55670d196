package project

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/project"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectService handles projects and their work breakdown
type ProjectService struct {
	repo    project.ProjectRepository
	numbers shared.NumberGenerator
	events  shared.EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo project.ProjectRepository, numbers shared.NumberGenerator, events shared.EventPublisher, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		repo:    repo,
		numbers: numbers,
		events:  events,
		logger:  logger.Named("projects"),
		now:     time.Now,
	}
}

// Create creates a draft project coded from the PROJECT series
func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject("", req.toDomain())
	if err != nil {
		return nil, err
	}
	code, err := s.numbers.Next(ctx, settings.SeriesProject)
	if err != nil {
		return nil, err
	}
	p.ProjectCode = code
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// GetByID retrieves a project with milestones, tasks and dependencies
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

func pagedFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   search,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves project headers with filtering and pagination
func (s *ProjectService) List(ctx context.Context, filter ProjectListFilter) ([]ProjectResponse, int64, error) {
	domainFilter := pagedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search).
		With("status", filter.Status).
		With("priority", filter.Priority).
		With("health", filter.Health)
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProjectResponse, len(list))
	for i := range list {
		out[i] = ToProjectResponse(&list[i])
	}
	return out, total, nil
}

// Update replaces the details of an open project
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req ProjectRequest) (*ProjectResponse, error) {
	p, err := s.mutate(ctx, id, func(p *project.Project) error { return p.Update(req.toDomain()) })
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Delete removes a draft or cancelled project
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.CanDelete(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ChangeStatus moves a project along its workflow
func (s *ProjectService) ChangeStatus(ctx context.Context, id uuid.UUID, actor string, req ChangeStatusRequest) (*ProjectResponse, error) {
	p, err := s.mutate(ctx, id, func(p *project.Project) error {
		return p.ChangeStatus(project.Status(req.Status), actor, req.Reason, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("project status changed",
		zap.String("project_code", p.ProjectCode),
		zap.String("status", string(p.Status)),
		zap.String("actor", actor))
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Summary returns task, milestone and budget figures as of now
func (s *ProjectService) Summary(ctx context.Context, id uuid.UUID) (*project.Summary, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := p.Summarise(s.now())
	return &summary, nil
}

// ListMilestones returns the milestones of a project in sequence order
func (s *ProjectService) ListMilestones(ctx context.Context, id uuid.UUID) ([]project.Milestone, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Milestones == nil {
		return []project.Milestone{}, nil
	}
	return p.Milestones, nil
}

// AddMilestone appends a pending milestone
func (s *ProjectService) AddMilestone(ctx context.Context, id uuid.UUID, req MilestoneRequest) (*project.Milestone, error) {
	var added project.Milestone
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		m, err := p.AddMilestone(req.Name, req.Description, req.DueDate)
		if err != nil {
			return err
		}
		added = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// CompleteMilestone marks a milestone completed
func (s *ProjectService) CompleteMilestone(ctx context.Context, id, milestoneID uuid.UUID) (*project.Milestone, error) {
	var completed project.Milestone
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		m, err := p.CompleteMilestone(milestoneID, s.now())
		if err != nil {
			return err
		}
		completed = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}

// ListTasks retrieves the tasks of a project with filtering and pagination
func (s *ProjectService) ListTasks(ctx context.Context, id uuid.UUID, filter TaskListFilter) ([]project.Task, int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}
	domainFilter := pagedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search).
		With("status", filter.Status).
		With("priority", filter.Priority).
		With("assignee", filter.Assignee).
		With("milestone_id", shared.OptionalID(filter.MilestoneID))
	tasks, err := s.repo.FindTasks(ctx, id, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTasks(ctx, id, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// AddTask appends a task and refreshes progress
func (s *ProjectService) AddTask(ctx context.Context, id uuid.UUID, req TaskRequest) (*project.Task, error) {
	var added project.Task
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		t, err := p.AddTask(req.toDomain())
		if err != nil {
			return err
		}
		added = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdateTask replaces a task and refreshes progress
func (s *ProjectService) UpdateTask(ctx context.Context, id, taskID uuid.UUID, req TaskRequest) (*project.Task, error) {
	var updated project.Task
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		t, err := p.UpdateTask(taskID, req.toDomain())
		if err != nil {
			return err
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddDependency makes taskID depend on the requested predecessor
func (s *ProjectService) AddDependency(ctx context.Context, id, taskID uuid.UUID, req DependencyRequest) (*project.TaskDependency, error) {
	var added project.TaskDependency
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		d, err := p.AddDependency(req.PredecessorID, taskID, project.DependencyType(req.DependencyType), req.LagDays)
		if err != nil {
			return err
		}
		added = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveDependency deletes a dependency attached to taskID
func (s *ProjectService) RemoveDependency(ctx context.Context, id, taskID, dependencyID uuid.UUID) error {
	_, err := s.mutate(ctx, id, func(p *project.Project) error {
		return p.RemoveDependency(taskID, dependencyID)
	})
	return err
}

// mutate loads the project, applies fn, refreshes the derived health and saves
func (s *ProjectService) mutate(ctx context.Context, id uuid.UUID, fn func(*project.Project) error) (*project.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.RefreshHealth(s.now())
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, p); err != nil {
		return nil, err
	}
	return p, nil
}
