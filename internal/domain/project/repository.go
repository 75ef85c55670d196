package project

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository persists projects together with their milestones,
// tasks and dependencies
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]Task, error)
	CountTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}
