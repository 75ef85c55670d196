package persistence

import (
	"context"

	"github.com/b3erp/backend/internal/domain/project"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var projectQuery = listQuery{
	searchColumns: []string{"project_code", "name", "customer_name"},
	conditions: map[string]string{
		"status":   "status = ?",
		"priority": "priority = ?",
		"health":   "health = ?",
	},
	sortFields:   ProjectSortFields,
	defaultOrder: "planned_start_date DESC, project_code ASC",
}

var taskQuery = listQuery{
	searchColumns: []string{"task_code", "title"},
	conditions: map[string]string{
		"status":       "status = ?",
		"priority":     "priority = ?",
		"assignee":     "assignee_name = ?",
		"milestone_id": "milestone_id = ?",
	},
	sortFields:   TaskSortFields,
	defaultOrder: "task_code ASC",
}

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID loads a project with milestones, tasks and dependencies
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).
		Preload("Dependencies").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("task_code ASC") }).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindAll finds project headers matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	var list []project.Project
	query := projectQuery.apply(r.db.WithContext(ctx).Model(&project.Project{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := projectQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&project.Project{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindTasks lists tasks of a project
func (r *GormProjectRepository) FindTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]project.Task, error) {
	var list []project.Task
	query := taskQuery.apply(
		r.db.WithContext(ctx).Model(&project.Task{}).Where("project_id = ?", projectID),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CountTasks counts tasks of a project
func (r *GormProjectRepository) CountTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := taskQuery.applyWithoutPagination(
		r.db.WithContext(ctx).Model(&project.Task{}).Where("project_id = ?", projectID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save writes the project header and synchronises its children.
// Milestones go before tasks so task milestone references resolve.
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, p, p); err != nil {
			return err
		}
		depIDs := make([]uuid.UUID, len(p.Dependencies))
		for i, d := range p.Dependencies {
			depIDs[i] = d.ID
		}
		if err := pruneChildren(tx, &project.TaskDependency{}, "project_id", p.ID, depIDs); err != nil {
			return err
		}
		if err := upsertChildren(tx, &p.Milestones, len(p.Milestones)); err != nil {
			return err
		}
		if err := upsertChildren(tx, &p.Tasks, len(p.Tasks)); err != nil {
			return err
		}
		return upsertChildren(tx, &p.Dependencies, len(p.Dependencies))
	})
}

// Delete removes a project and everything beneath it
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&project.TaskDependency{}, &project.Task{}, &project.Milestone{}} {
			if err := tx.Where("project_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return deleteResult(tx.Delete(&project.Project{}, "id = ?", id))
	})
}

// Ensure GormProjectRepository implements ProjectRepository
var _ project.ProjectRepository = (*GormProjectRepository)(nil)
