package persistence

import (
	"context"
	"strings"

	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var numberSeriesQuery = listQuery{
	searchColumns: []string{"code", "name", "prefix"},
	conditions: map[string]string{
		"module":    "module = ?",
		"is_active": "is_active = ?",
	},
	sortFields:   NumberSeriesSortFields,
	defaultOrder: "code ASC",
}

// GormNumberSeriesRepository implements NumberSeriesRepository using GORM
type GormNumberSeriesRepository struct {
	db *gorm.DB
}

// NewGormNumberSeriesRepository creates a new GormNumberSeriesRepository
func NewGormNumberSeriesRepository(db *gorm.DB) *GormNumberSeriesRepository {
	return &GormNumberSeriesRepository{db: db}
}

// FindByID finds a series by its ID
func (r *GormNumberSeriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.NumberSeries, error) {
	var series settings.NumberSeries
	if err := r.db.WithContext(ctx).First(&series, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &series, nil
}

// FindByCode finds a series by its code
func (r *GormNumberSeriesRepository) FindByCode(ctx context.Context, code string) (*settings.NumberSeries, error) {
	var series settings.NumberSeries
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&series).Error; err != nil {
		return nil, translateError(err)
	}
	return &series, nil
}

// FindAll finds all series matching the filter
func (r *GormNumberSeriesRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settings.NumberSeries, error) {
	var list []settings.NumberSeries
	query := numberSeriesQuery.apply(r.db.WithContext(ctx).Model(&settings.NumberSeries{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts series matching the filter
func (r *GormNumberSeriesRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := numberSeriesQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&settings.NumberSeries{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a series with the given code exists
func (r *GormNumberSeriesRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&settings.NumberSeries{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a series
func (r *GormNumberSeriesRepository) Save(ctx context.Context, series *settings.NumberSeries) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, series, series)
	})
}

// Delete deletes a series
func (r *GormNumberSeriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&settings.NumberSeries{}, "id = ?", id))
}

// WithLocked loads the series FOR UPDATE, applies fn and saves it in the same transaction
func (r *GormNumberSeriesRepository) WithLocked(ctx context.Context, code string, fn func(*settings.NumberSeries) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var series settings.NumberSeries
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
			First(&series).Error; err != nil {
			return translateError(err)
		}
		if err := fn(&series); err != nil {
			return err
		}
		series.IncrementVersion()
		return tx.Select("*").Omit(clause.Associations).Save(&series).Error
	})
}

// Ensure GormNumberSeriesRepository implements NumberSeriesRepository
var _ settings.NumberSeriesRepository = (*GormNumberSeriesRepository)(nil)
