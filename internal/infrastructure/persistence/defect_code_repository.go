package persistence

import (
	"context"
	"strings"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defectCodeQuery = listQuery{
	searchColumns: []string{"code", "name"},
	conditions: map[string]string{
		"severity":  "severity = ?",
		"category":  "category = ?",
		"is_active": "is_active = ?",
		"is_system": "is_system = ?",
	},
	sortFields:   DefectCodeSortFields,
	defaultOrder: "code ASC",
}

// GormDefectCodeRepository implements DefectCodeRepository using GORM
type GormDefectCodeRepository struct {
	db *gorm.DB
}

// NewGormDefectCodeRepository creates a new GormDefectCodeRepository
func NewGormDefectCodeRepository(db *gorm.DB) *GormDefectCodeRepository {
	return &GormDefectCodeRepository{db: db}
}

func normaliseDefectCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FindByCode finds a defect code by its code
func (r *GormDefectCodeRepository) FindByCode(ctx context.Context, code string) (*quality.DefectCode, error) {
	var dc quality.DefectCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", normaliseDefectCode(code)).
		First(&dc).Error; err != nil {
		return nil, translateError(err)
	}
	return &dc, nil
}

// FindAll finds all defect codes matching the filter
func (r *GormDefectCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quality.DefectCode, error) {
	var codes []quality.DefectCode
	query := defectCodeQuery.apply(r.db.WithContext(ctx).Model(&quality.DefectCode{}), filter)
	if err := query.Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Count counts defect codes matching the filter
func (r *GormDefectCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := defectCodeQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&quality.DefectCode{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a defect code
func (r *GormDefectCodeRepository) Save(ctx context.Context, code *quality.DefectCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, code, code)
	})
}

// Delete removes a defect code by code
func (r *GormDefectCodeRepository) Delete(ctx context.Context, code string) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&quality.DefectCode{}, "code = ?", normaliseDefectCode(code)))
}

// InsertIfAbsent inserts the code unless its code is already taken
func (r *GormDefectCodeRepository) InsertIfAbsent(ctx context.Context, code *quality.DefectCode) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(code)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormDefectCodeRepository implements DefectCodeRepository
var _ quality.DefectCodeRepository = (*GormDefectCodeRepository)(nil)
