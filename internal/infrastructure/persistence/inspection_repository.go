package persistence

import (
	"context"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var inspectionQuery = listQuery{
	searchColumns: []string{"inspection_number", "product_name", "product_code", "inspector_name"},
	conditions: map[string]string{
		"status":       "status = ?",
		"type":         "type = ?",
		"result":       "overall_result = ?",
		"inspector_id": "inspector_id = ?",
		"product_id":   "product_id = ?",
		"from_date":    "created_at >= ?",
		"to_date":      "created_at <= ?",
	},
	sortFields:   InspectionSortFields,
	defaultOrder: "created_at DESC",
}

// GormInspectionRepository implements InspectionRepository using GORM
type GormInspectionRepository struct {
	db *gorm.DB
}

// NewGormInspectionRepository creates a new GormInspectionRepository
func NewGormInspectionRepository(db *gorm.DB) *GormInspectionRepository {
	return &GormInspectionRepository{db: db}
}

// FindByID loads an inspection with its defect records and attachments
func (r *GormInspectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*quality.Inspection, error) {
	var inspection quality.Inspection
	if err := r.db.WithContext(ctx).
		Preload("DefectRecords", func(db *gorm.DB) *gorm.DB { return db.Order("recorded_at ASC") }).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&inspection, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &inspection, nil
}

// FindAll finds inspections matching the filter; children are not loaded
func (r *GormInspectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quality.Inspection, error) {
	var list []quality.Inspection
	query := inspectionQuery.apply(r.db.WithContext(ctx).Model(&quality.Inspection{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts inspections matching the filter
func (r *GormInspectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := inspectionQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&quality.Inspection{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save writes the inspection and upserts its defect records and attachments
func (r *GormInspectionRepository) Save(ctx context.Context, inspection *quality.Inspection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, inspection, inspection); err != nil {
			return err
		}
		if err := upsertChildren(tx, &inspection.DefectRecords, len(inspection.DefectRecords)); err != nil {
			return err
		}
		return upsertChildren(tx, &inspection.Attachments, len(inspection.Attachments))
	})
}

// Delete removes an inspection and its children
func (r *GormInspectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inspection_id = ?", id).Delete(&quality.InspectionDefect{}).Error; err != nil {
			return err
		}
		if err := tx.Where("inspection_id = ?", id).Delete(&quality.InspectionAttachment{}).Error; err != nil {
			return err
		}
		return deleteResult(tx.Delete(&quality.Inspection{}, "id = ?", id))
	})
}

// DeleteAttachment removes one attachment row of an inspection
func (r *GormInspectionRepository) DeleteAttachment(ctx context.Context, inspectionID, attachmentID uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Where("inspection_id = ? AND id = ?", inspectionID, attachmentID).
		Delete(&quality.InspectionAttachment{}))
}

// Ensure GormInspectionRepository implements InspectionRepository
var _ quality.InspectionRepository = (*GormInspectionRepository)(nil)
