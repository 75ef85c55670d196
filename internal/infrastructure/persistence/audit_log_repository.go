package persistence

import (
	"context"

	"github.com/b3erp/backend/internal/domain/audit"
	"github.com/b3erp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var auditLogQuery = listQuery{
	conditions: map[string]string{
		"aggregate_type": "aggregate_type = ?",
		"aggregate_id":   "aggregate_id = ?",
		"event_type":     "event_type = ?",
		"actor":          "actor = ?",
		"from_date":      "occurred_at >= ?",
		"to_date":        "occurred_at <= ?",
	},
	sortFields:   AuditLogSortFields,
	defaultOrder: "occurred_at DESC",
}

// GormAuditLogRepository stores audit records using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save appends an entry; a redelivered event is ignored
func (r *GormAuditLogRepository) Save(ctx context.Context, entry *audit.Log) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(entry).Error
}

// FindAll lists entries matching the filter, newest first by default
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Log, error) {
	var list []audit.Log
	query := auditLogQuery.apply(r.db.WithContext(ctx).Model(&audit.Log{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts entries matching the filter
func (r *GormAuditLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := auditLogQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&audit.Log{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAuditLogRepository implements audit.Repository
var _ audit.Repository = (*GormAuditLogRepository)(nil)
