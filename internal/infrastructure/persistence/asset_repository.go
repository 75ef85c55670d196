package persistence

import (
	"context"
	"strings"

	"github.com/b3erp/backend/internal/domain/asset"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var assetQuery = listQuery{
	searchColumns: []string{"asset_code", "name", "serial_number", "manufacturer"},
	conditions: map[string]string{
		"type":      "type = ?",
		"status":    "status = ?",
		"condition": "condition = ?",
		"site":      "site = ?",
	},
	sortFields:   AssetSortFields,
	defaultOrder: "asset_code ASC",
}

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID finds an asset by ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

// FindAll finds assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]asset.Asset, error) {
	var list []asset.Asset
	query := assetQuery.apply(r.db.WithContext(ctx).Model(&asset.Asset{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := assetQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&asset.Asset{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySerialNumber checks if a serial number is already registered
func (r *GormAssetRepository) ExistsBySerialNumber(ctx context.Context, serial string, excludeID *uuid.UUID) (bool, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&asset.Asset{}).Where("serial_number = ?", serial)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, a, a)
	})
}

// Delete deletes an asset
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&asset.Asset{}, "id = ?", id))
}

// Ensure GormAssetRepository implements AssetRepository
var _ asset.AssetRepository = (*GormAssetRepository)(nil)
