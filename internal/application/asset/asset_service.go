package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/asset"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AssetRequest holds the editable asset fields
type AssetRequest struct {
	Name                 string          `json:"name" binding:"required,max=200"`
	Description          string          `json:"description"`
	Type                 string          `json:"type" binding:"required,oneof=equipment appliance machinery furniture vehicle electronic"`
	Condition            string          `json:"condition" binding:"omitempty,oneof=excellent good fair poor non_operational"`
	SerialNumber         string          `json:"serial_number" binding:"max=100"`
	Model                string          `json:"model" binding:"max=100"`
	Manufacturer         string          `json:"manufacturer" binding:"max=100"`
	Site                 string          `json:"site" binding:"max=100"`
	Building             string          `json:"building" binding:"max=100"`
	PurchaseDate         time.Time       `json:"purchase_date" binding:"required"`
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	DepreciationRate     decimal.Decimal `json:"depreciation_rate"`
	SalvageValue         decimal.Decimal `json:"salvage_value"`
	WarrantyEnd          *time.Time      `json:"warranty_end"`
	MaintenanceFrequency string          `json:"maintenance_frequency" binding:"omitempty,oneof=monthly quarterly semi_annual annual"`
	Tags                 []string        `json:"tags" binding:"max=20,dive,max=50"`
}

func (r AssetRequest) toDomain() asset.AssetDetails {
	return asset.AssetDetails{
		Name:                 r.Name,
		Description:          r.Description,
		Type:                 asset.AssetType(r.Type),
		Condition:            asset.Condition(r.Condition),
		SerialNumber:         r.SerialNumber,
		Model:                r.Model,
		Manufacturer:         r.Manufacturer,
		Site:                 r.Site,
		Building:             r.Building,
		PurchaseDate:         r.PurchaseDate,
		PurchasePrice:        r.PurchasePrice,
		DepreciationRate:     r.DepreciationRate,
		SalvageValue:         r.SalvageValue,
		WarrantyEnd:          r.WarrantyEnd,
		MaintenanceFrequency: asset.MaintenanceFrequency(r.MaintenanceFrequency),
		Tags:                 r.Tags,
	}
}

// SetActiveRequest toggles an asset between active and inactive
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// MaintenanceRequest logs a maintenance visit
type MaintenanceRequest struct {
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes" binding:"max=1000"`
}

// CompleteMaintenanceRequest returns an asset to service
type CompleteMaintenanceRequest struct {
	Condition string `json:"condition" binding:"omitempty,oneof=excellent good fair poor non_operational"`
}

// ReasonRequest carries the reason of a retirement, sale or disposal
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// AssetListFilter holds list query parameters
type AssetListFilter struct {
	Search    string `form:"search"`
	Type      string `form:"type" binding:"omitempty,oneof=equipment appliance machinery furniture vehicle electronic"`
	Status    string `form:"status" binding:"omitempty,oneof=active inactive under_maintenance retired sold disposed"`
	Condition string `form:"condition" binding:"omitempty,oneof=excellent good fair poor non_operational"`
	Site      string `form:"site"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AssetResponse represents an asset valued as of the time of the read
type AssetResponse struct {
	asset.Asset
	CurrentValue   decimal.Decimal `json:"current_value"`
	UnderWarranty  bool            `json:"under_warranty"`
	MaintenanceDue bool            `json:"maintenance_due"`
}

func toAssetResponse(a *asset.Asset, asOf time.Time) AssetResponse {
	return AssetResponse{
		Asset:          *a,
		CurrentValue:   a.CurrentValue(asOf),
		UnderWarranty:  a.UnderWarranty(asOf),
		MaintenanceDue: a.MaintenanceDue(asOf),
	}
}

// AssetService handles the fixed asset register
type AssetService struct {
	repo    asset.AssetRepository
	numbers shared.NumberGenerator
	events  shared.EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewAssetService creates a new AssetService
func NewAssetService(repo asset.AssetRepository, numbers shared.NumberGenerator, events shared.EventPublisher, logger *zap.Logger) *AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{
		repo:    repo,
		numbers: numbers,
		events:  events,
		logger:  logger.Named("assets"),
		now:     time.Now,
	}
}

// Create registers an asset coded from the ASSET series
func (s *AssetService) Create(ctx context.Context, req AssetRequest) (*AssetResponse, error) {
	if err := s.ensureSerialFree(ctx, req.SerialNumber, nil); err != nil {
		return nil, err
	}
	a, err := asset.NewAsset("", req.toDomain())
	if err != nil {
		return nil, err
	}
	code, err := s.numbers.Next(ctx, settings.SeriesAsset)
	if err != nil {
		return nil, err
	}
	a.AssetCode = code
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := toAssetResponse(a, s.now())
	return &resp, nil
}

func (s *AssetService) ensureSerialFree(ctx context.Context, serial string, excludeID *uuid.UUID) error {
	if serial == "" {
		return nil
	}
	exists, err := s.repo.ExistsBySerialNumber(ctx, serial, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.AlreadyExists(fmt.Sprintf("asset with serial number %s already exists", serial))
	}
	return nil
}

// GetByID retrieves an asset
func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAssetResponse(a, s.now())
	return &resp, nil
}

func (f AssetListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.
		With("type", f.Type).
		With("status", f.Status).
		With("condition", f.Condition).
		With("site", f.Site)
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves assets with filtering and pagination
func (s *AssetService) List(ctx context.Context, filter AssetListFilter) ([]AssetResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	asOf := s.now()
	out := make([]AssetResponse, len(list))
	for i := range list {
		out[i] = toAssetResponse(&list[i], asOf)
	}
	return out, total, nil
}

// Update replaces the details of an asset in service
func (s *AssetService) Update(ctx context.Context, id uuid.UUID, req AssetRequest) (*AssetResponse, error) {
	if err := s.ensureSerialFree(ctx, req.SerialNumber, &id); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.Update(req.toDomain()) })
}

// SetActive toggles an asset between active and inactive
func (s *AssetService) SetActive(ctx context.Context, id uuid.UUID, req SetActiveRequest) (*AssetResponse, error) {
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.SetActive(req.Active) })
}

// Delete removes an asset that is not under maintenance
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.CanDelete(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// StartMaintenance logs a maintenance visit
func (s *AssetService) StartMaintenance(ctx context.Context, id uuid.UUID, req MaintenanceRequest) (*AssetResponse, error) {
	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.StartMaintenance(date, req.Notes) })
}

// CompleteMaintenance returns an asset to service
func (s *AssetService) CompleteMaintenance(ctx context.Context, id uuid.UUID, req CompleteMaintenanceRequest) (*AssetResponse, error) {
	return s.mutate(ctx, id, func(a *asset.Asset) error {
		return a.CompleteMaintenance(asset.Condition(req.Condition))
	})
}

// Retire takes an asset out of service permanently
func (s *AssetService) Retire(ctx context.Context, id uuid.UUID, req ReasonRequest) (*AssetResponse, error) {
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.Retire(req.Reason) })
}

// Sell records the sale of an asset
func (s *AssetService) Sell(ctx context.Context, id uuid.UUID, req ReasonRequest) (*AssetResponse, error) {
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.Sell(req.Reason) })
}

// Dispose records the disposal of an asset
func (s *AssetService) Dispose(ctx context.Context, id uuid.UUID, req ReasonRequest) (*AssetResponse, error) {
	return s.mutate(ctx, id, func(a *asset.Asset) error { return a.Dispose(req.Reason) })
}

func (s *AssetService) mutate(ctx context.Context, id uuid.UUID, fn func(*asset.Asset) error) (*AssetResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(a); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, a); err != nil {
		return nil, err
	}
	resp := toAssetResponse(a, s.now())
	return &resp, nil
}

// Depreciation returns the straight-line schedule of an asset; a zero asOf means now
func (s *AssetService) Depreciation(ctx context.Context, id uuid.UUID, asOf time.Time) (*asset.DepreciationSchedule, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	schedule := a.Schedule(asOf)
	return &schedule, nil
}

// Statistics summarises every asset matching filter as of now
func (s *AssetService) Statistics(ctx context.Context, filter AssetListFilter) (*asset.Statistics, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	stats := asset.ComputeStatistics(list, s.now())
	return &stats, nil
}

// MaintenanceDue lists assets whose scheduled maintenance is due by asOf
func (s *AssetService) MaintenanceDue(ctx context.Context, asOf time.Time) ([]AssetResponse, error) {
	list, err := s.repo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	out := make([]AssetResponse, 0)
	for i := range list {
		if list[i].MaintenanceDue(asOf) {
			out = append(out, toAssetResponse(&list[i], asOf))
		}
	}
	s.logger.Debug("maintenance due", zap.Int("count", len(out)), zap.Time("as_of", asOf))
	return out, nil
}
