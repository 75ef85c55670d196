package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const aggregateTypeAsset = "asset"

// AssetType classifies an asset
type AssetType string

const (
	TypeEquipment  AssetType = "equipment"
	TypeAppliance  AssetType = "appliance"
	TypeMachinery  AssetType = "machinery"
	TypeFurniture  AssetType = "furniture"
	TypeVehicle    AssetType = "vehicle"
	TypeElectronic AssetType = "electronic"
)

// AllAssetTypes lists every asset type
var AllAssetTypes = []AssetType{TypeEquipment, TypeAppliance, TypeMachinery, TypeFurniture, TypeVehicle, TypeElectronic}

// IsValid reports whether t is a known asset type
func (t AssetType) IsValid() bool {
	for _, v := range AllAssetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AssetStatus is the lifecycle state of an asset
type AssetStatus string

const (
	StatusActive           AssetStatus = "active"
	StatusInactive         AssetStatus = "inactive"
	StatusUnderMaintenance AssetStatus = "under_maintenance"
	StatusRetired          AssetStatus = "retired"
	StatusSold             AssetStatus = "sold"
	StatusDisposed         AssetStatus = "disposed"
)

// AllAssetStatuses lists every status
var AllAssetStatuses = []AssetStatus{StatusActive, StatusInactive, StatusUnderMaintenance, StatusRetired, StatusSold, StatusDisposed}

// IsTerminal reports whether the asset has left service for good
func (s AssetStatus) IsTerminal() bool {
	return s == StatusRetired || s == StatusSold || s == StatusDisposed
}

// Condition is the physical condition of an asset
type Condition string

const (
	ConditionExcellent      Condition = "excellent"
	ConditionGood           Condition = "good"
	ConditionFair           Condition = "fair"
	ConditionPoor           Condition = "poor"
	ConditionNonOperational Condition = "non_operational"
)

// IsValid reports whether c is a known condition
func (c Condition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionNonOperational:
		return true
	}
	return false
}

// MaintenanceFrequency is how often preventive maintenance is due
type MaintenanceFrequency string

const (
	MaintenanceNone       MaintenanceFrequency = ""
	MaintenanceMonthly    MaintenanceFrequency = "monthly"
	MaintenanceQuarterly  MaintenanceFrequency = "quarterly"
	MaintenanceSemiAnnual MaintenanceFrequency = "semi_annual"
	MaintenanceAnnual     MaintenanceFrequency = "annual"
)

// Months returns the interval in months, 0 when no schedule applies
func (f MaintenanceFrequency) Months() int {
	switch f {
	case MaintenanceMonthly:
		return 1
	case MaintenanceQuarterly:
		return 3
	case MaintenanceSemiAnnual:
		return 6
	case MaintenanceAnnual:
		return 12
	}
	return 0
}

// IsValid reports whether f is empty or a known frequency
func (f MaintenanceFrequency) IsValid() bool {
	return f == MaintenanceNone || f.Months() > 0
}

// Asset is a fixed asset tracked for depreciation and maintenance
type Asset struct {
	shared.BaseAggregateRoot
	AssetCode            string               `gorm:"type:varchar(30);not null;uniqueIndex" json:"asset_code"`
	Name                 string               `gorm:"type:varchar(200);not null" json:"name"`
	Description          string               `gorm:"type:text" json:"description"`
	Type                 AssetType            `gorm:"type:varchar(20);not null;index" json:"type"`
	Status               AssetStatus          `gorm:"type:varchar(20);not null;index" json:"status"`
	Condition            Condition            `gorm:"type:varchar(20);not null;index" json:"condition"`
	SerialNumber         string               `gorm:"type:varchar(100)" json:"serial_number"`
	Model                string               `gorm:"type:varchar(100)" json:"model"`
	Manufacturer         string               `gorm:"type:varchar(100)" json:"manufacturer"`
	Site                 string               `gorm:"type:varchar(100)" json:"site"`
	Building             string               `gorm:"type:varchar(100)" json:"building"`
	PurchaseDate         time.Time            `gorm:"not null" json:"purchase_date"`
	PurchasePrice        decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"purchase_price"`
	DepreciationRate     decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0" json:"depreciation_rate"`
	SalvageValue         decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"salvage_value"`
	WarrantyEnd          *time.Time           `json:"warranty_end,omitempty"`
	MaintenanceFrequency MaintenanceFrequency `gorm:"type:varchar(20)" json:"maintenance_frequency"`
	LastMaintenanceDate  *time.Time           `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate  *time.Time           `gorm:"index" json:"next_maintenance_date,omitempty"`
	MaintenanceNotes     string               `gorm:"type:text" json:"maintenance_notes"`
	Tags                 pq.StringArray       `gorm:"type:text[]" json:"tags"`
	DisposedAt           *time.Time           `json:"disposed_at,omitempty"`
	DisposalReason       string               `gorm:"type:varchar(500)" json:"disposal_reason"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// AssetDetails holds the editable attributes of an asset
type AssetDetails struct {
	Name                 string
	Description          string
	Type                 AssetType
	Condition            Condition
	SerialNumber         string
	Model                string
	Manufacturer         string
	Site                 string
	Building             string
	PurchaseDate         time.Time
	PurchasePrice        decimal.Decimal
	DepreciationRate     decimal.Decimal
	SalvageValue         decimal.Decimal
	WarrantyEnd          *time.Time
	MaintenanceFrequency MaintenanceFrequency
	Tags                 []string
}

func (d *AssetDetails) normalise() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return shared.InvalidInput("asset name is required")
	}
	if !d.Type.IsValid() {
		return shared.InvalidInput("unknown asset type: " + string(d.Type))
	}
	if d.Condition == "" {
		d.Condition = ConditionGood
	}
	if !d.Condition.IsValid() {
		return shared.InvalidInput("unknown condition: " + string(d.Condition))
	}
	if !d.MaintenanceFrequency.IsValid() {
		return shared.InvalidInput("unknown maintenance frequency: " + string(d.MaintenanceFrequency))
	}
	if d.PurchaseDate.IsZero() {
		return shared.InvalidInput("purchase_date is required")
	}
	if d.PurchasePrice.IsNegative() || d.SalvageValue.IsNegative() {
		return shared.InvalidInput("purchase_price and salvage_value cannot be negative")
	}
	if d.SalvageValue.GreaterThan(d.PurchasePrice) {
		return shared.InvalidInput("salvage_value cannot exceed purchase_price")
	}
	if d.DepreciationRate.IsNegative() || d.DepreciationRate.GreaterThan(hundred) {
		return shared.InvalidInput("depreciation_rate must be between 0 and 100")
	}
	if d.WarrantyEnd != nil && d.WarrantyEnd.Before(d.PurchaseDate) {
		return shared.InvalidInput("warranty_end cannot be before purchase_date")
	}
	tags := make([]string, 0, len(d.Tags))
	seen := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	d.Tags = tags
	return nil
}

var hundred = decimal.NewFromInt(100)

// NewAsset registers an active asset
func NewAsset(code string, details AssetDetails) (*Asset, error) {
	if err := details.normalise(); err != nil {
		return nil, err
	}
	a := &Asset{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AssetCode:         code,
		Status:            StatusActive,
	}
	a.apply(details)
	a.scheduleFrom(a.PurchaseDate)
	return a, nil
}

func (a *Asset) apply(d AssetDetails) {
	a.Name = d.Name
	a.Description = d.Description
	a.Type = d.Type
	a.Condition = d.Condition
	a.SerialNumber = strings.TrimSpace(d.SerialNumber)
	a.Model = d.Model
	a.Manufacturer = d.Manufacturer
	a.Site = d.Site
	a.Building = d.Building
	a.PurchaseDate = d.PurchaseDate
	a.PurchasePrice = shared.RoundMoney(d.PurchasePrice)
	a.DepreciationRate = d.DepreciationRate
	a.SalvageValue = shared.RoundMoney(d.SalvageValue)
	a.WarrantyEnd = d.WarrantyEnd
	a.MaintenanceFrequency = d.MaintenanceFrequency
	a.Tags = pq.StringArray(d.Tags)
}

func (a *Asset) scheduleFrom(from time.Time) {
	months := a.MaintenanceFrequency.Months()
	if months == 0 {
		a.NextMaintenanceDate = nil
		return
	}
	next := from.AddDate(0, months, 0)
	a.NextMaintenanceDate = &next
}

// Update replaces the asset details; retired or disposed assets are frozen
func (a *Asset) Update(d AssetDetails) error {
	if a.Status.IsTerminal() {
		return shared.InvalidState(fmt.Sprintf("cannot update asset in %s status", a.Status))
	}
	if err := d.normalise(); err != nil {
		return err
	}
	frequencyChanged := d.MaintenanceFrequency != a.MaintenanceFrequency
	a.apply(d)
	if frequencyChanged {
		base := a.PurchaseDate
		if a.LastMaintenanceDate != nil {
			base = *a.LastMaintenanceDate
		}
		a.scheduleFrom(base)
	}
	a.Touch()
	return nil
}

// SetActive toggles an asset between active and inactive
func (a *Asset) SetActive(active bool) error {
	if a.Status != StatusActive && a.Status != StatusInactive {
		return shared.InvalidState(fmt.Sprintf("cannot change activity of asset in %s status", a.Status))
	}
	a.Status = StatusInactive
	if active {
		a.Status = StatusActive
	}
	a.Touch()
	return nil
}

func (a *Asset) transition(to AssetStatus, reason string) {
	event := shared.NewStatusChangedEvent(aggregateTypeAsset, a.ID, a.AssetCode, string(a.Status), string(to))
	event.Reason = reason
	a.Status = to
	a.Touch()
	a.AddDomainEvent(event)
}

// StartMaintenance logs a maintenance visit and takes the asset out of service
func (a *Asset) StartMaintenance(date time.Time, notes string) error {
	if a.Status != StatusActive && a.Status != StatusInactive {
		return shared.InvalidState(fmt.Sprintf("cannot maintain asset in %s status", a.Status))
	}
	if date.IsZero() {
		date = time.Now()
	}
	if date.Before(a.PurchaseDate) {
		return shared.InvalidInput("maintenance date cannot be before purchase date")
	}
	a.LastMaintenanceDate = &date
	a.MaintenanceNotes = notes
	a.scheduleFrom(date)
	a.transition(StatusUnderMaintenance, notes)
	return nil
}

// CompleteMaintenance returns the asset to service, optionally with a new condition
func (a *Asset) CompleteMaintenance(condition Condition) error {
	if a.Status != StatusUnderMaintenance {
		return shared.InvalidState("asset is not under maintenance")
	}
	if condition != "" {
		if !condition.IsValid() {
			return shared.InvalidInput("unknown condition: " + string(condition))
		}
		a.Condition = condition
	}
	a.transition(StatusActive, "")
	return nil
}

// Retire takes the asset out of service permanently
func (a *Asset) Retire(reason string) error {
	return a.leaveService(StatusRetired, reason)
}

// Dispose records the disposal of the asset
func (a *Asset) Dispose(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("disposal reason is required")
	}
	return a.leaveService(StatusDisposed, reason)
}

// Sell records the sale of the asset
func (a *Asset) Sell(reason string) error {
	return a.leaveService(StatusSold, reason)
}

func (a *Asset) leaveService(to AssetStatus, reason string) error {
	if a.Status.IsTerminal() {
		return shared.InvalidState(fmt.Sprintf("asset is already %s", a.Status))
	}
	now := time.Now()
	a.DisposedAt = &now
	a.DisposalReason = reason
	a.NextMaintenanceDate = nil
	a.transition(to, reason)
	return nil
}

// CanDelete reports whether the asset may be removed
func (a *Asset) CanDelete() error {
	if a.Status == StatusUnderMaintenance {
		return shared.InvalidState("cannot delete an asset under maintenance")
	}
	return nil
}

// UnderWarranty reports whether the warranty covers the given date
func (a *Asset) UnderWarranty(asOf time.Time) bool {
	return a.WarrantyEnd != nil && !asOf.After(*a.WarrantyEnd)
}

// MaintenanceDue reports whether scheduled maintenance is due by asOf
func (a *Asset) MaintenanceDue(asOf time.Time) bool {
	return !a.Status.IsTerminal() && a.NextMaintenanceDate != nil && !a.NextMaintenanceDate.After(asOf)
}
