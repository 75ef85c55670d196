package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistics summarises the asset register
type Statistics struct {
	TotalAssets         int                 `json:"total_assets"`
	ByStatus            map[AssetStatus]int `json:"by_status"`
	ByType              map[AssetType]int   `json:"by_type"`
	TotalPurchaseValue  decimal.Decimal     `json:"total_purchase_value"`
	TotalCurrentValue   decimal.Decimal     `json:"total_current_value"`
	UnderWarrantyCount  int                 `json:"under_warranty_count"`
	MaintenanceDueCount int                 `json:"maintenance_due_count"`
}

// ComputeStatistics builds register statistics as of the given date
func ComputeStatistics(assets []Asset, asOf time.Time) Statistics {
	stats := Statistics{
		TotalAssets:        len(assets),
		ByStatus:           make(map[AssetStatus]int, len(AllAssetStatuses)),
		ByType:             make(map[AssetType]int, len(AllAssetTypes)),
		TotalPurchaseValue: decimal.Zero,
		TotalCurrentValue:  decimal.Zero,
	}
	for _, s := range AllAssetStatuses {
		stats.ByStatus[s] = 0
	}
	for _, t := range AllAssetTypes {
		stats.ByType[t] = 0
	}
	for i := range assets {
		a := &assets[i]
		stats.ByStatus[a.Status]++
		stats.ByType[a.Type]++
		stats.TotalPurchaseValue = stats.TotalPurchaseValue.Add(a.PurchasePrice)
		if !a.Status.IsTerminal() {
			stats.TotalCurrentValue = stats.TotalCurrentValue.Add(a.CurrentValue(asOf))
		}
		if a.UnderWarranty(asOf) {
			stats.UnderWarrantyCount++
		}
		if a.MaintenanceDue(asOf) {
			stats.MaintenanceDueCount++
		}
	}
	return stats
}
