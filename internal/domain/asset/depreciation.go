package asset

import (
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// YearsInService is the elapsed time from purchase to asOf in years of 365 days
func (a *Asset) YearsInService(asOf time.Time) decimal.Decimal {
	if !asOf.After(a.PurchaseDate) {
		return decimal.Zero
	}
	days := int64(asOf.Sub(a.PurchaseDate).Hours() / 24)
	return decimal.NewFromInt(days).Div(daysPerYear)
}

// CurrentValue applies straight-line depreciation:
// max(salvage, price * (1 - rate * years / 100)).
func (a *Asset) CurrentValue(asOf time.Time) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(a.DepreciationRate.Mul(a.YearsInService(asOf)).Div(hundred))
	value := shared.RoundMoney(a.PurchasePrice.Mul(factor))
	if value.LessThan(a.SalvageValue) {
		return a.SalvageValue
	}
	return value
}

// DepreciationLine is the book value of an asset at the end of one year
type DepreciationLine struct {
	Year                    int             `json:"year"`
	AsOf                    time.Time       `json:"as_of"`
	Depreciation            decimal.Decimal `json:"depreciation"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `json:"book_value"`
}

// DepreciationSchedule describes the depreciation of an asset
type DepreciationSchedule struct {
	AssetCode               string             `json:"asset_code"`
	PurchasePrice           decimal.Decimal    `json:"purchase_price"`
	SalvageValue            decimal.Decimal    `json:"salvage_value"`
	DepreciationRate        decimal.Decimal    `json:"depreciation_rate"`
	AsOf                    time.Time          `json:"as_of"`
	YearsInService          decimal.Decimal    `json:"years_in_service"`
	CurrentValue            decimal.Decimal    `json:"current_value"`
	AccumulatedDepreciation decimal.Decimal    `json:"accumulated_depreciation"`
	Lines                   []DepreciationLine `json:"lines"`
}

// maxScheduleYears bounds the schedule for very low rates
const maxScheduleYears = 50

// Schedule builds the year-by-year depreciation until the salvage value is reached
func (a *Asset) Schedule(asOf time.Time) DepreciationSchedule {
	current := a.CurrentValue(asOf)
	s := DepreciationSchedule{
		AssetCode:               a.AssetCode,
		PurchasePrice:           a.PurchasePrice,
		SalvageValue:            a.SalvageValue,
		DepreciationRate:        a.DepreciationRate,
		AsOf:                    asOf,
		YearsInService:          a.YearsInService(asOf).Round(2),
		CurrentValue:            current,
		AccumulatedDepreciation: a.PurchasePrice.Sub(current),
		Lines:                   make([]DepreciationLine, 0),
	}
	if a.DepreciationRate.IsZero() {
		return s
	}
	previous := a.PurchasePrice
	for year := 1; year <= maxScheduleYears; year++ {
		at := a.PurchaseDate.AddDate(0, 0, 365*year)
		value := a.CurrentValue(at)
		s.Lines = append(s.Lines, DepreciationLine{
			Year:                    year,
			AsOf:                    at,
			Depreciation:            previous.Sub(value),
			AccumulatedDepreciation: a.PurchasePrice.Sub(value),
			BookValue:               value,
		})
		if value.Equal(a.SalvageValue) {
			break
		}
		previous = value
	}
	return s
}
