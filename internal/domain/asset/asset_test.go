package asset

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var purchased = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func testDetails() AssetDetails {
	warranty := purchased.AddDate(2, 0, 0)
	return AssetDetails{
		Name:                 " CNC Lathe ",
		Type:                 TypeMachinery,
		SerialNumber:         "SN-001",
		Manufacturer:         "Haas",
		PurchaseDate:         purchased,
		PurchasePrice:        decimal.NewFromInt(100000),
		DepreciationRate:     decimal.NewFromInt(10),
		SalvageValue:         decimal.NewFromInt(20000),
		WarrantyEnd:          &warranty,
		MaintenanceFrequency: MaintenanceQuarterly,
		Tags:                 []string{"Shop-Floor", "shop-floor", " cnc "},
	}
}

func TestNewAsset(t *testing.T) {
	a, err := NewAsset("AST-00001", testDetails())
	require.NoError(t, err)
	assert.Equal(t, "CNC Lathe", a.Name)
	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, ConditionGood, a.Condition)
	assert.Equal(t, []string{"shop-floor", "cnc"}, []string(a.Tags))
	require.NotNil(t, a.NextMaintenanceDate)
	assert.Equal(t, purchased.AddDate(0, 3, 0), *a.NextMaintenanceDate)

	d := testDetails()
	d.SalvageValue = decimal.NewFromInt(200000)
	_, err = NewAsset("AST-2", d)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	d = testDetails()
	d.Type = "spaceship"
	_, err = NewAsset("AST-3", d)
	assert.Error(t, err)
}

func TestCurrentValue(t *testing.T) {
	a, err := NewAsset("AST-00001", testDetails())
	require.NoError(t, err)

	assert.True(t, a.CurrentValue(purchased).Equal(decimal.NewFromInt(100000)))
	// 730 days at 10% per year
	assert.True(t, a.CurrentValue(purchased.AddDate(0, 0, 730)).Equal(decimal.NewFromInt(80000)))
	// floored at salvage
	assert.True(t, a.CurrentValue(purchased.AddDate(20, 0, 0)).Equal(decimal.NewFromInt(20000)))
}

func TestSchedule(t *testing.T) {
	a, err := NewAsset("AST-00001", testDetails())
	require.NoError(t, err)

	s := a.Schedule(purchased.AddDate(0, 0, 365))
	require.Len(t, s.Lines, 8)
	assert.True(t, s.Lines[0].BookValue.Equal(decimal.NewFromInt(90000)))
	assert.True(t, s.Lines[0].Depreciation.Equal(decimal.NewFromInt(10000)))
	assert.True(t, s.Lines[7].BookValue.Equal(decimal.NewFromInt(20000)))
	assert.True(t, s.AccumulatedDepreciation.Equal(decimal.NewFromInt(10000)))
}

func TestMaintenanceLifecycle(t *testing.T) {
	a, err := NewAsset("AST-00001", testDetails())
	require.NoError(t, err)

	visit := purchased.AddDate(1, 0, 0)
	require.NoError(t, a.StartMaintenance(visit, "spindle bearing"))
	assert.Equal(t, StatusUnderMaintenance, a.Status)
	assert.Equal(t, visit.AddDate(0, 3, 0), *a.NextMaintenanceDate)
	assert.Error(t, a.StartMaintenance(visit, "again"))
	assert.Error(t, a.CanDelete())

	require.NoError(t, a.CompleteMaintenance(ConditionExcellent))
	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, ConditionExcellent, a.Condition)
	assert.Error(t, a.CompleteMaintenance(""))
	assert.Len(t, a.GetDomainEvents(), 2)
}

func TestRetireAndDispose(t *testing.T) {
	a, err := NewAsset("AST-00001", testDetails())
	require.NoError(t, err)
	require.NoError(t, a.Retire("obsolete"))
	assert.Nil(t, a.NextMaintenanceDate)
	assert.True(t, errors.Is(a.Dispose("scrap"), shared.ErrInvalidState))
	assert.Error(t, a.Update(testDetails()))

	b, err := NewAsset("AST-00002", testDetails())
	require.NoError(t, err)
	assert.Error(t, b.Dispose(" "))
	require.NoError(t, b.Dispose("scrapped after fire"))
	assert.Equal(t, StatusDisposed, b.Status)
}

func TestComputeStatistics(t *testing.T) {
	a, _ := NewAsset("AST-1", testDetails())
	b, _ := NewAsset("AST-2", testDetails())
	b.Type = TypeVehicle
	require.NoError(t, b.Retire("sold off"))

	asOf := purchased.AddDate(0, 0, 365)
	stats := ComputeStatistics([]Asset{*a, *b}, asOf)
	assert.Equal(t, 2, stats.TotalAssets)
	assert.Equal(t, 1, stats.ByStatus[StatusRetired])
	assert.Equal(t, 0, stats.ByStatus[StatusSold])
	assert.Equal(t, 1, stats.ByType[TypeVehicle])
	assert.True(t, stats.TotalPurchaseValue.Equal(decimal.NewFromInt(200000)))
	assert.True(t, stats.TotalCurrentValue.Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, 2, stats.UnderWarrantyCount)
	assert.Equal(t, 1, stats.MaintenanceDueCount)
}
