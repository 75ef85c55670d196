package quality

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspection(t *testing.T) *Inspection {
	t.Helper()
	i, err := NewInspection("INS-2024-0001", InspectionTypeIncoming, InspectionSubject{
		ProductName:     "Steel Bracket",
		ProductCode:     "SB-100",
		TotalQuantity:   500,
		SampledQuantity: 50,
		InspectorName:   "R. Iyer",
	})
	require.NoError(t, err)
	return i
}

func mustDefect(t *testing.T, code string, severity Severity) *DefectCode {
	t.Helper()
	d, err := NewDefectCode(code, "Scratch", DefectCategoryFinish, severity)
	require.NoError(t, err)
	return d
}

func TestNewInspection(t *testing.T) {
	t.Run("creates draft with pending result", func(t *testing.T) {
		i := newTestInspection(t)
		assert.Equal(t, InspectionStatusDraft, i.Status)
		assert.Equal(t, ResultPending, i.OverallResult)
	})

	t.Run("scheduled when date given", func(t *testing.T) {
		at := time.Now().Add(24 * time.Hour)
		i, err := NewInspection("INS-1", InspectionTypeFinal, InspectionSubject{ProductName: "X", ScheduledDate: &at})
		require.NoError(t, err)
		assert.Equal(t, InspectionStatusScheduled, i.Status)
	})

	t.Run("rejects sample larger than lot", func(t *testing.T) {
		_, err := NewInspection("INS-1", InspectionTypeFinal, InspectionSubject{ProductName: "X", TotalQuantity: 5, SampledQuantity: 6})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewInspection("INS-1", "visual", InspectionSubject{ProductName: "X"})
		assert.Error(t, err)
	})
}

func TestInspection_Lifecycle(t *testing.T) {
	i := newTestInspection(t)

	require.NoError(t, i.Start("R. Iyer"))
	assert.Equal(t, InspectionStatusInProgress, i.Status)
	assert.NotNil(t, i.StartedAt)

	_, err := i.RecordDefect(mustDefect(t, "FIN-SCR", SeverityMinor), 3, "")
	require.NoError(t, err)
	_, err = i.RecordDefect(mustDefect(t, "IP-CRK", SeverityCritical), 1, "hairline")
	require.NoError(t, err)
	assert.Equal(t, DefectSummary{Critical: 1, Minor: 3, Total: 4}, i.Defects)
	assert.Len(t, i.DefectRecords, 2)

	err = i.Submit("R. Iyer")
	assert.True(t, errors.Is(err, shared.ErrInvalidState), "submit without results")

	assert.Error(t, i.RecordResults(40, 11, ResultFail))
	require.NoError(t, i.RecordResults(46, 4, ResultConditional))

	require.NoError(t, i.Submit("R. Iyer"))
	assert.Equal(t, InspectionStatusPendingReview, i.Status)
	assert.NotNil(t, i.CompletedAt)

	assert.Error(t, i.Approve(""))
	require.NoError(t, i.Approve("QA Lead"))
	assert.Equal(t, InspectionStatusApproved, i.Status)
	assert.Equal(t, "QA Lead", i.ApprovedBy)

	assert.Error(t, i.Cancel("x", "late"))
	assert.Error(t, i.CanDelete())

	events := i.GetDomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "inspection.in_progress", events[0].EventType())
	assert.Equal(t, "inspection.approved", events[2].EventType())
}

func TestInspection_Guards(t *testing.T) {
	t.Run("defect requires in progress", func(t *testing.T) {
		i := newTestInspection(t)
		_, err := i.RecordDefect(mustDefect(t, "FIN-SCR", SeverityMinor), 1, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("inactive defect code rejected", func(t *testing.T) {
		i := newTestInspection(t)
		require.NoError(t, i.Start(""))
		code := mustDefect(t, "FIN-SCR", SeverityMinor)
		code.IsActive = false
		_, err := i.RecordDefect(code, 1, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("reject needs reason", func(t *testing.T) {
		i := newTestInspection(t)
		require.NoError(t, i.Start(""))
		require.NoError(t, i.RecordResults(10, 40, ResultFail))
		require.NoError(t, i.Submit(""))
		assert.Error(t, i.Reject("lead", ""))
		require.NoError(t, i.Reject("lead", "sampling plan not followed"))
		assert.Equal(t, InspectionStatusRejected, i.Status)
	})

	t.Run("cancel appends reason and allows delete", func(t *testing.T) {
		i := newTestInspection(t)
		require.NoError(t, i.Cancel("planner", "lot scrapped"))
		assert.Contains(t, i.Notes, "Cancellation reason: lot scrapped")
		assert.NoError(t, i.CanDelete())
	})

	t.Run("update blocked after submit", func(t *testing.T) {
		i := newTestInspection(t)
		require.NoError(t, i.Start(""))
		require.NoError(t, i.RecordResults(50, 0, ResultPass))
		require.NoError(t, i.Submit(""))
		err := i.Update(InspectionSubject{ProductName: "Other"})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func TestComputeStatistics(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		stats := ComputeStatistics(nil)
		assert.Equal(t, 0, stats.TotalInspections)
		assert.Equal(t, 0.0, stats.PassRate)
		assert.Equal(t, 0, stats.ByStatus[InspectionStatusApproved])
		assert.Len(t, stats.ByType, len(AllInspectionTypes))
	})

	t.Run("rates over completed inspections", func(t *testing.T) {
		items := []Inspection{
			{Status: InspectionStatusApproved, OverallResult: ResultPass, Type: InspectionTypeFinal, Defects: DefectSummary{Minor: 2, Total: 2}},
			{Status: InspectionStatusApproved, OverallResult: ResultPass, Type: InspectionTypeFinal},
			{Status: InspectionStatusRejected, OverallResult: ResultFail, Type: InspectionTypeIncoming, Defects: DefectSummary{Critical: 1, Major: 2, Total: 3}},
			{Status: InspectionStatusInProgress, OverallResult: ResultPending, Type: InspectionTypeIncoming},
		}
		stats := ComputeStatistics(items)
		assert.Equal(t, 4, stats.TotalInspections)
		assert.Equal(t, 3, stats.Completed)
		assert.Equal(t, 66.67, stats.PassRate)
		assert.Equal(t, 33.33, stats.FailRate)
		assert.Equal(t, 5, stats.TotalDefects)
		assert.Equal(t, 1.25, stats.AvgDefectsPerInspection)
		assert.Equal(t, 2, stats.ByStatus[InspectionStatusApproved])
		assert.Equal(t, 2, stats.ByType[InspectionTypeIncoming])
		assert.Equal(t, 1, stats.DefectsBySeverity[SeverityCritical])
		assert.Equal(t, 2, stats.DefectsBySeverity[SeverityMinor])
	})
}

func TestDefectCode(t *testing.T) {
	d, err := NewDefectCode("pkg-dam", "Damaged packaging", DefectCategoryPackaging, SeverityMajor)
	require.NoError(t, err)
	assert.Equal(t, "PKG-DAM", d.Code)
	assert.NoError(t, d.CanDelete())

	sys, err := NewSystemDefectCode("PKG-WET", "Wet packaging", "", DefectCategoryPackaging, SeverityMinor)
	require.NoError(t, err)
	assert.True(t, errors.Is(sys.CanDelete(), shared.ErrInvalidState))

	_, err = NewDefectCode("bad code!", "x", DefectCategoryPackaging, SeverityMajor)
	assert.Error(t, err)
	_, err = NewDefectCode("ABC-DEF", "x", "weird", SeverityMajor)
	assert.Error(t, err)
}
