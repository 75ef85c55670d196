package hr

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEmployee(t *testing.T, basic string) *Employee {
	t.Helper()
	e, err := NewEmployee("EMP-0001", EmployeeProfile{
		FirstName:   "  priya ",
		LastName:    "NAIR",
		Email:       "Priya.Nair@Example.com",
		Department:  "Quality",
		Designation: "Inspector",
		JoiningDate: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
		Compensation: Compensation{
			BasicSalary:        dec(basic),
			HRA:                dec("4000"),
			TransportAllowance: dec("1000"),
		},
	})
	require.NoError(t, err)
	return e
}

func TestNewEmployee(t *testing.T) {
	e := newTestEmployee(t, "10000")
	assert.Equal(t, "Priya", e.FirstName)
	assert.Equal(t, "Nair", e.LastName)
	assert.Equal(t, "priya.nair@example.com", e.Email)
	assert.Equal(t, EmploymentFullTime, e.EmploymentType)
	assert.Equal(t, EmployeeProbation, e.Status)
	assert.True(t, e.Compensation.Gross().Equal(dec("15000")))

	_, err := NewEmployee("EMP-2", EmployeeProfile{FirstName: "a", LastName: "b", Email: "bad", Department: "d", Designation: "x"})
	assert.Error(t, err)
}

func TestNormaliseName(t *testing.T) {
	assert.Equal(t, "Mary Ann", NormaliseName("  mary   ANN "))
	assert.Equal(t, "", NormaliseName("   "))
}

func TestNormalisePhone(t *testing.T) {
	got, err := NormalisePhone(" +1 650-253-0000 ", "")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)

	got, err = NormalisePhone("98765 43210", "")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", got, "default region")

	got, err = NormalisePhone("07400 123456", "gb")
	require.NoError(t, err)
	assert.Equal(t, "+447400123456", got)

	got, err = NormalisePhone("", "GB")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"12", "not a phone"} {
		_, err = NormalisePhone(bad, DefaultPhoneRegion)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), bad)
	}
}

func TestEmployee_Separation(t *testing.T) {
	e := newTestEmployee(t, "10000")
	assert.Error(t, e.Terminate(time.Now(), ""))
	require.NoError(t, e.Resign(time.Now(), "relocation"))
	assert.Equal(t, EmployeeResigned, e.Status)
	assert.NotNil(t, e.ExitDate)
	assert.True(t, errors.Is(e.Resign(time.Now(), ""), shared.ErrInvalidState))
	assert.Error(t, e.Update(EmployeeProfile{}))
	assert.Len(t, e.GetDomainEvents(), 1)
}

func TestLeaveRequest(t *testing.T) {
	e := newTestEmployee(t, "10000")
	from := time.Date(2030, time.May, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, time.May, 8, 0, 0, 0, 0, time.UTC)

	l, err := NewLeaveRequest("LV-2030-0001", e, LeaveCasual, from, to, false, "family function")
	require.NoError(t, err)
	assert.True(t, l.Days.Equal(dec("3")))
	assert.Equal(t, "Priya Nair", l.EmployeeName)
	assert.Equal(t, LeavePending, l.Status)

	assert.True(t, l.Overlaps(to, to.AddDate(0, 0, 2)))
	assert.False(t, l.Overlaps(to.AddDate(0, 0, 1), to.AddDate(0, 0, 2)))

	_, err = NewLeaveRequest("LV-2", e, LeaveSick, from, to, true, "x")
	assert.Error(t, err, "half day across dates")
	half, err := NewLeaveRequest("LV-3", e, LeaveSick, from, from, true, "doctor")
	require.NoError(t, err)
	assert.True(t, half.Days.Equal(dec("0.5")))

	_, err = NewLeaveRequest("LV-4", e, LeaveSick, to, from, false, "x")
	assert.Error(t, err)

	assert.Error(t, l.Reject("mgr", ""))
	require.NoError(t, l.Approve("mgr"))
	assert.Equal(t, len(LeaveApprovalStages), l.CurrentStage)
	assert.Error(t, l.Approve("mgr"))

	assert.Error(t, l.Cancel("emp", from), "cannot cancel once started")
	require.NoError(t, l.Cancel("emp", from.AddDate(0, 0, -1)))
	assert.Equal(t, LeaveCancelled, l.Status)
}

func TestComputeEntry(t *testing.T) {
	policy := DefaultDeductionPolicy()

	t.Run("low wage gets ESI", func(t *testing.T) {
		e := newTestEmployee(t, "10000")
		entry := ComputeEntry(e.ID, e, decimal.Zero, policy)
		// gross 15000, pf 1200, pt 200, it 1500, esi 112.5
		assert.True(t, entry.GrossPay.Equal(dec("15000")))
		assert.True(t, entry.ProvidentFund.Equal(dec("1200")))
		assert.True(t, entry.IncomeTax.Equal(dec("1500")))
		assert.True(t, entry.ESI.Equal(dec("112.5")))
		assert.True(t, entry.TotalDeductions.Equal(dec("3012.5")))
		assert.True(t, entry.NetPay.Equal(dec("11987.5")))
	})

	t.Run("high wage skips ESI", func(t *testing.T) {
		e := newTestEmployee(t, "50000")
		entry := ComputeEntry(e.ID, e, decimal.Zero, policy)
		assert.True(t, entry.ESI.IsZero())
		assert.True(t, entry.GrossPay.Equal(dec("55000")))
	})
}

func TestPayrollRun_Lifecycle(t *testing.T) {
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)

	_, err := NewPayrollRun("PAY-1", end, start, end)
	assert.Error(t, err)

	run, err := NewPayrollRun("PAY-2024-05-001", start, end, end)
	require.NoError(t, err)

	active := newTestEmployee(t, "10000")
	gone := newTestEmployee(t, "20000")
	require.NoError(t, gone.Resign(time.Now(), "x"))
	future := newTestEmployee(t, "30000")
	future.JoiningDate = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	assert.Error(t, run.Approve("cfo"))
	require.NoError(t, run.Process([]Employee{*active, *gone, *future}, DefaultDeductionPolicy()))
	assert.Equal(t, PayrollProcessed, run.Status)
	assert.Equal(t, 1, run.EmployeeCount)
	assert.True(t, run.TotalNet.Equal(dec("11987.5")))

	assert.Error(t, run.Pay("x"))
	require.NoError(t, run.Approve("cfo"))
	require.NoError(t, run.Pay("treasury"))
	assert.Equal(t, PayrollPaid, run.Status)
	assert.Error(t, run.Cancel("x"))

	stats := ComputePayrollStatistics([]PayrollRun{*run})
	assert.Equal(t, 1, stats.ByStatus[PayrollPaid])
	assert.True(t, stats.TotalNetPaid.Equal(dec("11987.5")))
}

func TestPayrollRun_ProcessNoEmployees(t *testing.T) {
	run, err := NewPayrollRun("PAY-1", time.Now(), time.Now().AddDate(0, 1, 0), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, errors.Is(run.Process(nil, DefaultDeductionPolicy()), shared.ErrInvalidState))
}

func TestComputeEmployeeStatistics(t *testing.T) {
	a := newTestEmployee(t, "10000")
	b := newTestEmployee(t, "20000")
	b.Department = "Finance"
	c := newTestEmployee(t, "30000")
	require.NoError(t, c.Terminate(time.Now(), "misconduct"))

	stats := ComputeEmployeeStatistics([]Employee{*a, *b, *c})
	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 2, stats.Headcount)
	assert.Equal(t, 1, stats.ByStatus[EmployeeTerminated])
	assert.Equal(t, 1, stats.ByDepartment["Finance"])
	assert.True(t, stats.MonthlyPayrollCost.Equal(dec("40000")))
	assert.True(t, stats.AverageBasicSalary.Equal(dec("15000")))
}

func TestComputeLeaveStatistics(t *testing.T) {
	e := newTestEmployee(t, "10000")
	from := time.Date(2030, time.May, 6, 0, 0, 0, 0, time.UTC)
	a, _ := NewLeaveRequest("LV-1", e, LeaveCasual, from, from.AddDate(0, 0, 1), false, "x")
	require.NoError(t, a.Approve("m"))
	b, _ := NewLeaveRequest("LV-2", e, LeaveSick, from, from, false, "x")
	require.NoError(t, b.Reject("m", "no cover"))
	c, _ := NewLeaveRequest("LV-3", e, LeaveSick, from, from, false, "x")

	stats := ComputeLeaveStatistics([]LeaveRequest{*a, *b, *c})
	assert.Equal(t, 3, stats.TotalRequests)
	assert.Equal(t, 50.0, stats.ApprovalRate)
	assert.True(t, stats.ApprovedDays.Equal(dec("2")))
	assert.Equal(t, 1, stats.ByStatus[LeavePending])
}
