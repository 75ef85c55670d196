package hr

import (
	"context"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func may(d int) time.Time { return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC) }

type leaveFixture struct {
	repo      *MockLeaveRequestRepository
	employees *MockEmployeeRepository
	numbers   *MockNumberGenerator
	events    *MockEventPublisher
	svc       *LeaveService
}

func newLeaveFixture() *leaveFixture {
	f := &leaveFixture{
		repo:      new(MockLeaveRequestRepository),
		employees: new(MockEmployeeRepository),
		numbers:   new(MockNumberGenerator),
		events:    new(MockEventPublisher),
	}
	f.svc = NewLeaveService(f.repo, f.employees, f.numbers, f.events, nil)
	f.svc.now = func() time.Time { return may(1) }
	return f
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("counts days inclusively", func(t *testing.T) {
		f := newLeaveFixture()
		e := newEmployee(t, "EMP-0001")
		f.employees.On("FindByID", ctx, e.ID).Return(e, nil)
		f.repo.On("FindBlocking", ctx, e.ID, may(6), may(8)).Return([]hr.LeaveRequest{}, nil)
		f.numbers.On("Next", ctx, "LEAVE").Return("LV-2024-0001", nil)
		f.repo.On("Save", ctx, mock.AnythingOfType("*hr.LeaveRequest")).Return(nil)

		resp, err := f.svc.Create(ctx, CreateLeaveRequest{
			EmployeeID: e.ID,
			LeaveType:  "casual",
			FromDate:   may(6).Add(9 * time.Hour),
			ToDate:     may(8),
			Reason:     "family event",
		})
		require.NoError(t, err)
		assert.Equal(t, "LV-2024-0001", resp.RequestNumber)
		assert.Equal(t, "Priya Nair", resp.EmployeeName)
		assert.True(t, resp.Days.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, string(hr.LeavePending), resp.Status)
		assert.Equal(t, 2, resp.CurrentStage)
	})

	t.Run("overlap is refused before numbering", func(t *testing.T) {
		f := newLeaveFixture()
		e := newEmployee(t, "EMP-0001")
		existing, err := hr.NewLeaveRequest("LV-2024-0001", e, hr.LeaveSick, may(7), may(7), false, "flu")
		require.NoError(t, err)
		f.employees.On("FindByID", ctx, e.ID).Return(e, nil)
		f.repo.On("FindBlocking", ctx, e.ID, may(6), may(8)).Return([]hr.LeaveRequest{*existing}, nil)

		_, err = f.svc.Create(ctx, CreateLeaveRequest{
			EmployeeID: e.ID, LeaveType: "casual", FromDate: may(6), ToDate: may(8), Reason: "trip",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Contains(t, err.Error(), "LV-2024-0001")
		f.numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("former employees cannot request leave", func(t *testing.T) {
		f := newLeaveFixture()
		e := newEmployee(t, "EMP-0001")
		require.NoError(t, e.Resign(may(1), "relocation"))
		f.employees.On("FindByID", ctx, e.ID).Return(e, nil)

		_, err := f.svc.Create(ctx, CreateLeaveRequest{
			EmployeeID: e.ID, LeaveType: "casual", FromDate: may(6), ToDate: may(8), Reason: "trip",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.repo.AssertNotCalled(t, "FindBlocking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("half day spans one date", func(t *testing.T) {
		f := newLeaveFixture()
		e := newEmployee(t, "EMP-0001")
		f.employees.On("FindByID", ctx, e.ID).Return(e, nil)

		_, err := f.svc.Create(ctx, CreateLeaveRequest{
			EmployeeID: e.ID, LeaveType: "casual", FromDate: may(6), ToDate: may(7), HalfDay: true, Reason: "dentist",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestLeaveService_Decisions(t *testing.T) {
	ctx := context.Background()
	e := newEmployee(t, "EMP-0001")

	newPending := func(t *testing.T, from, to time.Time) *hr.LeaveRequest {
		t.Helper()
		l, err := hr.NewLeaveRequest("LV-2024-0001", e, hr.LeaveEarned, from, to, false, "holiday")
		require.NoError(t, err)
		return l
	}

	t.Run("approve completes the trail", func(t *testing.T) {
		f := newLeaveFixture()
		l := newPending(t, may(10), may(14))
		f.repo.On("FindByID", ctx, l.ID).Return(l, nil)
		f.repo.On("Save", ctx, l).Return(nil)
		f.events.On("Publish", ctx, eventTypes("leave_request.approved")).Return(nil)

		resp, err := f.svc.Approve(ctx, l.ID, "manager")
		require.NoError(t, err)
		assert.Equal(t, string(hr.LeaveApproved), resp.Status)
		assert.Equal(t, len(f.svc.Stages()), resp.CurrentStage)
		assert.Equal(t, "manager", resp.ApproverName)
		assert.NotNil(t, resp.DecidedAt)
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		f := newLeaveFixture()
		l := newPending(t, may(10), may(14))
		f.repo.On("FindByID", ctx, l.ID).Return(l, nil)

		_, err := f.svc.Reject(ctx, l.ID, "manager", LeaveDecisionRequest{})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("approved leave cancels only before it starts", func(t *testing.T) {
		f := newLeaveFixture()
		l := newPending(t, may(10), may(14))
		require.NoError(t, l.Approve("manager"))
		l.ClearDomainEvents()
		f.repo.On("FindByID", ctx, l.ID).Return(l, nil)
		f.repo.On("Save", ctx, l).Return(nil)
		f.events.On("Publish", ctx, eventTypes("leave_request.cancelled")).Return(nil)

		f.svc.now = func() time.Time { return may(10).Add(8 * time.Hour) }
		_, err := f.svc.Cancel(ctx, l.ID, "priya")
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		f.svc.now = func() time.Time { return may(9) }
		resp, err := f.svc.Cancel(ctx, l.ID, "priya")
		require.NoError(t, err)
		assert.Equal(t, string(hr.LeaveCancelled), resp.Status)
	})

	t.Run("decided requests cannot be approved", func(t *testing.T) {
		f := newLeaveFixture()
		l := newPending(t, may(10), may(14))
		require.NoError(t, l.Reject("manager", "peak season"))
		f.repo.On("FindByID", ctx, l.ID).Return(l, nil)

		_, err := f.svc.Approve(ctx, l.ID, "admin")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestLeaveService_Statistics(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	e := newEmployee(t, "EMP-0001")

	approved, err := hr.NewLeaveRequest("LV-1", e, hr.LeaveCasual, may(6), may(7), false, "trip")
	require.NoError(t, err)
	require.NoError(t, approved.Approve("manager"))
	rejected, err := hr.NewLeaveRequest("LV-2", e, hr.LeaveSick, may(20), may(20), false, "flu")
	require.NoError(t, err)
	require.NoError(t, rejected.Reject("manager", "no certificate"))

	f.repo.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.PageSize == 0
	})).Return([]hr.LeaveRequest{*approved, *rejected}, nil)

	stats, err := f.svc.Statistics(ctx, LeaveListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.True(t, stats.ApprovedDays.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 50.0, stats.ApprovalRate)
}
