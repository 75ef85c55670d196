package quality

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inspectionFixture struct {
	repo    *MockInspectionRepository
	codes   *MockDefectCodeRepository
	numbers *MockNumberGenerator
	storage *MockObjectStorage
	events  *MockEventPublisher
	svc     *InspectionService
}

func newInspectionFixture() *inspectionFixture {
	f := &inspectionFixture{
		repo:    new(MockInspectionRepository),
		codes:   new(MockDefectCodeRepository),
		numbers: new(MockNumberGenerator),
		storage: new(MockObjectStorage),
		events:  new(MockEventPublisher),
	}
	f.svc = NewInspectionService(InspectionServiceDeps{
		Repo:        f.repo,
		DefectCodes: f.codes,
		Numbers:     f.numbers,
		Storage:     f.storage,
		Events:      f.events,
		MaxFileSize: 1 << 20,
	})
	return f
}

func newTestInspection(t *testing.T) *quality.Inspection {
	t.Helper()
	i, err := quality.NewInspection("INS-2024-0001", quality.InspectionTypeFinal, quality.InspectionSubject{
		ProductName:     "Bracket",
		TotalQuantity:   500,
		SampledQuantity: 50,
	})
	require.NoError(t, err)
	return i
}

func eventTypes(types ...string) interface{} {
	return mock.MatchedBy(func(evts []shared.DomainEvent) bool {
		if len(evts) != len(types) {
			return false
		}
		for i, e := range evts {
			if e.EventType() != types[i] {
				return false
			}
		}
		return true
	})
}

func TestInspectionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers from the inspection series", func(t *testing.T) {
		f := newInspectionFixture()
		f.numbers.On("Next", ctx, "INSPECTION").Return("INS-2024-0007", nil)
		f.repo.On("Save", ctx, mock.AnythingOfType("*quality.Inspection")).Return(nil)

		resp, err := f.svc.Create(ctx, CreateInspectionRequest{
			Type: "incoming",
			InspectionSubjectRequest: InspectionSubjectRequest{
				ProductName:     "Bracket",
				TotalQuantity:   100,
				SampledQuantity: 10,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "INS-2024-0007", resp.InspectionNumber)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "pending", resp.OverallResult)
		f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("scheduled date makes it scheduled", func(t *testing.T) {
		f := newInspectionFixture()
		f.numbers.On("Next", ctx, "INSPECTION").Return("INS-2024-0008", nil)
		f.repo.On("Save", ctx, mock.Anything).Return(nil)

		when := time.Now().Add(48 * time.Hour)
		resp, err := f.svc.Create(ctx, CreateInspectionRequest{
			Type:                     "final",
			InspectionSubjectRequest: InspectionSubjectRequest{ProductName: "Bracket", ScheduledDate: &when},
		})
		require.NoError(t, err)
		assert.Equal(t, "scheduled", resp.Status)
	})

	t.Run("sample larger than lot keeps the series untouched", func(t *testing.T) {
		f := newInspectionFixture()

		for range 3 {
			_, err := f.svc.Create(ctx, CreateInspectionRequest{
				Type:                     "final",
				InspectionSubjectRequest: InspectionSubjectRequest{ProductName: "Bracket", TotalQuantity: 5, SampledQuantity: 10},
			})
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}
		f.numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInspectionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newInspectionFixture()
	inspection := newTestInspection(t)

	f.repo.On("FindByID", ctx, inspection.ID).Return(inspection, nil)
	f.repo.On("Save", ctx, inspection).Return(nil)
	f.events.On("Publish", ctx, eventTypes("inspection.in_progress")).Return(nil).Once()
	f.events.On("Publish", ctx, eventTypes("inspection.pending_review")).Return(nil).Once()
	f.events.On("Publish", ctx, eventTypes("inspection.approved")).Return(nil).Once()

	code, err := quality.NewDefectCode("FIN-SCR", "Scratch", quality.DefectCategoryFinish, quality.SeverityMinor)
	require.NoError(t, err)
	f.codes.On("FindByCode", ctx, "FIN-SCR").Return(code, nil)
	f.codes.On("FindByCode", ctx, "XXX-YYY").Return(nil, shared.NotFound("defect code"))

	_, err = f.svc.Submit(ctx, inspection.ID, "qa")
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	resp, err := f.svc.Start(ctx, inspection.ID, "meera")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)
	assert.Equal(t, "meera", resp.InspectorName)

	resp, err = f.svc.RecordDefect(ctx, inspection.ID, RecordDefectRequest{DefectCode: "FIN-SCR", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.DefectSummary.Minor)
	assert.Len(t, resp.Defects, 1)

	_, err = f.svc.RecordDefect(ctx, inspection.ID, RecordDefectRequest{DefectCode: "XXX-YYY", Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = f.svc.RecordResults(ctx, inspection.ID, RecordResultsRequest{PassedQuantity: 40, FailedQuantity: 20, OverallResult: "pass"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = f.svc.RecordResults(ctx, inspection.ID, RecordResultsRequest{PassedQuantity: 47, FailedQuantity: 3, OverallResult: "conditional"})
	require.NoError(t, err)

	resp, err = f.svc.Submit(ctx, inspection.ID, "meera")
	require.NoError(t, err)
	assert.Equal(t, "pending_review", resp.Status)
	assert.NotNil(t, resp.CompletedAt)

	resp, err = f.svc.Approve(ctx, inspection.ID, "supervisor")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "supervisor", resp.ApprovedBy)

	_, err = f.svc.Cancel(ctx, inspection.ID, "meera", TransitionRequest{Reason: "late"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	f.events.AssertExpectations(t)
}

func TestInspectionService_RejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	f := newInspectionFixture()
	inspection := newTestInspection(t)
	inspection.Status = quality.InspectionStatusPendingReview

	f.repo.On("FindByID", ctx, inspection.ID).Return(inspection, nil)
	f.repo.On("Save", ctx, inspection).Return(nil)
	f.events.On("Publish", ctx, eventTypes("inspection.rejected")).Return(nil)

	_, err := f.svc.Reject(ctx, inspection.ID, "supervisor", TransitionRequest{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	resp, err := f.svc.Reject(ctx, inspection.ID, "supervisor", TransitionRequest{Reason: "sample too small"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "sample too small", resp.RejectionReason)
}

func TestInspectionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("draft with attachment", func(t *testing.T) {
		f := newInspectionFixture()
		inspection := newTestInspection(t)
		_, err := inspection.AttachFile("photo.jpg", "image/jpeg", "inspections/x/photo.jpg", 100)
		require.NoError(t, err)

		f.repo.On("FindByID", ctx, inspection.ID).Return(inspection, nil)
		f.repo.On("Delete", ctx, inspection.ID).Return(nil)
		f.storage.On("Delete", ctx, "inspections/x/photo.jpg").Return(assert.AnError)

		require.NoError(t, f.svc.Delete(ctx, inspection.ID))
		f.storage.AssertExpectations(t)
	})

	t.Run("in progress is refused", func(t *testing.T) {
		f := newInspectionFixture()
		inspection := newTestInspection(t)
		inspection.Status = quality.InspectionStatusInProgress
		f.repo.On("FindByID", ctx, inspection.ID).Return(inspection, nil)

		assert.ErrorIs(t, f.svc.Delete(ctx, inspection.ID), shared.ErrInvalidState)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInspectionService_Attachments(t *testing.T) {
	ctx := context.Background()
	f := newInspectionFixture()
	inspection := newTestInspection(t)
	expires := time.Now().Add(15 * time.Minute)

	f.repo.On("FindByID", ctx, inspection.ID).Return(inspection, nil)
	f.repo.On("Save", ctx, inspection).Return(nil)

	var key string
	f.storage.On("PresignUpload", ctx, mock.MatchedBy(func(k string) bool {
		key = k
		return strings.HasPrefix(k, "inspections/"+inspection.ID.String()+"/") && strings.HasSuffix(k, "-line_3.jpg")
	}), "image/jpeg").Return("https://s3.local/upload", expires, nil)

	_, err := f.svc.RequestUpload(ctx, inspection.ID, RequestUploadRequest{FileName: "big.bin", ContentType: "application/octet-stream", FileSize: 2 << 20})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	upload, err := f.svc.RequestUpload(ctx, inspection.ID, RequestUploadRequest{FileName: "line 3.jpg", ContentType: "image/jpeg", FileSize: 2048})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/upload", upload.UploadURL)
	assert.Equal(t, "line 3.jpg", upload.Attachment.FileName)

	list, err := f.svc.ListAttachments(ctx, inspection.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	attachmentID := upload.Attachment.ID
	f.storage.On("PresignDownload", ctx, key, "line 3.jpg").Return("https://s3.local/download", expires, nil)
	download, err := f.svc.AttachmentDownload(ctx, inspection.ID, attachmentID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/download", download.DownloadURL)

	_, err = f.svc.AttachmentDownload(ctx, inspection.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	f.repo.On("DeleteAttachment", ctx, inspection.ID, attachmentID).Return(nil)
	f.storage.On("Delete", ctx, key).Return(nil)
	require.NoError(t, f.svc.DeleteAttachment(ctx, inspection.ID, attachmentID))
	f.storage.AssertExpectations(t)
}

func TestInspectionService_Statistics(t *testing.T) {
	ctx := context.Background()
	f := newInspectionFixture()

	approved := newTestInspection(t)
	approved.Status = quality.InspectionStatusApproved
	approved.OverallResult = quality.ResultPass
	approved.Defects.Add(quality.SeverityMajor, 2)
	rejected := newTestInspection(t)
	rejected.Status = quality.InspectionStatusRejected
	rejected.OverallResult = quality.ResultFail
	draft := newTestInspection(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	f.repo.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.PageSize == 0 &&
			filter.Filters["from_date"] == from &&
			filter.Filters["to_date"] == to.AddDate(0, 0, 1)
	})).Return([]quality.Inspection{*approved, *rejected, *draft}, nil)

	stats, err := f.svc.Statistics(ctx, InspectionListFilter{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalInspections)
	assert.Equal(t, 2, stats.Completed)
	assert.InDelta(t, 50.0, stats.PassRate, 0.001)
	assert.Equal(t, 2, stats.DefectsBySeverity[quality.SeverityMajor])
	assert.Equal(t, 1, stats.ByStatus[quality.InspectionStatusDraft])
	assert.Equal(t, 0, stats.ByStatus[quality.InspectionStatusCancelled])
}
