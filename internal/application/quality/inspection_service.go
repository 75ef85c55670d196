package quality

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InspectionService handles quality inspections
type InspectionService struct {
	repo        quality.InspectionRepository
	defectCodes quality.DefectCodeRepository
	numbers     shared.NumberGenerator
	storage     ObjectStorage
	events      shared.EventPublisher
	maxFileSize int64
	logger      *zap.Logger
}

// InspectionServiceDeps groups the collaborators of InspectionService
type InspectionServiceDeps struct {
	Repo        quality.InspectionRepository
	DefectCodes quality.DefectCodeRepository
	Numbers     shared.NumberGenerator
	Storage     ObjectStorage
	Events      shared.EventPublisher
	MaxFileSize int64
	Logger      *zap.Logger
}

// NewInspectionService creates a new InspectionService
func NewInspectionService(deps InspectionServiceDeps) *InspectionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionService{
		repo:        deps.Repo,
		defectCodes: deps.DefectCodes,
		numbers:     deps.Numbers,
		storage:     deps.Storage,
		events:      deps.Events,
		maxFileSize: deps.MaxFileSize,
		logger:      logger.Named("inspections"),
	}
}

// Create creates a draft or scheduled inspection numbered from the INSPECTION series
func (s *InspectionService) Create(ctx context.Context, req CreateInspectionRequest) (*InspectionResponse, error) {
	inspection, err := quality.NewInspection("", quality.InspectionType(req.Type), req.toDomain())
	if err != nil {
		return nil, err
	}
	number, err := s.numbers.Next(ctx, settings.SeriesInspection)
	if err != nil {
		return nil, err
	}
	inspection.InspectionNumber = number
	if err := s.repo.Save(ctx, inspection); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, inspection); err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

// GetByID retrieves an inspection with its defects and attachments
func (s *InspectionService) GetByID(ctx context.Context, id uuid.UUID) (*InspectionResponse, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

func (f InspectionListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.
		With("status", f.Status).
		With("type", f.Type).
		With("result", f.Result).
		With("inspector_id", shared.OptionalID(f.InspectorID)).
		With("product_id", shared.OptionalID(f.ProductID))
	if f.FromDate != nil {
		filter = filter.With("from_date", *f.FromDate)
	}
	if f.ToDate != nil {
		filter = filter.With("to_date", f.ToDate.AddDate(0, 0, 1))
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves inspections with filtering and pagination
func (s *InspectionService) List(ctx context.Context, filter InspectionListFilter) ([]InspectionListResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]InspectionListResponse, len(list))
	for i := range list {
		out[i] = ToInspectionListResponse(&list[i])
	}
	return out, total, nil
}

// Update replaces the subject of an editable inspection
func (s *InspectionService) Update(ctx context.Context, id uuid.UUID, req UpdateInspectionRequest) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error {
		return i.Update(req.toDomain())
	})
}

// Delete removes a draft or cancelled inspection and its stored files
func (s *InspectionService) Delete(ctx context.Context, id uuid.UUID) error {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := inspection.CanDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, a := range inspection.Attachments {
		s.deleteObject(ctx, a.StorageKey)
	}
	return nil
}

// Start moves the inspection into progress
func (s *InspectionService) Start(ctx context.Context, id uuid.UUID, actor string) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error { return i.Start(actor) })
}

// Submit sends the inspection for review
func (s *InspectionService) Submit(ctx context.Context, id uuid.UUID, actor string) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error { return i.Submit(actor) })
}

// Approve accepts a reviewed inspection
func (s *InspectionService) Approve(ctx context.Context, id uuid.UUID, actor string) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error { return i.Approve(actor) })
}

// Reject rejects a reviewed inspection
func (s *InspectionService) Reject(ctx context.Context, id uuid.UUID, actor string, req TransitionRequest) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error { return i.Reject(actor, req.Reason) })
}

// Cancel abandons a non-terminal inspection
func (s *InspectionService) Cancel(ctx context.Context, id uuid.UUID, actor string, req TransitionRequest) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error { return i.Cancel(actor, req.Reason) })
}

// RecordDefect adds a defect observation using an active catalog code
func (s *InspectionService) RecordDefect(ctx context.Context, id uuid.UUID, req RecordDefectRequest) (*InspectionResponse, error) {
	code, err := s.defectCodes.FindByCode(ctx, req.DefectCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.InvalidInput("unknown defect code: " + req.DefectCode)
		}
		return nil, err
	}
	return s.mutate(ctx, id, func(i *quality.Inspection) error {
		_, err := i.RecordDefect(code, req.Quantity, req.Notes)
		return err
	})
}

// RecordResults stores pass/fail counts and the overall result
func (s *InspectionService) RecordResults(ctx context.Context, id uuid.UUID, req RecordResultsRequest) (*InspectionResponse, error) {
	return s.mutate(ctx, id, func(i *quality.Inspection) error {
		return i.RecordResults(req.PassedQuantity, req.FailedQuantity, quality.InspectionResult(req.OverallResult))
	})
}

// Statistics summarises every inspection matching filter
func (s *InspectionService) Statistics(ctx context.Context, filter InspectionListFilter) (*quality.InspectionStatistics, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	stats := quality.ComputeStatistics(list)
	return &stats, nil
}

// InspectionStatistics summarises one inspection
func (s *InspectionService) InspectionStatistics(ctx context.Context, id uuid.UUID) (*quality.InspectionStatistics, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := quality.ComputeStatistics([]quality.Inspection{*inspection})
	return &stats, nil
}

// RequestUpload registers an attachment and returns a presigned upload URL
func (s *InspectionService) RequestUpload(ctx context.Context, id uuid.UUID, req RequestUploadRequest) (*UploadURLResponse, error) {
	if s.maxFileSize > 0 && req.FileSize > s.maxFileSize {
		return nil, shared.InvalidInput(fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := attachmentKey(inspection, req.FileName)
	attachment, err := inspection.AttachFile(req.FileName, req.ContentType, key, req.FileSize)
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	if err := s.repo.Save(ctx, inspection); err != nil {
		return nil, err
	}
	return &UploadURLResponse{
		Attachment: ToAttachmentResponse(attachment),
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ListAttachments returns the attachments of an inspection
func (s *InspectionService) ListAttachments(ctx context.Context, id uuid.UUID) ([]AttachmentResponse, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInspectionResponse(inspection).Attachments, nil
}

// AttachmentDownload returns a presigned download URL for one attachment
func (s *InspectionService) AttachmentDownload(ctx context.Context, id, attachmentID uuid.UUID) (*DownloadURLResponse, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	attachment := findAttachment(inspection, attachmentID)
	if attachment == nil {
		return nil, shared.NotFound("attachment")
	}
	url, expiresAt, err := s.storage.PresignDownload(ctx, attachment.StorageKey, attachment.FileName)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &DownloadURLResponse{
		Attachment:  ToAttachmentResponse(attachment),
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// DeleteAttachment removes an attachment row and its stored object
func (s *InspectionService) DeleteAttachment(ctx context.Context, id, attachmentID uuid.UUID) error {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	attachment := findAttachment(inspection, attachmentID)
	if attachment == nil {
		return shared.NotFound("attachment")
	}
	if err := s.repo.DeleteAttachment(ctx, id, attachmentID); err != nil {
		return err
	}
	s.deleteObject(ctx, attachment.StorageKey)
	return nil
}

// mutate loads, changes, saves and publishes events in that order
func (s *InspectionService) mutate(ctx context.Context, id uuid.UUID, fn func(*quality.Inspection) error) (*InspectionResponse, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(inspection); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inspection); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, inspection); err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

// deleteObject is best effort; an orphaned object is only logged
func (s *InspectionService) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete attachment object", zap.String("key", key), zap.Error(err))
	}
}

func findAttachment(i *quality.Inspection, id uuid.UUID) *quality.InspectionAttachment {
	for k := range i.Attachments {
		if i.Attachments[k].ID == id {
			return &i.Attachments[k]
		}
	}
	return nil
}

func attachmentKey(i *quality.Inspection, fileName string) string {
	name := strings.ReplaceAll(path.Base(strings.ReplaceAll(fileName, `\`, "/")), " ", "_")
	return fmt.Sprintf("inspections/%s/%s-%s", i.ID, uuid.NewString()[:8], name)
}
