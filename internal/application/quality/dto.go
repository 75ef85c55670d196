package quality

import (
	"time"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/google/uuid"
)

// =============================================================================
// Defect code DTOs
// =============================================================================

// DefectCodeSeed is one entry of the built-in defect catalog
type DefectCodeSeed struct {
	Code        string
	Name        string
	Description string
	Category    quality.DefectCategory
	Severity    quality.Severity
}

// SeedResult reports what a seeding run did
type SeedResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// CreateDefectCodeRequest creates a custom defect code
type CreateDefectCodeRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=packaging material in_process finish dimensional functional"`
	Severity    string `json:"severity" binding:"required,oneof=critical major minor cosmetic"`
}

// UpdateDefectCodeRequest updates a defect code
type UpdateDefectCodeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=packaging material in_process finish dimensional functional"`
	Severity    string `json:"severity" binding:"required,oneof=critical major minor cosmetic"`
	IsActive    *bool  `json:"is_active"`
}

// DefectCodeListFilter holds list query parameters
type DefectCodeListFilter struct {
	Search   string `form:"search"`
	Severity string `form:"severity" binding:"omitempty,oneof=critical major minor cosmetic"`
	Category string `form:"category" binding:"omitempty,oneof=packaging material in_process finish dimensional functional"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DefectCodeResponse represents a defect code in API responses
type DefectCodeResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	IsActive    bool      `json:"is_active"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDefectCodeResponse converts a domain defect code
func ToDefectCodeResponse(d *quality.DefectCode) DefectCodeResponse {
	return DefectCodeResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Category:    string(d.Category),
		Severity:    string(d.Severity),
		IsActive:    d.IsActive,
		IsSystem:    d.IsSystem,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// =============================================================================
// Inspection DTOs
// =============================================================================

// InspectionSubjectRequest carries the fields shared by create and update
type InspectionSubjectRequest struct {
	ProductID       *uuid.UUID `json:"product_id"`
	ProductCode     string     `json:"product_code" binding:"max=50"`
	ProductName     string     `json:"product_name" binding:"required,max=200"`
	WorkOrderNumber string     `json:"work_order_number" binding:"max=50"`
	BatchNumber     string     `json:"batch_number" binding:"max=50"`
	LotNumber       string     `json:"lot_number" binding:"max=50"`
	TotalQuantity   int        `json:"total_quantity" binding:"min=0"`
	SampledQuantity int        `json:"sampled_quantity" binding:"min=0"`
	InspectorID     *uuid.UUID `json:"inspector_id"`
	InspectorName   string     `json:"inspector_name" binding:"max=100"`
	Location        string     `json:"location" binding:"max=100"`
	Workstation     string     `json:"workstation" binding:"max=100"`
	Notes           string     `json:"notes"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
}

func (r InspectionSubjectRequest) toDomain() quality.InspectionSubject {
	return quality.InspectionSubject{
		ProductID:       r.ProductID,
		ProductCode:     r.ProductCode,
		ProductName:     r.ProductName,
		WorkOrderNumber: r.WorkOrderNumber,
		BatchNumber:     r.BatchNumber,
		LotNumber:       r.LotNumber,
		TotalQuantity:   r.TotalQuantity,
		SampledQuantity: r.SampledQuantity,
		InspectorID:     r.InspectorID,
		InspectorName:   r.InspectorName,
		Location:        r.Location,
		Workstation:     r.Workstation,
		Notes:           r.Notes,
		ScheduledDate:   r.ScheduledDate,
	}
}

// CreateInspectionRequest creates an inspection
type CreateInspectionRequest struct {
	Type string `json:"type" binding:"required,oneof=incoming in_process final first_article periodic supplier customer"`
	InspectionSubjectRequest
}

// UpdateInspectionRequest updates an editable inspection
type UpdateInspectionRequest struct {
	InspectionSubjectRequest
}

// RecordDefectRequest records a defect observation
type RecordDefectRequest struct {
	DefectCode string `json:"defect_code" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

// RecordResultsRequest records pass/fail counts and disposition
type RecordResultsRequest struct {
	PassedQuantity int    `json:"passed_quantity" binding:"min=0"`
	FailedQuantity int    `json:"failed_quantity" binding:"min=0"`
	OverallResult  string `json:"overall_result" binding:"required,oneof=pass fail conditional"`
}

// TransitionRequest carries the optional reason of a lifecycle action
type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// InspectionListFilter holds list query parameters
type InspectionListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=draft scheduled in_progress pending_review approved rejected cancelled"`
	Type        string     `form:"type" binding:"omitempty,oneof=incoming in_process final first_article periodic supplier customer"`
	Result      string     `form:"result" binding:"omitempty,oneof=pass fail conditional pending"`
	InspectorID string     `form:"inspector_id" binding:"omitempty,uuid"`
	ProductID   string     `form:"product_id" binding:"omitempty,uuid"`
	FromDate    *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InspectionResponse represents an inspection with its children
type InspectionResponse struct {
	ID               uuid.UUID                  `json:"id"`
	InspectionNumber string                     `json:"inspection_number"`
	Type             string                     `json:"type"`
	Status           string                     `json:"status"`
	OverallResult    string                     `json:"overall_result"`
	ProductID        *uuid.UUID                 `json:"product_id,omitempty"`
	ProductCode      string                     `json:"product_code"`
	ProductName      string                     `json:"product_name"`
	WorkOrderNumber  string                     `json:"work_order_number"`
	BatchNumber      string                     `json:"batch_number"`
	LotNumber        string                     `json:"lot_number"`
	TotalQuantity    int                        `json:"total_quantity"`
	SampledQuantity  int                        `json:"sampled_quantity"`
	PassedQuantity   int                        `json:"passed_quantity"`
	FailedQuantity   int                        `json:"failed_quantity"`
	DefectSummary    quality.DefectSummary      `json:"defect_summary"`
	DefectRate       float64                    `json:"defect_rate"`
	InspectorID      *uuid.UUID                 `json:"inspector_id,omitempty"`
	InspectorName    string                     `json:"inspector_name"`
	Location         string                     `json:"location"`
	Workstation      string                     `json:"workstation"`
	Notes            string                     `json:"notes"`
	ScheduledDate    *time.Time                 `json:"scheduled_date,omitempty"`
	StartedAt        *time.Time                 `json:"started_at,omitempty"`
	CompletedAt      *time.Time                 `json:"completed_at,omitempty"`
	ApprovedBy       string                     `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time                 `json:"approved_at,omitempty"`
	RejectionReason  string                     `json:"rejection_reason,omitempty"`
	Defects          []quality.InspectionDefect `json:"defects"`
	Attachments      []AttachmentResponse       `json:"attachments"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
	Version          int                        `json:"version"`
}

// InspectionListResponse is a list item for inspections
type InspectionListResponse struct {
	ID               uuid.UUID  `json:"id"`
	InspectionNumber string     `json:"inspection_number"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	OverallResult    string     `json:"overall_result"`
	ProductName      string     `json:"product_name"`
	BatchNumber      string     `json:"batch_number"`
	InspectorName    string     `json:"inspector_name"`
	SampledQuantity  int        `json:"sampled_quantity"`
	TotalDefects     int        `json:"total_defects"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// AttachmentResponse represents an attachment
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestUploadRequest asks for a presigned upload URL
type RequestUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// UploadURLResponse carries the presigned upload target
type UploadURLResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	Attachment  AttachmentResponse `json:"attachment"`
	DownloadURL string             `json:"download_url"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// ToAttachmentResponse converts an attachment
func ToAttachmentResponse(a *quality.InspectionAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		CreatedAt:   a.CreatedAt,
	}
}

// ToInspectionResponse converts a domain inspection
func ToInspectionResponse(i *quality.Inspection) InspectionResponse {
	defects := i.DefectRecords
	if defects == nil {
		defects = []quality.InspectionDefect{}
	}
	attachments := make([]AttachmentResponse, len(i.Attachments))
	for k := range i.Attachments {
		attachments[k] = ToAttachmentResponse(&i.Attachments[k])
	}
	return InspectionResponse{
		ID:               i.ID,
		InspectionNumber: i.InspectionNumber,
		Type:             string(i.Type),
		Status:           string(i.Status),
		OverallResult:    string(i.OverallResult),
		ProductID:        i.ProductID,
		ProductCode:      i.ProductCode,
		ProductName:      i.ProductName,
		WorkOrderNumber:  i.WorkOrderNumber,
		BatchNumber:      i.BatchNumber,
		LotNumber:        i.LotNumber,
		TotalQuantity:    i.TotalQuantity,
		SampledQuantity:  i.SampledQuantity,
		PassedQuantity:   i.PassedQuantity,
		FailedQuantity:   i.FailedQuantity,
		DefectSummary:    i.Defects,
		DefectRate:       i.DefectRate(),
		InspectorID:      i.InspectorID,
		InspectorName:    i.InspectorName,
		Location:         i.Location,
		Workstation:      i.Workstation,
		Notes:            i.Notes,
		ScheduledDate:    i.ScheduledDate,
		StartedAt:        i.StartedAt,
		CompletedAt:      i.CompletedAt,
		ApprovedBy:       i.ApprovedBy,
		ApprovedAt:       i.ApprovedAt,
		RejectionReason:  i.RejectionReason,
		Defects:          defects,
		Attachments:      attachments,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
		Version:          i.Version,
	}
}

// ToInspectionListResponse converts a domain inspection to a list item
func ToInspectionListResponse(i *quality.Inspection) InspectionListResponse {
	return InspectionListResponse{
		ID:               i.ID,
		InspectionNumber: i.InspectionNumber,
		Type:             string(i.Type),
		Status:           string(i.Status),
		OverallResult:    string(i.OverallResult),
		ProductName:      i.ProductName,
		BatchNumber:      i.BatchNumber,
		InspectorName:    i.InspectorName,
		SampledQuantity:  i.SampledQuantity,
		TotalDefects:     i.Defects.Total,
		ScheduledDate:    i.ScheduledDate,
		CreatedAt:        i.CreatedAt,
	}
}
