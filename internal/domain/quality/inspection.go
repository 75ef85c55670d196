package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const aggregateTypeInspection = "inspection"

// InspectionStatus is the lifecycle state of an inspection
type InspectionStatus string

const (
	InspectionStatusDraft         InspectionStatus = "draft"
	InspectionStatusScheduled     InspectionStatus = "scheduled"
	InspectionStatusInProgress    InspectionStatus = "in_progress"
	InspectionStatusPendingReview InspectionStatus = "pending_review"
	InspectionStatusApproved      InspectionStatus = "approved"
	InspectionStatusRejected      InspectionStatus = "rejected"
	InspectionStatusCancelled     InspectionStatus = "cancelled"
)

// AllInspectionStatuses lists every status, used to zero-fill statistics
var AllInspectionStatuses = []InspectionStatus{
	InspectionStatusDraft, InspectionStatusScheduled, InspectionStatusInProgress,
	InspectionStatusPendingReview, InspectionStatusApproved, InspectionStatusRejected,
	InspectionStatusCancelled,
}

// IsTerminal reports whether no further transitions are possible
func (s InspectionStatus) IsTerminal() bool {
	return s == InspectionStatusApproved || s == InspectionStatusRejected || s == InspectionStatusCancelled
}

// IsEditable reports whether header fields may still change
func (s InspectionStatus) IsEditable() bool {
	return s == InspectionStatusDraft || s == InspectionStatusScheduled || s == InspectionStatusInProgress
}

// InspectionType is the stage at which an inspection happens
type InspectionType string

const (
	InspectionTypeIncoming     InspectionType = "incoming"
	InspectionTypeInProcess    InspectionType = "in_process"
	InspectionTypeFinal        InspectionType = "final"
	InspectionTypeFirstArticle InspectionType = "first_article"
	InspectionTypePeriodic     InspectionType = "periodic"
	InspectionTypeSupplier     InspectionType = "supplier"
	InspectionTypeCustomer     InspectionType = "customer"
)

// AllInspectionTypes lists every inspection type
var AllInspectionTypes = []InspectionType{
	InspectionTypeIncoming, InspectionTypeInProcess, InspectionTypeFinal,
	InspectionTypeFirstArticle, InspectionTypePeriodic, InspectionTypeSupplier,
	InspectionTypeCustomer,
}

// IsValid reports whether t is a known type
func (t InspectionType) IsValid() bool {
	for _, v := range AllInspectionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// InspectionResult is the disposition of the inspected lot
type InspectionResult string

const (
	ResultPass        InspectionResult = "pass"
	ResultFail        InspectionResult = "fail"
	ResultConditional InspectionResult = "conditional"
	ResultPending     InspectionResult = "pending"
)

// AllInspectionResults lists every result
var AllInspectionResults = []InspectionResult{ResultPass, ResultFail, ResultConditional, ResultPending}

// DefectSummary counts recorded defects by severity
type DefectSummary struct {
	Critical int `gorm:"column:defects_critical;not null;default:0" json:"critical"`
	Major    int `gorm:"column:defects_major;not null;default:0" json:"major"`
	Minor    int `gorm:"column:defects_minor;not null;default:0" json:"minor"`
	Cosmetic int `gorm:"column:defects_cosmetic;not null;default:0" json:"cosmetic"`
	Total    int `gorm:"column:defects_total;not null;default:0" json:"total"`
}

// Add increments the counter for severity by qty
func (d *DefectSummary) Add(severity Severity, qty int) {
	switch severity {
	case SeverityCritical:
		d.Critical += qty
	case SeverityMajor:
		d.Major += qty
	case SeverityMinor:
		d.Minor += qty
	case SeverityCosmetic:
		d.Cosmetic += qty
	}
	d.Total = d.Critical + d.Major + d.Minor + d.Cosmetic
}

// InspectionDefect is one defect observation on an inspection
type InspectionDefect struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InspectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"inspection_id"`
	DefectCode   string    `gorm:"type:varchar(30);not null;index" json:"defect_code"`
	DefectName   string    `gorm:"type:varchar(100);not null" json:"defect_name"`
	Severity     Severity  `gorm:"type:varchar(10);not null" json:"severity"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Notes        string    `gorm:"type:text" json:"notes"`
	RecordedAt   time.Time `gorm:"not null" json:"recorded_at"`
}

// TableName returns the table name for GORM
func (InspectionDefect) TableName() string {
	return "inspection_defects"
}

// InspectionAttachment references a file stored in object storage
type InspectionAttachment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InspectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"inspection_id"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string    `gorm:"type:varchar(100);not null" json:"content_type"`
	StorageKey   string    `gorm:"type:varchar(500);not null;uniqueIndex" json:"storage_key"`
	FileSize     int64     `gorm:"not null;default:0" json:"file_size"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for GORM
func (InspectionAttachment) TableName() string {
	return "inspection_attachments"
}

// Inspection is a quality check of a product lot
type Inspection struct {
	shared.BaseAggregateRoot
	InspectionNumber string           `gorm:"type:varchar(50);not null;uniqueIndex" json:"inspection_number"`
	Type             InspectionType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status           InspectionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	OverallResult    InspectionResult `gorm:"type:varchar(15);not null;index" json:"overall_result"`

	ProductID       *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductCode     string     `gorm:"type:varchar(50)" json:"product_code"`
	ProductName     string     `gorm:"type:varchar(200);not null" json:"product_name"`
	WorkOrderNumber string     `gorm:"type:varchar(50)" json:"work_order_number"`
	BatchNumber     string     `gorm:"type:varchar(50)" json:"batch_number"`
	LotNumber       string     `gorm:"type:varchar(50)" json:"lot_number"`

	TotalQuantity   int `gorm:"not null;default:0" json:"total_quantity"`
	SampledQuantity int `gorm:"not null;default:0" json:"sampled_quantity"`
	PassedQuantity  int `gorm:"not null;default:0" json:"passed_quantity"`
	FailedQuantity  int `gorm:"not null;default:0" json:"failed_quantity"`

	Defects DefectSummary `gorm:"embedded" json:"defect_summary"`

	InspectorID   *uuid.UUID `gorm:"type:uuid;index" json:"inspector_id,omitempty"`
	InspectorName string     `gorm:"type:varchar(100)" json:"inspector_name"`
	Location      string     `gorm:"type:varchar(100)" json:"location"`
	Workstation   string     `gorm:"type:varchar(100)" json:"workstation"`
	Notes         string     `gorm:"type:text" json:"notes"`

	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ApprovedBy      string     `gorm:"type:varchar(100)" json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"type:varchar(500)" json:"rejection_reason"`

	DefectRecords []InspectionDefect     `gorm:"foreignKey:InspectionID" json:"defects,omitempty"`
	Attachments   []InspectionAttachment `gorm:"foreignKey:InspectionID" json:"attachments,omitempty"`
}

// TableName returns the table name for GORM
func (Inspection) TableName() string {
	return "inspections"
}

// InspectionSubject identifies what is inspected and by whom
type InspectionSubject struct {
	ProductID       *uuid.UUID
	ProductCode     string
	ProductName     string
	WorkOrderNumber string
	BatchNumber     string
	LotNumber       string
	TotalQuantity   int
	SampledQuantity int
	InspectorID     *uuid.UUID
	InspectorName   string
	Location        string
	Workstation     string
	Notes           string
	ScheduledDate   *time.Time
}

func (s InspectionSubject) validate() error {
	if strings.TrimSpace(s.ProductName) == "" {
		return shared.InvalidInput("product_name is required")
	}
	if s.TotalQuantity < 0 || s.SampledQuantity < 0 {
		return shared.InvalidInput("quantities cannot be negative")
	}
	if s.SampledQuantity > s.TotalQuantity {
		return shared.InvalidInput("sampled_quantity cannot exceed total_quantity")
	}
	return nil
}

// NewInspection creates a draft inspection, or a scheduled one when a date is given
func NewInspection(number string, inspectionType InspectionType, subject InspectionSubject) (*Inspection, error) {
	if !inspectionType.IsValid() {
		return nil, shared.InvalidInput("unknown inspection type: " + string(inspectionType))
	}
	if err := subject.validate(); err != nil {
		return nil, err
	}

	i := &Inspection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InspectionNumber:  number,
		Type:              inspectionType,
		Status:            InspectionStatusDraft,
		OverallResult:     ResultPending,
	}
	i.applySubject(subject)
	if subject.ScheduledDate != nil {
		i.Status = InspectionStatusScheduled
	}
	return i, nil
}

func (i *Inspection) applySubject(s InspectionSubject) {
	i.ProductID = s.ProductID
	i.ProductCode = s.ProductCode
	i.ProductName = strings.TrimSpace(s.ProductName)
	i.WorkOrderNumber = s.WorkOrderNumber
	i.BatchNumber = s.BatchNumber
	i.LotNumber = s.LotNumber
	i.TotalQuantity = s.TotalQuantity
	i.SampledQuantity = s.SampledQuantity
	i.InspectorID = s.InspectorID
	i.InspectorName = s.InspectorName
	i.Location = s.Location
	i.Workstation = s.Workstation
	i.Notes = s.Notes
	i.ScheduledDate = s.ScheduledDate
}

// Update replaces the subject while the inspection is still editable
func (i *Inspection) Update(s InspectionSubject) error {
	if !i.Status.IsEditable() {
		return shared.InvalidState(fmt.Sprintf("cannot update inspection in %s status", i.Status))
	}
	if err := s.validate(); err != nil {
		return err
	}
	if s.SampledQuantity < i.PassedQuantity+i.FailedQuantity {
		return shared.InvalidInput("sampled_quantity cannot be less than recorded results")
	}
	i.applySubject(s)
	if i.Status == InspectionStatusDraft && s.ScheduledDate != nil {
		i.Status = InspectionStatusScheduled
	}
	i.Touch()
	return nil
}

func (i *Inspection) transition(to InspectionStatus, actor, reason string) {
	event := shared.NewStatusChangedEvent(aggregateTypeInspection, i.ID, i.InspectionNumber, string(i.Status), string(to))
	event.Actor = actor
	event.Reason = reason
	i.Status = to
	i.Touch()
	i.AddDomainEvent(event)
}

// Start moves a draft or scheduled inspection into progress
func (i *Inspection) Start(inspector string) error {
	if i.Status != InspectionStatusDraft && i.Status != InspectionStatusScheduled {
		return shared.InvalidState(fmt.Sprintf("cannot start inspection in %s status", i.Status))
	}
	now := time.Now()
	i.StartedAt = &now
	if inspector != "" && i.InspectorName == "" {
		i.InspectorName = inspector
	}
	i.transition(InspectionStatusInProgress, inspector, "")
	return nil
}

// RecordDefect adds a defect observation and bumps the severity summary
func (i *Inspection) RecordDefect(code *DefectCode, qty int, notes string) (*InspectionDefect, error) {
	if i.Status != InspectionStatusInProgress {
		return nil, shared.InvalidState("defects can only be recorded while the inspection is in progress")
	}
	if code == nil || !code.IsActive {
		return nil, shared.InvalidInput("defect code is inactive or unknown")
	}
	if qty <= 0 {
		return nil, shared.InvalidInput("quantity must be positive")
	}
	d := InspectionDefect{
		ID:           uuid.New(),
		InspectionID: i.ID,
		DefectCode:   code.Code,
		DefectName:   code.Name,
		Severity:     code.Severity,
		Quantity:     qty,
		Notes:        notes,
		RecordedAt:   time.Now(),
	}
	i.DefectRecords = append(i.DefectRecords, d)
	i.Defects.Add(code.Severity, qty)
	i.Touch()
	return &d, nil
}

// RecordResults stores pass/fail counts and the disposition
func (i *Inspection) RecordResults(passed, failed int, result InspectionResult) error {
	if i.Status != InspectionStatusInProgress {
		return shared.InvalidState("results can only be recorded while the inspection is in progress")
	}
	if passed < 0 || failed < 0 {
		return shared.InvalidInput("quantities cannot be negative")
	}
	if passed+failed > i.SampledQuantity {
		return shared.InvalidInput("passed plus failed cannot exceed sampled_quantity")
	}
	if result != ResultPass && result != ResultFail && result != ResultConditional {
		return shared.InvalidInput("result must be pass, fail or conditional")
	}
	i.PassedQuantity = passed
	i.FailedQuantity = failed
	i.OverallResult = result
	i.Touch()
	return nil
}

// Submit sends a completed inspection for review
func (i *Inspection) Submit(actor string) error {
	if i.Status != InspectionStatusInProgress {
		return shared.InvalidState(fmt.Sprintf("cannot submit inspection in %s status", i.Status))
	}
	if i.OverallResult == ResultPending {
		return shared.InvalidState("record results before submitting")
	}
	now := time.Now()
	i.CompletedAt = &now
	i.transition(InspectionStatusPendingReview, actor, "")
	return nil
}

// Approve accepts a reviewed inspection
func (i *Inspection) Approve(approver string) error {
	if i.Status != InspectionStatusPendingReview {
		return shared.InvalidState(fmt.Sprintf("cannot approve inspection in %s status", i.Status))
	}
	if strings.TrimSpace(approver) == "" {
		return shared.InvalidInput("approver is required")
	}
	now := time.Now()
	i.ApprovedBy = approver
	i.ApprovedAt = &now
	i.transition(InspectionStatusApproved, approver, "")
	return nil
}

// Reject sends back a reviewed inspection with a reason
func (i *Inspection) Reject(reviewer, reason string) error {
	if i.Status != InspectionStatusPendingReview {
		return shared.InvalidState(fmt.Sprintf("cannot reject inspection in %s status", i.Status))
	}
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("rejection reason is required")
	}
	i.RejectionReason = reason
	i.transition(InspectionStatusRejected, reviewer, reason)
	return nil
}

// Cancel abandons an inspection that has not reached a terminal state
func (i *Inspection) Cancel(actor, reason string) error {
	if i.Status.IsTerminal() {
		return shared.InvalidState(fmt.Sprintf("cannot cancel inspection in %s status", i.Status))
	}
	if reason != "" {
		i.Notes = strings.TrimSpace(i.Notes + "\nCancellation reason: " + reason)
	}
	i.transition(InspectionStatusCancelled, actor, reason)
	return nil
}

// CanDelete reports whether the inspection may be removed
func (i *Inspection) CanDelete() error {
	if i.Status != InspectionStatusDraft && i.Status != InspectionStatusCancelled {
		return shared.InvalidState("only draft or cancelled inspections can be deleted")
	}
	return nil
}

// AttachFile registers an uploaded file against the inspection
func (i *Inspection) AttachFile(fileName, contentType, storageKey string, size int64) (*InspectionAttachment, error) {
	if strings.TrimSpace(fileName) == "" || storageKey == "" {
		return nil, shared.InvalidInput("file name and storage key are required")
	}
	a := InspectionAttachment{
		ID:           uuid.New(),
		InspectionID: i.ID,
		FileName:     fileName,
		ContentType:  contentType,
		StorageKey:   storageKey,
		FileSize:     size,
		CreatedAt:    time.Now(),
	}
	i.Attachments = append(i.Attachments, a)
	return &a, nil
}

// DefectRate is defects per sampled unit as a percentage
func (i *Inspection) DefectRate() float64 {
	return shared.Percent(int64(i.Defects.Total), int64(i.SampledQuantity))
}
