package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypeInvoice = "invoice"

// InvoiceType distinguishes receivable from payable documents
type InvoiceType string

const (
	InvoiceTypeSales      InvoiceType = "SALES"
	InvoiceTypePurchase   InvoiceType = "PURCHASE"
	InvoiceTypeCreditNote InvoiceType = "CREDIT_NOTE"
	InvoiceTypeDebitNote  InvoiceType = "DEBIT_NOTE"
)

// AllInvoiceTypes lists every invoice type
var AllInvoiceTypes = []InvoiceType{InvoiceTypeSales, InvoiceTypePurchase, InvoiceTypeCreditNote, InvoiceTypeDebitNote}

// IsValid reports whether t is a known type
func (t InvoiceType) IsValid() bool {
	for _, v := range AllInvoiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft           InvoiceStatus = "DRAFT"
	InvoiceStatusPendingApproval InvoiceStatus = "PENDING_APPROVAL"
	InvoiceStatusApproved        InvoiceStatus = "APPROVED"
	InvoiceStatusPosted          InvoiceStatus = "POSTED"
	InvoiceStatusPartiallyPaid   InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid            InvoiceStatus = "PAID"
	InvoiceStatusOverdue         InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled       InvoiceStatus = "CANCELLED"
	InvoiceStatusVoid            InvoiceStatus = "VOID"
)

// AllInvoiceStatuses lists every status, used to zero-fill statistics
var AllInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft, InvoiceStatusPendingApproval, InvoiceStatusApproved,
	InvoiceStatusPosted, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
	InvoiceStatusOverdue, InvoiceStatusCancelled, InvoiceStatusVoid,
}

// IsOpen reports whether the invoice still carries a receivable or payable balance
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceStatusPosted || s == InvoiceStatusPartiallyPaid || s == InvoiceStatusOverdue
}

// PaymentTerms determines the due date from the invoice date
type PaymentTerms string

const (
	TermsNet15        PaymentTerms = "NET_15"
	TermsNet30        PaymentTerms = "NET_30"
	TermsNet45        PaymentTerms = "NET_45"
	TermsNet60        PaymentTerms = "NET_60"
	TermsNet90        PaymentTerms = "NET_90"
	TermsDueOnReceipt PaymentTerms = "DUE_ON_RECEIPT"
	TermsCustom       PaymentTerms = "CUSTOM"
)

// Days returns the credit period in days
func (p PaymentTerms) Days() (int, bool) {
	switch p {
	case TermsNet15:
		return 15, true
	case TermsNet30:
		return 30, true
	case TermsNet45:
		return 45, true
	case TermsNet60:
		return 60, true
	case TermsNet90:
		return 90, true
	case TermsDueOnReceipt, TermsCustom:
		return 0, true
	}
	return 0, false
}

var hundred = decimal.NewFromInt(100)

// InvoiceLine is one billed item
type InvoiceLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	LineNumber      int             `gorm:"not null" json:"line_number"`
	ItemCode        string          `gorm:"type:varchar(50)" json:"item_code"`
	Description     string          `gorm:"type:varchar(500);not null" json:"description"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"line_total"`
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// LineInput carries the caller-supplied values of a line
type LineInput struct {
	ItemCode        string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
}

// NewInvoiceLine validates input and computes tax and total.
// net = qty * price * (1 - discount/100), tax = net * rate/100, total = net + tax.
func NewInvoiceLine(invoiceID uuid.UUID, lineNumber int, in LineInput) (InvoiceLine, error) {
	if strings.TrimSpace(in.Description) == "" {
		return InvoiceLine{}, shared.InvalidInput(fmt.Sprintf("line %d: description is required", lineNumber))
	}
	if !in.Quantity.IsPositive() {
		return InvoiceLine{}, shared.InvalidInput(fmt.Sprintf("line %d: quantity must be positive", lineNumber))
	}
	if in.UnitPrice.IsNegative() {
		return InvoiceLine{}, shared.InvalidInput(fmt.Sprintf("line %d: unit price cannot be negative", lineNumber))
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return InvoiceLine{}, shared.InvalidInput(fmt.Sprintf("line %d: discount must be between 0 and 100", lineNumber))
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return InvoiceLine{}, shared.InvalidInput(fmt.Sprintf("line %d: tax rate must be between 0 and 100", lineNumber))
	}

	net := in.Quantity.Mul(in.UnitPrice).Mul(hundred.Sub(in.DiscountPercent)).Div(hundred)
	tax := net.Mul(in.TaxRate).Div(hundred)
	return InvoiceLine{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		LineNumber:      lineNumber,
		ItemCode:        in.ItemCode,
		Description:     strings.TrimSpace(in.Description),
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		DiscountPercent: in.DiscountPercent,
		TaxRate:         in.TaxRate,
		TaxAmount:       shared.RoundMoney(tax),
		LineTotal:       shared.RoundMoney(net.Add(tax)),
	}, nil
}

// Gross is quantity times unit price before discount
func (l InvoiceLine) Gross() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Discount is the discount amount of the line
func (l InvoiceLine) Discount() decimal.Decimal {
	return l.Gross().Mul(l.DiscountPercent).Div(hundred)
}

// InvoicePayment records money received or paid against an invoice
type InvoicePayment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Method      string          `gorm:"type:varchar(30)" json:"method"`
	Reference   string          `gorm:"type:varchar(100)" json:"reference"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for GORM
func (InvoicePayment) TableName() string {
	return "invoice_payments"
}

// Invoice is a sales or purchase document with lines and payments
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"invoice_number"`
	InvoiceType   InvoiceType   `gorm:"type:varchar(20);not null;index" json:"invoice_type"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CustomerID    *uuid.UUID    `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string        `gorm:"type:varchar(200);not null" json:"customer_name"`
	Reference     string        `gorm:"type:varchar(100)" json:"reference"`
	PONumber      string        `gorm:"column:po_number;type:varchar(50)" json:"po_number"`
	InvoiceDate   time.Time     `gorm:"not null;index" json:"invoice_date"`
	DueDate       time.Time     `gorm:"not null;index" json:"due_date"`
	PaymentTerms  PaymentTerms  `gorm:"type:varchar(20);not null" json:"payment_terms"`
	Currency      string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"subtotal"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_discount"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_tax"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0;index" json:"amount_due"`

	Notes       string     `gorm:"type:text" json:"notes"`
	ApprovedBy  string     `gorm:"type:varchar(100)" json:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	VoidedAt    *time.Time `json:"voided_at,omitempty"`

	Lines    []InvoiceLine    `gorm:"foreignKey:InvoiceID" json:"lines"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceHeader holds the caller-supplied header fields
type InvoiceHeader struct {
	InvoiceType  InvoiceType
	CustomerID   *uuid.UUID
	CustomerName string
	Reference    string
	PONumber     string
	InvoiceDate  time.Time
	DueDate      *time.Time
	PaymentTerms PaymentTerms
	Currency     string
	Notes        string
}

func (h *InvoiceHeader) normalise() error {
	if !h.InvoiceType.IsValid() {
		return shared.InvalidInput("unknown invoice type: " + string(h.InvoiceType))
	}
	if strings.TrimSpace(h.CustomerName) == "" {
		return shared.InvalidInput("customer_name is required")
	}
	if h.PaymentTerms == "" {
		h.PaymentTerms = TermsNet30
	}
	if _, ok := h.PaymentTerms.Days(); !ok {
		return shared.InvalidInput("unknown payment terms: " + string(h.PaymentTerms))
	}
	if h.PaymentTerms == TermsCustom && h.DueDate == nil {
		return shared.InvalidInput("due_date is required for CUSTOM payment terms")
	}
	if h.InvoiceDate.IsZero() {
		h.InvoiceDate = time.Now()
	}
	h.InvoiceDate = truncateDay(h.InvoiceDate)
	if h.DueDate != nil && truncateDay(*h.DueDate).Before(h.InvoiceDate) {
		return shared.InvalidInput("due_date cannot be before invoice_date")
	}
	h.Currency = strings.ToUpper(strings.TrimSpace(h.Currency))
	if h.Currency == "" {
		h.Currency = "USD"
	}
	return nil
}

// dueDate is the explicit due date or invoice date plus the terms
func (h InvoiceHeader) dueDate() time.Time {
	if h.DueDate != nil {
		return truncateDay(*h.DueDate)
	}
	days, _ := h.PaymentTerms.Days()
	return h.InvoiceDate.AddDate(0, 0, days)
}

// NewInvoice creates a draft invoice and computes its totals. The number
// may be left empty and assigned from the series once the invoice is valid.
func NewInvoice(number string, header InvoiceHeader, lines []LineInput) (*Invoice, error) {
	if err := header.normalise(); err != nil {
		return nil, err
	}
	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     number,
		Status:            InvoiceStatusDraft,
		PaidAmount:        decimal.Zero,
	}
	inv.applyHeader(header)
	if err := inv.setLines(lines); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv *Invoice) applyHeader(h InvoiceHeader) {
	inv.InvoiceType = h.InvoiceType
	inv.CustomerID = h.CustomerID
	inv.CustomerName = strings.TrimSpace(h.CustomerName)
	inv.Reference = h.Reference
	inv.PONumber = h.PONumber
	inv.InvoiceDate = h.InvoiceDate
	inv.DueDate = h.dueDate()
	inv.PaymentTerms = h.PaymentTerms
	inv.Currency = h.Currency
	inv.Notes = h.Notes
}

func (inv *Invoice) setLines(inputs []LineInput) error {
	if len(inputs) == 0 {
		return shared.InvalidInput("invoice needs at least one line")
	}
	lines := make([]InvoiceLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := NewInvoiceLine(inv.ID, i+1, in)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	inv.Lines = lines
	inv.Recalculate()
	return nil
}

// Recalculate derives the header totals from the lines
func (inv *Invoice) Recalculate() {
	subtotal, discount, tax := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range inv.Lines {
		subtotal = subtotal.Add(l.Gross())
		discount = discount.Add(l.Discount())
		tax = tax.Add(l.TaxAmount)
	}
	inv.Subtotal = shared.RoundMoney(subtotal)
	inv.TotalDiscount = shared.RoundMoney(discount)
	inv.TotalTax = shared.RoundMoney(tax)
	inv.TotalAmount = shared.RoundMoney(subtotal.Sub(discount).Add(tax))
	inv.AmountDue = inv.TotalAmount.Sub(inv.PaidAmount)
}

// Update replaces header and lines; only drafts are editable
func (inv *Invoice) Update(header InvoiceHeader, lines []LineInput) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.InvalidState("only draft invoices can be updated")
	}
	if err := header.normalise(); err != nil {
		return err
	}
	inv.applyHeader(header)
	if err := inv.setLines(lines); err != nil {
		return err
	}
	inv.Touch()
	return nil
}

func (inv *Invoice) transition(to InvoiceStatus, actor, reason string) {
	event := shared.NewStatusChangedEvent(aggregateTypeInvoice, inv.ID, inv.InvoiceNumber, string(inv.Status), string(to))
	event.Actor = actor
	event.Reason = reason
	inv.Status = to
	inv.Touch()
	inv.AddDomainEvent(event)
}

func (inv *Invoice) require(action string, allowed ...InvoiceStatus) error {
	for _, s := range allowed {
		if inv.Status == s {
			return nil
		}
	}
	return shared.InvalidState(fmt.Sprintf("cannot %s invoice in %s status", action, inv.Status))
}

// Submit sends a draft for approval
func (inv *Invoice) Submit(actor string) error {
	if err := inv.require("submit", InvoiceStatusDraft); err != nil {
		return err
	}
	inv.transition(InvoiceStatusPendingApproval, actor, "")
	return nil
}

// Approve accepts an invoice pending approval
func (inv *Invoice) Approve(approver string) error {
	if err := inv.require("approve", InvoiceStatusPendingApproval); err != nil {
		return err
	}
	now := time.Now()
	inv.ApprovedBy = approver
	inv.ApprovedAt = &now
	inv.transition(InvoiceStatusApproved, approver, "")
	return nil
}

// Post books an approved invoice, opening its balance
func (inv *Invoice) Post(actor string) error {
	if err := inv.require("post", InvoiceStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	inv.PostedAt = &now
	inv.transition(InvoiceStatusPosted, actor, "")
	return nil
}

// Cancel abandons an invoice before it is posted
func (inv *Invoice) Cancel(actor, reason string) error {
	if err := inv.require("cancel", InvoiceStatusDraft, InvoiceStatusPendingApproval, InvoiceStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	inv.CancelledAt = &now
	if reason != "" {
		inv.Notes = strings.TrimSpace(inv.Notes + "\nCancellation reason: " + reason)
	}
	inv.transition(InvoiceStatusCancelled, actor, reason)
	return nil
}

// Void reverses a posted invoice that has not received payments
func (inv *Invoice) Void(actor, reason string) error {
	if err := inv.require("void", InvoiceStatusPosted); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("void reason is required")
	}
	now := time.Now()
	inv.VoidedAt = &now
	inv.Notes = strings.TrimSpace(inv.Notes + "\nVoid reason: " + reason)
	inv.AmountDue = decimal.Zero
	inv.transition(InvoiceStatusVoid, actor, reason)
	return nil
}

// RecordPayment applies a payment to an open invoice
func (inv *Invoice) RecordPayment(amount decimal.Decimal, date time.Time, method, reference string) (*InvoicePayment, error) {
	if !inv.Status.IsOpen() {
		return nil, shared.InvalidState(fmt.Sprintf("cannot record payment for invoice in %s status", inv.Status))
	}
	amount = shared.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, shared.InvalidInput("payment amount must be positive")
	}
	if amount.GreaterThan(inv.AmountDue) {
		return nil, shared.InvalidInput(fmt.Sprintf("payment %s exceeds amount due %s", amount.StringFixed(2), inv.AmountDue.StringFixed(2)))
	}
	if date.IsZero() {
		date = time.Now()
	}
	p := InvoicePayment{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Amount:      amount,
		PaymentDate: date,
		Method:      method,
		Reference:   reference,
		CreatedAt:   time.Now(),
	}
	inv.Payments = append(inv.Payments, p)
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.AmountDue = inv.TotalAmount.Sub(inv.PaidAmount)

	if inv.AmountDue.IsZero() {
		inv.PaidAt = &date
		inv.transition(InvoiceStatusPaid, "", "")
	} else if inv.Status != InvoiceStatusPartiallyPaid {
		inv.transition(InvoiceStatusPartiallyPaid, "", "")
	} else {
		inv.Touch()
	}
	return &p, nil
}

// IsPastDue reports whether the due date is before asOf and money is still owed
func (inv *Invoice) IsPastDue(asOf time.Time) bool {
	return inv.AmountDue.IsPositive() && inv.DueDate.Before(truncateDay(asOf))
}

// MarkOverdue flags a posted or partially paid invoice past its due date.
// It reports whether the status changed.
func (inv *Invoice) MarkOverdue(asOf time.Time) bool {
	if inv.Status != InvoiceStatusPosted && inv.Status != InvoiceStatusPartiallyPaid {
		return false
	}
	if !inv.IsPastDue(asOf) {
		return false
	}
	inv.transition(InvoiceStatusOverdue, "system", "")
	return true
}

// CanDelete reports whether the invoice may be removed
func (inv *Invoice) CanDelete() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.InvalidState("only draft invoices can be deleted")
	}
	return nil
}

// DaysOverdue is the number of whole days past the due date, negative when not yet due
func (inv *Invoice) DaysOverdue(asOf time.Time) int {
	return int(truncateDay(asOf).Sub(truncateDay(inv.DueDate)).Hours() / 24)
}

// truncateDay returns midnight UTC of the day containing t
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
