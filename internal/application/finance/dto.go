package finance

import (
	"time"

	"github.com/b3erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one line of a create or update request
type InvoiceLineRequest struct {
	ItemCode        string          `json:"item_code" binding:"max=50"`
	Description     string          `json:"description" binding:"required,max=500"`
	Quantity        decimal.Decimal `json:"quantity" binding:"gt=0"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"gte=0"`
	DiscountPercent decimal.Decimal `json:"discount_percent" binding:"gte=0,lte=100"`
	TaxRate         decimal.Decimal `json:"tax_rate" binding:"gte=0"`
}

// InvoiceRequest holds the editable invoice fields
type InvoiceRequest struct {
	InvoiceType  string               `json:"invoice_type" binding:"required,oneof=SALES PURCHASE CREDIT_NOTE DEBIT_NOTE"`
	CustomerID   *uuid.UUID           `json:"customer_id"`
	CustomerName string               `json:"customer_name" binding:"required,max=200"`
	Reference    string               `json:"reference" binding:"max=100"`
	PONumber     string               `json:"po_number" binding:"max=50"`
	InvoiceDate  time.Time            `json:"invoice_date"`
	DueDate      *time.Time           `json:"due_date"`
	PaymentTerms string               `json:"payment_terms" binding:"omitempty,oneof=NET_15 NET_30 NET_45 NET_60 NET_90 DUE_ON_RECEIPT CUSTOM"`
	Currency     string               `json:"currency" binding:"omitempty,currency"`
	Notes        string               `json:"notes"`
	Lines        []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r InvoiceRequest) toDomain() (finance.InvoiceHeader, []finance.LineInput) {
	header := finance.InvoiceHeader{
		InvoiceType:  finance.InvoiceType(r.InvoiceType),
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Reference:    r.Reference,
		PONumber:     r.PONumber,
		InvoiceDate:  r.InvoiceDate,
		DueDate:      r.DueDate,
		PaymentTerms: finance.PaymentTerms(r.PaymentTerms),
		Currency:     r.Currency,
		Notes:        r.Notes,
	}
	lines := make([]finance.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = finance.LineInput{
			ItemCode:        l.ItemCode,
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxRate:         l.TaxRate,
		}
	}
	return header, lines
}

// CreateInvoiceRequest creates a draft invoice
type CreateInvoiceRequest struct {
	InvoiceRequest
}

// UpdateInvoiceRequest replaces a draft invoice
type UpdateInvoiceRequest struct {
	InvoiceRequest
}

// ReasonRequest carries the reason of a cancel or void
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RecordPaymentRequest applies a payment
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method" binding:"max=30"`
	Reference   string          `json:"reference" binding:"max=100"`
}

// InvoiceListFilter holds list query parameters
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	Type       string     `form:"type" binding:"omitempty,oneof=SALES PURCHASE CREDIT_NOTE DEBIT_NOTE"`
	Status     string     `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL APPROVED POSTED PARTIALLY_PAID PAID OVERDUE CANCELLED VOID"`
	CustomerID string     `form:"customer_id" binding:"omitempty,uuid"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceResponse represents a full invoice
type InvoiceResponse struct {
	ID            uuid.UUID                `json:"id"`
	InvoiceNumber string                   `json:"invoice_number"`
	InvoiceType   string                   `json:"invoice_type"`
	Status        string                   `json:"status"`
	CustomerID    *uuid.UUID               `json:"customer_id,omitempty"`
	CustomerName  string                   `json:"customer_name"`
	Reference     string                   `json:"reference"`
	PONumber      string                   `json:"po_number"`
	InvoiceDate   time.Time                `json:"invoice_date"`
	DueDate       time.Time                `json:"due_date"`
	PaymentTerms  string                   `json:"payment_terms"`
	Currency      string                   `json:"currency"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	TotalDiscount decimal.Decimal          `json:"total_discount"`
	TotalTax      decimal.Decimal          `json:"total_tax"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	PaidAmount    decimal.Decimal          `json:"paid_amount"`
	AmountDue     decimal.Decimal          `json:"amount_due"`
	Notes         string                   `json:"notes"`
	ApprovedBy    string                   `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time               `json:"approved_at,omitempty"`
	PostedAt      *time.Time               `json:"posted_at,omitempty"`
	PaidAt        *time.Time               `json:"paid_at,omitempty"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	VoidedAt      *time.Time               `json:"voided_at,omitempty"`
	Lines         []finance.InvoiceLine    `json:"lines"`
	Payments      []finance.InvoicePayment `json:"payments"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	Version       int                      `json:"version"`
}

// InvoiceListResponse is a list item for invoices
type InvoiceListResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceType   string          `json:"invoice_type"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	Currency      string          `json:"currency"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	DaysOverdue   int             `json:"days_overdue"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	lines := inv.Lines
	if lines == nil {
		lines = []finance.InvoiceLine{}
	}
	payments := inv.Payments
	if payments == nil {
		payments = []finance.InvoicePayment{}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceType:   string(inv.InvoiceType),
		Status:        string(inv.Status),
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Reference:     inv.Reference,
		PONumber:      inv.PONumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		PaymentTerms:  string(inv.PaymentTerms),
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TotalDiscount: inv.TotalDiscount,
		TotalTax:      inv.TotalTax,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		AmountDue:     inv.AmountDue,
		Notes:         inv.Notes,
		ApprovedBy:    inv.ApprovedBy,
		ApprovedAt:    inv.ApprovedAt,
		PostedAt:      inv.PostedAt,
		PaidAt:        inv.PaidAt,
		CancelledAt:   inv.CancelledAt,
		VoidedAt:      inv.VoidedAt,
		Lines:         lines,
		Payments:      payments,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Version:       inv.Version,
	}
}

// ToInvoiceListResponse converts a domain invoice to a list item
func ToInvoiceListResponse(inv *finance.Invoice, asOf time.Time) InvoiceListResponse {
	days := 0
	if inv.Status.IsOpen() && inv.IsPastDue(asOf) {
		days = inv.DaysOverdue(asOf)
	}
	return InvoiceListResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceType:   string(inv.InvoiceType),
		Status:        string(inv.Status),
		CustomerName:  inv.CustomerName,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Currency:      inv.Currency,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		AmountDue:     inv.AmountDue,
		DaysOverdue:   days,
	}
}
