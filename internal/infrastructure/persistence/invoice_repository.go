package persistence

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/finance"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var invoiceQuery = listQuery{
	searchColumns: []string{"invoice_number", "customer_name", "reference", "po_number"},
	conditions: map[string]string{
		"type":        "invoice_type = ?",
		"status":      "status = ?",
		"customer_id": "customer_id = ?",
		"from_date":   "invoice_date >= ?",
		"to_date":     "invoice_date <= ?",
	},
	sortFields:   InvoiceSortFields,
	defaultOrder: "invoice_date DESC, invoice_number DESC",
}

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadInvoice(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date ASC, created_at ASC") })
}

// FindByID loads an invoice with lines and payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := preloadInvoice(r.db.WithContext(ctx)).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}

// FindAll finds invoice headers matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Invoice, error) {
	var list []finance.Invoice
	query := invoiceQuery.apply(r.db.WithContext(ctx).Model(&finance.Invoice{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := invoiceQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&finance.Invoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPastDue returns posted or partially paid invoices due before asOf
func (r *GormInvoiceRepository) FindPastDue(ctx context.Context, asOf time.Time) ([]finance.Invoice, error) {
	var list []finance.Invoice
	if err := preloadInvoice(r.db.WithContext(ctx)).
		Where("status IN ?", []finance.InvoiceStatus{finance.InvoiceStatusPosted, finance.InvoiceStatusPartiallyPaid}).
		Where("due_date < ?", asOf).
		Order("due_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save writes the invoice header and replaces its lines and payments
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, invoice, invoice); err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, len(invoice.Lines))
		for i, l := range invoice.Lines {
			lineIDs[i] = l.ID
		}
		if err := pruneChildren(tx, &finance.InvoiceLine{}, "invoice_id", invoice.ID, lineIDs); err != nil {
			return err
		}
		if err := upsertChildren(tx, &invoice.Lines, len(invoice.Lines)); err != nil {
			return err
		}
		return upsertChildren(tx, &invoice.Payments, len(invoice.Payments))
	})
}

// Delete removes an invoice with its lines and payments
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&finance.InvoiceLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&finance.InvoicePayment{}).Error; err != nil {
			return err
		}
		return deleteResult(tx.Delete(&finance.Invoice{}, "id = ?", id))
	})
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)
