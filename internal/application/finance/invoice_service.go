package finance

import (
	"context"
	"sort"
	"time"

	"github.com/b3erp/backend/internal/domain/finance"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoices, receivable reports and the overdue sweep
type InvoiceService struct {
	repo    finance.InvoiceRepository
	numbers shared.NumberGenerator
	events  shared.EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo finance.InvoiceRepository, numbers shared.NumberGenerator, events shared.EventPublisher, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		repo:    repo,
		numbers: numbers,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// Create creates a draft invoice numbered from the INVOICE series
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	header, lines := req.toDomain()
	invoice, err := finance.NewInvoice("", header, lines)
	if err != nil {
		return nil, err
	}
	number, err := s.numbers.Next(ctx, settings.SeriesInvoice)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = number
	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID retrieves an invoice with lines and payments
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

func (f InvoiceListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.
		With("type", f.Type).
		With("status", f.Status).
		With("customer_id", shared.OptionalID(f.CustomerID))
	if f.FromDate != nil {
		filter = filter.With("from_date", *f.FromDate)
	}
	if f.ToDate != nil {
		filter = filter.With("to_date", *f.ToDate)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
	domainFilter := filter.toDomain()
	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return s.toList(list), total, nil
}

// ListForExport returns every invoice matching filter, ignoring pagination
func (s *InvoiceService) ListForExport(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListResponse, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	return s.toList(list), nil
}

func (s *InvoiceService) toList(list []finance.Invoice) []InvoiceListResponse {
	asOf := s.now()
	out := make([]InvoiceListResponse, len(list))
	for i := range list {
		out[i] = ToInvoiceListResponse(&list[i], asOf)
	}
	return out
}

// Update replaces header and lines of a draft invoice
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	header, lines := req.toDomain()
	return s.mutate(ctx, "update", id, func(inv *finance.Invoice) error {
		return inv.Update(header, lines)
	})
}

// Delete removes a draft invoice
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := invoice.CanDelete(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Submit sends a draft for approval
func (s *InvoiceService) Submit(ctx context.Context, id uuid.UUID, actor string) (*InvoiceResponse, error) {
	return s.mutate(ctx, "submit", id, func(inv *finance.Invoice) error { return inv.Submit(actor) })
}

// Approve approves an invoice pending approval
func (s *InvoiceService) Approve(ctx context.Context, id uuid.UUID, actor string) (*InvoiceResponse, error) {
	return s.mutate(ctx, "approve", id, func(inv *finance.Invoice) error { return inv.Approve(actor) })
}

// Post books an approved invoice
func (s *InvoiceService) Post(ctx context.Context, id uuid.UUID, actor string) (*InvoiceResponse, error) {
	return s.mutate(ctx, "post", id, func(inv *finance.Invoice) error { return inv.Post(actor) })
}

// Cancel cancels an unposted invoice
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID, actor string, req ReasonRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, "cancel", id, func(inv *finance.Invoice) error { return inv.Cancel(actor, req.Reason) })
}

// Void reverses a posted invoice
func (s *InvoiceService) Void(ctx context.Context, id uuid.UUID, actor string, req ReasonRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, "void", id, func(inv *finance.Invoice) error { return inv.Void(actor, req.Reason) })
}

// RecordPayment applies a payment to an open invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, "record_payment", id, func(inv *finance.Invoice) error {
		_, err := inv.RecordPayment(req.Amount, req.PaymentDate, req.Method, req.Reference)
		return err
	})
}

func (s *InvoiceService) mutate(ctx context.Context, op string, id uuid.UUID, fn func(*finance.Invoice) error) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", op, telemetry.SpanAttrAggregateID, id)
	defer func() { telemetry.EndSpan(span, err) }()

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(invoice); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, invoice); err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrReference, invoice.InvoiceNumber,
		telemetry.SpanAttrStatus, string(invoice.Status),
		telemetry.SpanAttrAmount, invoice.TotalAmount.String(),
	)
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Statistics summarises every invoice matching filter
func (s *InvoiceService) Statistics(ctx context.Context, filter InvoiceListFilter) (*finance.InvoiceStatistics, error) {
	list, err := s.repo.FindAll(ctx, filter.toDomain().Unpaged())
	if err != nil {
		return nil, err
	}
	stats := finance.ComputeStatistics(list)
	return &stats, nil
}

// AgingReport ages open sales receivables as of asOf (today when zero)
func (s *InvoiceService) AgingReport(ctx context.Context, asOf time.Time) (*finance.AgingReport, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	filter := shared.Filter{}.With("type", string(finance.InvoiceTypeSales))
	list, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	report := finance.BuildAgingReport(list, asOf)
	return &report, nil
}

// Overdue lists open invoices past their due date, swept or not, oldest first
func (s *InvoiceService) Overdue(ctx context.Context) ([]InvoiceListResponse, error) {
	now := s.now()
	marked, err := s.repo.FindAll(ctx, shared.Filter{}.With("status", string(finance.InvoiceStatusOverdue)))
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.FindPastDue(ctx, now)
	if err != nil {
		return nil, err
	}
	all := append(marked, pending...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].DueDate.Before(all[j].DueDate) })
	return s.toList(all), nil
}

// SweepOverdue marks posted and partially paid invoices past their due
// date as OVERDUE and reports how many changed
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int, error) {
	asOf := s.now()
	list, err := s.repo.FindPastDue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range list {
		invoice := &list[i]
		if !invoice.MarkOverdue(asOf) {
			continue
		}
		if err := s.repo.Save(ctx, invoice); err != nil {
			return marked, err
		}
		if err := shared.PublishPending(ctx, s.events, invoice); err != nil {
			s.logger.Warn("failed to publish overdue event",
				zap.String("invoice_number", invoice.InvoiceNumber), zap.Error(err))
		}
		marked++
	}
	if marked > 0 {
		s.logger.Info("invoices marked overdue", zap.Int("count", marked))
	}
	return marked, nil
}
