package finance

import (
	"context"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/finance"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindPastDue(ctx context.Context, asOf time.Time) ([]finance.Invoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context, seriesCode string) (string, error) {
	args := m.Called(ctx, seriesCode)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestService() (*InvoiceService, *MockInvoiceRepository, *MockNumberGenerator, *MockEventPublisher) {
	repo := new(MockInvoiceRepository)
	numbers := new(MockNumberGenerator)
	events := new(MockEventPublisher)
	svc := NewInvoiceService(repo, numbers, events, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, numbers, events
}

func newPostedInvoice(t *testing.T, customer string, total int64, invoiceDate time.Time) *finance.Invoice {
	t.Helper()
	inv, err := finance.NewInvoice("INV-"+customer, finance.InvoiceHeader{
		InvoiceType:  finance.InvoiceTypeSales,
		CustomerName: customer,
		InvoiceDate:  invoiceDate,
		PaymentTerms: finance.TermsNet30,
	}, []finance.LineInput{{Description: "Goods", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(total)}})
	require.NoError(t, err)
	require.NoError(t, inv.Submit("clerk"))
	require.NoError(t, inv.Approve("controller"))
	require.NoError(t, inv.Post("controller"))
	inv.ClearDomainEvents()
	return inv
}

func sampleRequest() InvoiceRequest {
	return InvoiceRequest{
		InvoiceType:  "SALES",
		CustomerName: "Acme Tools",
		InvoiceDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PaymentTerms: "NET_45",
		Lines: []InvoiceLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25), DiscountPercent: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(18)},
			{Description: "Setup fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
}

func TestInvoiceService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo, numbers, _ := newTestService()

	numbers.On("Next", mock.Anything, "INVOICE").Return("INV-2024-0001", nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Invoice")).Return(nil)

	resp, err := svc.Create(ctx, CreateInvoiceRequest{InvoiceRequest: sampleRequest()})
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", resp.InvoiceNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(350)))
	assert.True(t, resp.TotalDiscount.Equal(decimal.NewFromInt(25)))
	assert.True(t, resp.TotalTax.Equal(decimal.RequireFromString("40.5")))
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("365.5")))
	assert.Equal(t, time.Date(2024, 2, 24, 0, 0, 0, 0, time.UTC), resp.DueDate)
	assert.Len(t, resp.Lines, 2)

	t.Run("no lines", func(t *testing.T) {
		svc, _, numbers, _ := newTestService()
		req := sampleRequest()
		req.Lines = nil
		_, err := svc.Create(ctx, CreateInvoiceRequest{InvoiceRequest: req})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("discount over 100 consumes no number", func(t *testing.T) {
		svc, repo, numbers, _ := newTestService()
		req := sampleRequest()
		req.Lines[0].DiscountPercent = decimal.NewFromInt(120)
		_, err := svc.Create(ctx, CreateInvoiceRequest{InvoiceRequest: req})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_LifecycleAndPayments(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, events := newTestService()

	header, lines := sampleRequest().toDomain()
	invoice, err := finance.NewInvoice("INV-2024-0001", header, lines)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	repo.On("Save", mock.Anything, invoice).Return(nil)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err = svc.Post(ctx, invoice.ID, "controller")
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = svc.Submit(ctx, invoice.ID, "clerk")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, invoice.ID, "controller")
	require.NoError(t, err)
	resp, err := svc.Post(ctx, invoice.ID, "controller")
	require.NoError(t, err)
	assert.Equal(t, "POSTED", resp.Status)

	_, err = svc.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{Amount: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	resp, err = svc.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{Amount: decimal.NewFromInt(100), Method: "bank"})
	require.NoError(t, err)
	assert.Equal(t, "PARTIALLY_PAID", resp.Status)
	assert.True(t, resp.AmountDue.Equal(decimal.RequireFromString("265.5")))

	resp, err = svc.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{Amount: decimal.RequireFromString("265.5")})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	assert.Len(t, resp.Payments, 2)

	published := 0
	for _, call := range events.Calls {
		published += len(call.Arguments.Get(1).([]shared.DomainEvent))
	}
	assert.Equal(t, 5, published)

	assert.ErrorIs(t, svc.Delete(ctx, invoice.ID), shared.ErrInvalidState)
}

func TestInvoiceService_VoidRequiresReason(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, events := newTestService()
	invoice := newPostedInvoice(t, "Globex", 500, fixedNow)

	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	repo.On("Save", mock.Anything, invoice).Return(nil)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Void(ctx, invoice.ID, "controller", ReasonRequest{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	resp, err := svc.Void(ctx, invoice.ID, "controller", ReasonRequest{Reason: "duplicate"})
	require.NoError(t, err)
	assert.Equal(t, "VOID", resp.Status)
	assert.True(t, resp.AmountDue.IsZero())
	assert.Contains(t, resp.Notes, "Void reason: duplicate")
}

func TestInvoiceService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	matches := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 20 &&
			f.Filters["status"] == "POSTED" && f.Filters["from_date"] == from
	})
	overdue := newPostedInvoice(t, "Acme", 100, fixedNow.AddDate(0, -3, 0))
	repo.On("FindAll", mock.Anything, matches).Return([]finance.Invoice{*overdue}, nil)
	repo.On("Count", mock.Anything, matches).Return(int64(21), nil)

	list, total, err := svc.List(ctx, InvoiceListFilter{Status: "POSTED", FromDate: &from, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, list, 1)
	assert.Equal(t, 62, list[0].DaysOverdue)
}

func TestInvoiceService_AgingReport(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()

	recent := newPostedInvoice(t, "Acme", 100, fixedNow.AddDate(0, 0, -10))
	old := newPostedInvoice(t, "Globex", 300, fixedNow.AddDate(0, 0, -160))
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["type"] == "SALES" && f.PageSize == 0
	})).Return([]finance.Invoice{*recent, *old}, nil)

	report, err := svc.AgingReport(ctx, time.Time{})
	require.NoError(t, err)
	assert.True(t, report.TotalReceivables.Equal(decimal.NewFromInt(400)))
	assert.True(t, report.TotalOverdue.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, report.Buckets[0].Count)
	assert.Equal(t, 1, report.Buckets[3].Count)
	require.Len(t, report.ByCustomer, 2)
	assert.Equal(t, "Globex", report.ByCustomer[0].CustomerName)
}

func TestInvoiceService_SweepOverdue(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	svc, repo, _, events := newTestService()
	svc.logger = zap.New(core)

	late := newPostedInvoice(t, "Acme", 100, fixedNow.AddDate(0, -2, 0))
	notYet := newPostedInvoice(t, "Globex", 100, fixedNow.AddDate(0, 0, -5))
	repo.On("FindPastDue", mock.Anything, fixedNow).Return([]finance.Invoice{*late, *notYet}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(inv *finance.Invoice) bool { return inv.ID == late.ID })).Return(nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(evts []shared.DomainEvent) bool {
		return len(evts) == 1 && evts[0].EventType() == "invoice.OVERDUE"
	})).Return(nil)

	marked, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)
	repo.AssertNumberOfCalls(t, "Save", 1)
	assert.Equal(t, 1, logs.FilterMessage("invoices marked overdue").Len())
}

func TestInvoiceService_Statistics(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()

	posted := newPostedInvoice(t, "Acme", 100, fixedNow)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool { return f.PageSize == 0 })).
		Return([]finance.Invoice{*posted}, nil)

	stats, err := svc.Statistics(ctx, InvoiceListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalInvoices)
	assert.True(t, stats.PendingAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, stats.ByStatus[finance.InvoiceStatusPosted])
	assert.Equal(t, 0, stats.ByStatus[finance.InvoiceStatusVoid])
}
