package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	financeapp "github.com/b3erp/backend/internal/application/finance"
	"github.com/b3erp/backend/internal/infrastructure/export"
	"github.com/b3erp/backend/internal/infrastructure/printing"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoices, receivable reports and the workbook export
type InvoiceHandler struct {
	BaseHandler
	service *financeapp.InvoiceService
	docs    *printing.Documents
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service *financeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// WithDocuments enables the print and PDF endpoints
func (h *InvoiceHandler) WithDocuments(docs *printing.Documents) *InvoiceHandler {
	h.docs = docs
	return h
}

// agingQuery is the query string of the aging report
type agingQuery struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02"`
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Tags         finance
// @Produce      json
// @Param        search query string false "Search by number, customer or reference"
// @Param        type query string false "Invoice type" Enums(SALES, PURCHASE, CREDIT_NOTE, DEBIT_NOTE)
// @Param        status query string false "Invoice status"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        from_date query string false "Invoice date from (YYYY-MM-DD)"
// @Param        to_date query string false "Invoice date to (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]financeapp.InvoiceListResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter financeapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createInvoice
// @Summary      Create a draft invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateInvoiceRequest true "Invoice"
// @Success      201 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req financeapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Statistics godoc
// @ID           invoiceStatistics
// @Summary      Summarise invoices by status and type
// @Tags         finance
// @Produce      json
// @Param        type query string false "Invoice type"
// @Param        from_date query string false "Invoice date from (YYYY-MM-DD)"
// @Param        to_date query string false "Invoice date to (YYYY-MM-DD)"
// @Success      200 {object} Envelope[finance.InvoiceStatistics]
// @Security     BearerAuth
// @Router       /finance/invoices/statistics [get]
func (h *InvoiceHandler) Statistics(c *gin.Context) {
	var filter financeapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// AgingReport godoc
// @ID           invoiceAgingReport
// @Summary      Age open sales receivables
// @Tags         finance
// @Produce      json
// @Param        as_of query string false "Report date (YYYY-MM-DD), today when omitted"
// @Success      200 {object} Envelope[finance.AgingReport]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/aging-report [get]
func (h *InvoiceHandler) AgingReport(c *gin.Context) {
	var q agingQuery
	if !h.bindQuery(c, &q) {
		return
	}
	var asOf time.Time
	if q.AsOf != nil {
		asOf = *q.AsOf
	}

	report, err := h.service.AgingReport(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Overdue godoc
// @ID           listOverdueInvoices
// @Summary      List open invoices past their due date
// @Tags         finance
// @Produce      json
// @Success      200 {object} Envelope[[]financeapp.InvoiceListResponse]
// @Security     BearerAuth
// @Router       /finance/invoices/overdue [get]
func (h *InvoiceHandler) Overdue(c *gin.Context) {
	list, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// Export godoc
// @ID           exportInvoices
// @Summary      Export matching invoices as an Excel workbook
// @Tags         finance
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type query string false "Invoice type"
// @Param        status query string false "Invoice status"
// @Success      200 {file} binary
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	var filter financeapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, err := h.service.ListForExport(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	name := "invoices-" + time.Now().Format("20060102") + ".xlsx"
	h.Workbook(c, name, export.ContentType, func(w io.Writer) error {
		return export.Invoices(w, list)
	})
}

// Print godoc
// @ID           printInvoice
// @Summary      Printable HTML view of an invoice
// @Tags         finance
// @Produce      html
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {string} string "HTML document"
// @Failure      404 {object} ErrorEnvelope
// @Failure      503 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/print [get]
func (h *InvoiceHandler) Print(c *gin.Context) {
	invoice, ok := h.printable(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.docs.InvoiceHTML(&buf, *invoice); err != nil {
		h.HandleError(c, err)
		return
	}
	// the document carries its own <style> block
	c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// PDF godoc
// @ID           invoicePDF
// @Summary      Download an invoice as PDF
// @Tags         finance
// @Produce      application/pdf
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorEnvelope
// @Failure      503 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	if h.docs != nil && !h.docs.PDFEnabled() {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "PDF rendering is not enabled")
		return
	}
	invoice, ok := h.printable(c)
	if !ok {
		return
	}
	pdf, err := h.docs.InvoicePDF(c.Request.Context(), *invoice)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+invoice.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, printing.ContentTypePDF, pdf)
}

func (h *InvoiceHandler) printable(c *gin.Context) (*financeapp.InvoiceResponse, bool) {
	if h.docs == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Document printing is not enabled")
		return nil, false
	}
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return nil, false
	}
	invoice, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return invoice, true
}

// GetByID godoc
// @ID           getInvoice
// @Summary      Get an invoice with lines and payments
// @Tags         finance
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Update godoc
// @ID           updateInvoice
// @Summary      Replace a draft invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body financeapp.UpdateInvoiceRequest true "Invoice"
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}
	var req financeapp.UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete a draft invoice
// @Tags         finance
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Submit godoc
// @ID           submitInvoice
// @Summary      Submit a draft invoice for approval
// @Tags         finance
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/submit [post]
func (h *InvoiceHandler) Submit(c *gin.Context) {
	h.transition(c, h.service.Submit)
}

// Approve godoc
// @ID           approveInvoice
// @Summary      Approve a pending invoice
// @Tags         finance
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/approve [post]
func (h *InvoiceHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Post godoc
// @ID           postInvoice
// @Summary      Post an approved invoice to the ledger
// @Tags         finance
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/post [post]
func (h *InvoiceHandler) Post(c *gin.Context) {
	h.transition(c, h.service.Post)
}

// Cancel godoc
// @ID           cancelInvoice
// @Summary      Cancel an unposted invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body financeapp.ReasonRequest false "Reason"
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transitionWithReason(c, h.service.Cancel)
}

// Void godoc
// @ID           voidInvoice
// @Summary      Void a posted invoice without payments
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body financeapp.ReasonRequest true "Reason"
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	h.transitionWithReason(c, h.service.Void)
}

// RecordPayment godoc
// @ID           recordInvoicePayment
// @Summary      Apply a payment to an open invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body financeapp.RecordPaymentRequest true "Payment"
// @Success      200 {object} Envelope[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}
	var req financeapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

type invoiceAction func(ctx context.Context, id uuid.UUID, actor string) (*financeapp.InvoiceResponse, error)

type invoiceReasonAction func(ctx context.Context, id uuid.UUID, actor string, req financeapp.ReasonRequest) (*financeapp.InvoiceResponse, error)

func (h *InvoiceHandler) transition(c *gin.Context, action invoiceAction) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := action(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

func (h *InvoiceHandler) transitionWithReason(c *gin.Context, action invoiceReasonAction) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}
	var req financeapp.ReasonRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	invoice, err := action(c.Request.Context(), id, actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RegisterRoutes mounts the invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/finance/invoices")
	invoices.GET("", h.List)
	invoices.POST("", h.Create)
	invoices.GET("/statistics", h.Statistics)
	invoices.GET("/aging-report", h.AgingReport)
	invoices.GET("/overdue", h.Overdue)
	invoices.GET("/export", h.Export)
	invoices.GET("/:id", h.GetByID)
	invoices.GET("/:id/print", h.Print)
	invoices.GET("/:id/pdf", h.PDF)
	invoices.PUT("/:id", h.Update)
	invoices.DELETE("/:id", h.Delete)
	invoices.POST("/:id/submit", h.Submit)
	invoices.POST("/:id/approve", h.Approve)
	invoices.POST("/:id/post", h.Post)
	invoices.POST("/:id/cancel", h.Cancel)
	invoices.POST("/:id/void", h.Void)
	invoices.POST("/:id/payments", h.RecordPayment)
}
