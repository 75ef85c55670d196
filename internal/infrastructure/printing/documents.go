package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/application/finance"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// ContentTypePDF is the MIME type of rendered documents
const ContentTypePDF = "application/pdf"

// pageFooter numbers the pages of multi-page documents
const pageFooter = `<div style="font-size:8px;width:100%;text-align:center;color:#666">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// Documents renders business documents as HTML and, given a renderer, PDF
type Documents struct {
	company   string
	paper     PaperSize
	templates *template.Template
	renderer  PDFRenderer
}

// NewDocuments parses the embedded templates. renderer may be nil, in which
// case only HTML output is available.
func NewDocuments(company string, paper PaperSize, renderer PDFRenderer) (*Documents, error) {
	if !paper.IsValid() {
		paper = PaperSizeA4
	}
	tmpl, err := template.New("documents").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse print templates: %w", err)
	}
	return &Documents{company: company, paper: paper, templates: tmpl, renderer: renderer}, nil
}

// PDFEnabled reports whether a renderer is configured
func (d *Documents) PDFEnabled() bool {
	return d.renderer != nil
}

type invoiceView struct {
	Company string
	Invoice finance.InvoiceResponse
}

// InvoiceHTML writes the printable invoice
func (d *Documents) InvoiceHTML(w io.Writer, inv finance.InvoiceResponse) error {
	return d.templates.ExecuteTemplate(w, "invoice.html", invoiceView{Company: d.company, Invoice: inv})
}

// InvoicePDF renders the printable invoice to PDF
func (d *Documents) InvoicePDF(ctx context.Context, inv finance.InvoiceResponse) ([]byte, error) {
	if d.renderer == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "PDF rendering is not configured", nil)
	}
	var buf bytes.Buffer
	if err := d.InvoiceHTML(&buf, inv); err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return d.renderer.Render(ctx, &RenderRequest{
		HTML:       buf.String(),
		Title:      inv.InvoiceNumber,
		PaperSize:  d.paper,
		Margins:    DefaultMargins(),
		FooterHTML: pageFooter,
	})
}

// Close releases the renderer
func (d *Documents) Close() error {
	if d.renderer == nil {
		return nil
	}
	return d.renderer.Close()
}

var (
	titleCaser = cases.Title(language.English)
	numbers    = message.NewPrinter(language.English)
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money": formatMoney,
		"qty":   formatQuantity,
		"date":  formatDate,
		"title": func(s string) string {
			return titleCaser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
		},
	}
}

// formatMoney groups thousands and keeps two decimals
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := decimal.NewFromString(whole)
	if err != nil {
		return sign + fixed
	}
	return sign + numbers.Sprintf("%d", n.IntPart()) + "." + frac
}

// formatQuantity drops trailing zeros
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}
