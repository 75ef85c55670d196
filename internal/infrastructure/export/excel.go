// Package export renders list results as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/b3erp/backend/internal/application/finance"
	"github.com/b3erp/backend/internal/application/hr"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateFormat = "2006-01-02"

// Column describes one column of a sheet
type Column struct {
	Header string
	Width  float64
}

// Sheet is a single-sheet workbook built row by row
type Sheet struct {
	file *excelize.File
	name string
	row  int
}

// NewSheet creates a workbook whose only sheet is name, with a bold,
// frozen header row
func NewSheet(name string, columns []Column) (*Sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
		if c.Width > 0 {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetColWidth(name, col, col, c.Width); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header row: %w", err)
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Sheet{file: f, name: name, row: 1}, nil
}

// AddRow appends a data row
func (s *Sheet) AddRow(values ...interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.file.SetSheetRow(s.name, cell, &values)
}

// Rows returns the number of data rows written
func (s *Sheet) Rows() int {
	return s.row - 1
}

// WriteTo streams the workbook to w and closes it
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	defer s.file.Close()
	return s.file.WriteTo(w)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

// Invoices writes an invoice register
func Invoices(w io.Writer, list []finance.InvoiceListResponse) error {
	sheet, err := NewSheet("Invoices", []Column{
		{Header: "Invoice Number", Width: 18},
		{Header: "Type", Width: 10},
		{Header: "Status", Width: 16},
		{Header: "Customer", Width: 30},
		{Header: "Invoice Date", Width: 12},
		{Header: "Due Date", Width: 12},
		{Header: "Currency", Width: 9},
		{Header: "Total", Width: 14},
		{Header: "Paid", Width: 14},
		{Header: "Amount Due", Width: 14},
		{Header: "Days Overdue", Width: 12},
	})
	if err != nil {
		return err
	}
	for _, inv := range list {
		if err := sheet.AddRow(
			inv.InvoiceNumber,
			inv.InvoiceType,
			inv.Status,
			inv.CustomerName,
			date(inv.InvoiceDate),
			date(inv.DueDate),
			inv.Currency,
			money(inv.TotalAmount),
			money(inv.PaidAmount),
			money(inv.AmountDue),
			inv.DaysOverdue,
		); err != nil {
			return err
		}
	}
	_, err = sheet.WriteTo(w)
	return err
}

// Employees writes an employee directory with compensation
func Employees(w io.Writer, list []hr.EmployeeResponse) error {
	sheet, err := NewSheet("Employees", []Column{
		{Header: "Employee Code", Width: 14},
		{Header: "Name", Width: 28},
		{Header: "Email", Width: 30},
		{Header: "Phone", Width: 16},
		{Header: "Department", Width: 18},
		{Header: "Designation", Width: 20},
		{Header: "Employment Type", Width: 15},
		{Header: "Status", Width: 12},
		{Header: "Joining Date", Width: 12},
		{Header: "Exit Date", Width: 12},
		{Header: "Gross Salary", Width: 14},
	})
	if err != nil {
		return err
	}
	for _, e := range list {
		if err := sheet.AddRow(
			e.EmployeeCode,
			e.FullName,
			e.Email,
			e.Phone,
			e.Department,
			e.Designation,
			e.EmploymentType,
			e.Status,
			date(e.JoiningDate),
			optionalDate(e.ExitDate),
			money(e.GrossSalary),
		); err != nil {
			return err
		}
	}
	_, err = sheet.WriteTo(w)
	return err
}
