package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatistics summarises invoices. Amount figures cover SALES
// invoices only; the status and type breakdowns cover every invoice.
type InvoiceStatistics struct {
	TotalInvoices int                   `json:"total_invoices"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	PendingAmount decimal.Decimal       `json:"pending_amount"`
	OverdueAmount decimal.Decimal       `json:"overdue_amount"`
	ByStatus      map[InvoiceStatus]int `json:"by_status"`
	ByType        map[InvoiceType]int   `json:"by_type"`
}

// ComputeStatistics builds InvoiceStatistics
func ComputeStatistics(invoices []Invoice) InvoiceStatistics {
	stats := InvoiceStatistics{
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		OverdueAmount: decimal.Zero,
		ByStatus:      make(map[InvoiceStatus]int, len(AllInvoiceStatuses)),
		ByType:        make(map[InvoiceType]int, len(AllInvoiceTypes)),
	}
	for _, s := range AllInvoiceStatuses {
		stats.ByStatus[s] = 0
	}
	for _, t := range AllInvoiceTypes {
		stats.ByType[t] = 0
	}
	for _, inv := range invoices {
		stats.ByStatus[inv.Status]++
		stats.ByType[inv.InvoiceType]++
		if inv.InvoiceType != InvoiceTypeSales {
			continue
		}
		stats.TotalInvoices++
		if inv.Status == InvoiceStatusCancelled || inv.Status == InvoiceStatusVoid {
			continue
		}
		stats.TotalAmount = stats.TotalAmount.Add(inv.TotalAmount)
		stats.PaidAmount = stats.PaidAmount.Add(inv.PaidAmount)
		switch inv.Status {
		case InvoiceStatusPosted, InvoiceStatusPartiallyPaid:
			stats.PendingAmount = stats.PendingAmount.Add(inv.AmountDue)
		case InvoiceStatusOverdue:
			stats.OverdueAmount = stats.OverdueAmount.Add(inv.AmountDue)
		}
	}
	return stats
}

// AgingBucket is one column of the aging report
type AgingBucket struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CustomerAging is one row of the aging report
type CustomerAging struct {
	CustomerName string          `json:"customer_name"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days_1_30"`
	Days31To60   decimal.Decimal `json:"days_31_60"`
	Days61To90   decimal.Decimal `json:"days_61_90"`
	Over90       decimal.Decimal `json:"over_90"`
	Total        decimal.Decimal `json:"total"`
}

// AgingReport groups open receivables by days past due
type AgingReport struct {
	AsOf             time.Time       `json:"as_of"`
	Buckets          []AgingBucket   `json:"buckets"`
	ByCustomer       []CustomerAging `json:"by_customer"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalOverdue     decimal.Decimal `json:"total_overdue"`
}

// Aging bucket labels in report order
const (
	BucketCurrent = "Current (0-30)"
	Bucket31To60  = "31-60 days"
	Bucket61To90  = "61-90 days"
	BucketOver90  = "Over 90 days"
)

// BuildAgingReport ages open SALES invoices with money due as of asOf.
// The summary buckets treat up to 30 days past due as current; the
// customer rows split not-yet-due from 1-30 days.
func BuildAgingReport(invoices []Invoice, asOf time.Time) AgingReport {
	asOf = truncateDay(asOf)
	buckets := []AgingBucket{
		{Label: BucketCurrent, Amount: decimal.Zero},
		{Label: Bucket31To60, Amount: decimal.Zero},
		{Label: Bucket61To90, Amount: decimal.Zero},
		{Label: BucketOver90, Amount: decimal.Zero},
	}
	report := AgingReport{
		AsOf:             asOf,
		TotalReceivables: decimal.Zero,
		TotalOverdue:     decimal.Zero,
	}
	byCustomer := make(map[string]*CustomerAging)

	for _, inv := range invoices {
		if inv.InvoiceType != InvoiceTypeSales || !inv.Status.IsOpen() || !inv.AmountDue.IsPositive() {
			continue
		}
		due := inv.AmountDue
		days := inv.DaysOverdue(asOf)

		idx := 0
		switch {
		case days > 90:
			idx = 3
		case days > 60:
			idx = 2
		case days > 30:
			idx = 1
		}
		buckets[idx].Count++
		buckets[idx].Amount = buckets[idx].Amount.Add(due)

		row, ok := byCustomer[inv.CustomerName]
		if !ok {
			row = &CustomerAging{
				CustomerName: inv.CustomerName,
				Current:      decimal.Zero,
				Days1To30:    decimal.Zero,
				Days31To60:   decimal.Zero,
				Days61To90:   decimal.Zero,
				Over90:       decimal.Zero,
				Total:        decimal.Zero,
			}
			byCustomer[inv.CustomerName] = row
		}
		switch {
		case days <= 0:
			row.Current = row.Current.Add(due)
		case days <= 30:
			row.Days1To30 = row.Days1To30.Add(due)
		case days <= 60:
			row.Days31To60 = row.Days31To60.Add(due)
		case days <= 90:
			row.Days61To90 = row.Days61To90.Add(due)
		default:
			row.Over90 = row.Over90.Add(due)
		}
		row.Total = row.Total.Add(due)

		report.TotalReceivables = report.TotalReceivables.Add(due)
		if days > 0 {
			report.TotalOverdue = report.TotalOverdue.Add(due)
		}
	}

	report.Buckets = buckets
	report.ByCustomer = make([]CustomerAging, 0, len(byCustomer))
	for _, row := range byCustomer {
		report.ByCustomer = append(report.ByCustomer, *row)
	}
	sort.Slice(report.ByCustomer, func(i, j int) bool {
		a, b := report.ByCustomer[i], report.ByCustomer[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.CustomerName < b.CustomerName
	})
	return report
}
