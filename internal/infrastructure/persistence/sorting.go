package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a list endpoint may order by.
// Client input never reaches ORDER BY unless it names one of them.
type sortColumns map[string]bool

// sortable whitelists columns plus id, created_at and updated_at
func sortable(columns ...string) sortColumns {
	s := sortColumns{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		s[c] = true
	}
	return s
}

// orderBy resolves a requested column and direction. Direction defaults
// to descending; ok is false when the column is not whitelisted.
func (s sortColumns) orderBy(column, direction string) (clause.OrderByColumn, bool) {
	column = strings.TrimSpace(column)
	if !s[column] {
		return clause.OrderByColumn{}, false
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !strings.EqualFold(strings.TrimSpace(direction), "asc"),
	}, true
}

// NumberSeriesSortFields contains allowed sort fields for number series
var NumberSeriesSortFields = sortable("code", "name", "module", "next_number", "is_active")

// DefectCodeSortFields contains allowed sort fields for defect codes
var DefectCodeSortFields = sortable("code", "name", "category", "severity", "is_active")

// InspectionSortFields contains allowed sort fields for inspections
var InspectionSortFields = sortable(
	"inspection_number", "type", "status", "overall_result", "product_name",
	"inspector_name", "scheduled_date", "completed_at", "defects_total",
)

// BankAccountSortFields contains allowed sort fields for bank accounts
var BankAccountSortFields = sortable(
	"account_number", "account_name", "bank_name", "account_type",
	"currency", "current_balance", "last_reconciled_at",
)

// BankTransactionSortFields contains allowed sort fields for statement lines
var BankTransactionSortFields = sortable("transaction_date", "amount", "status", "reference")

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = sortable(
	"invoice_number", "invoice_type", "status", "customer_name",
	"invoice_date", "due_date", "total_amount", "amount_due",
)

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = sortable(
	"employee_code", "first_name", "last_name", "email", "department",
	"designation", "status", "joining_date", "basic_salary",
)

// LeaveRequestSortFields contains allowed sort fields for leave requests
var LeaveRequestSortFields = sortable("request_number", "employee_name", "leave_type", "from_date", "to_date", "status")

// PayrollRunSortFields contains allowed sort fields for payroll runs
var PayrollRunSortFields = sortable("run_number", "period_start", "pay_date", "status", "total_net")

// AssetSortFields contains allowed sort fields for assets
var AssetSortFields = sortable(
	"asset_code", "name", "type", "status", "condition", "purchase_date",
	"purchase_price", "next_maintenance_date", "warranty_end",
)

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = sortable(
	"project_code", "name", "status", "priority", "health",
	"planned_start_date", "planned_end_date", "budget", "progress",
)

// TaskSortFields contains allowed sort fields for project tasks
var TaskSortFields = sortable("task_code", "title", "status", "priority", "planned_end_date", "percent_complete")

// AuditLogSortFields contains allowed sort fields for audit logs. The
// table has no updated_at.
var AuditLogSortFields = sortColumns{"id": true, "created_at": true, "occurred_at": true, "event_type": true}
