package hr

import "github.com/shopspring/decimal"

// EmployeeStatistics summarises the workforce
type EmployeeStatistics struct {
	TotalEmployees     int                    `json:"total_employees"`
	Headcount          int                    `json:"headcount"`
	ByStatus           map[EmployeeStatus]int `json:"by_status"`
	ByDepartment       map[string]int         `json:"by_department"`
	ByEmploymentType   map[EmploymentType]int `json:"by_employment_type"`
	MonthlyPayrollCost decimal.Decimal        `json:"monthly_payroll_cost"`
	AverageBasicSalary decimal.Decimal        `json:"average_basic_salary"`
}

// ComputeEmployeeStatistics builds workforce statistics; headcount and cost
// only include current employees.
func ComputeEmployeeStatistics(employees []Employee) EmployeeStatistics {
	stats := EmployeeStatistics{
		TotalEmployees:     len(employees),
		ByStatus:           make(map[EmployeeStatus]int, len(AllEmployeeStatuses)),
		ByDepartment:       make(map[string]int),
		ByEmploymentType:   make(map[EmploymentType]int),
		MonthlyPayrollCost: decimal.Zero,
		AverageBasicSalary: decimal.Zero,
	}
	for _, s := range AllEmployeeStatuses {
		stats.ByStatus[s] = 0
	}
	basic := decimal.Zero
	for _, e := range employees {
		stats.ByStatus[e.Status]++
		if !e.Status.IsEmployed() {
			continue
		}
		stats.Headcount++
		stats.ByDepartment[e.Department]++
		stats.ByEmploymentType[e.EmploymentType]++
		stats.MonthlyPayrollCost = stats.MonthlyPayrollCost.Add(e.Compensation.Gross())
		basic = basic.Add(e.BasicSalary)
	}
	if stats.Headcount > 0 {
		stats.AverageBasicSalary = basic.Div(decimal.NewFromInt(int64(stats.Headcount))).Round(2)
	}
	return stats
}

// LeaveStatistics summarises leave requests
type LeaveStatistics struct {
	TotalRequests int                           `json:"total_requests"`
	ByStatus      map[LeaveStatus]int           `json:"by_status"`
	ByType        map[LeaveType]int             `json:"by_type"`
	ApprovedDays  decimal.Decimal               `json:"approved_days"`
	DaysByType    map[LeaveType]decimal.Decimal `json:"approved_days_by_type"`
	ApprovalRate  float64                       `json:"approval_rate"`
}

// ComputeLeaveStatistics builds leave statistics. The approval rate is
// approved over decided (approved or rejected) requests.
func ComputeLeaveStatistics(requests []LeaveRequest) LeaveStatistics {
	stats := LeaveStatistics{
		TotalRequests: len(requests),
		ByStatus:      make(map[LeaveStatus]int, len(AllLeaveStatuses)),
		ByType:        make(map[LeaveType]int),
		ApprovedDays:  decimal.Zero,
		DaysByType:    make(map[LeaveType]decimal.Decimal),
	}
	for _, s := range AllLeaveStatuses {
		stats.ByStatus[s] = 0
	}
	decided := 0
	for _, r := range requests {
		stats.ByStatus[r.Status]++
		stats.ByType[r.LeaveType]++
		if r.Status == LeaveApproved {
			stats.ApprovedDays = stats.ApprovedDays.Add(r.Days)
			stats.DaysByType[r.LeaveType] = stats.DaysByType[r.LeaveType].Add(r.Days)
		}
		if r.Status == LeaveApproved || r.Status == LeaveRejected {
			decided++
		}
	}
	if decided > 0 {
		stats.ApprovalRate, _ = decimal.NewFromInt(int64(stats.ByStatus[LeaveApproved])).
			Mul(hundred).Div(decimal.NewFromInt(int64(decided))).Round(2).Float64()
	}
	return stats
}

// PayrollStatistics summarises payroll runs
type PayrollStatistics struct {
	TotalRuns    int                   `json:"total_runs"`
	ByStatus     map[PayrollStatus]int `json:"by_status"`
	TotalNetPaid decimal.Decimal       `json:"total_net_paid"`
	TotalGross   decimal.Decimal       `json:"total_gross_paid"`
}

// ComputePayrollStatistics builds payroll statistics; paid totals only count paid runs
func ComputePayrollStatistics(runs []PayrollRun) PayrollStatistics {
	stats := PayrollStatistics{
		TotalRuns:    len(runs),
		ByStatus:     make(map[PayrollStatus]int, len(AllPayrollStatuses)),
		TotalNetPaid: decimal.Zero,
		TotalGross:   decimal.Zero,
	}
	for _, s := range AllPayrollStatuses {
		stats.ByStatus[s] = 0
	}
	for _, r := range runs {
		stats.ByStatus[r.Status]++
		if r.Status == PayrollPaid {
			stats.TotalNetPaid = stats.TotalNetPaid.Add(r.TotalNet)
			stats.TotalGross = stats.TotalGross.Add(r.TotalGross)
		}
	}
	return stats
}
