package quality

import (
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InspectionStatistics aggregates a set of inspections
type InspectionStatistics struct {
	TotalInspections        int                      `json:"total_inspections"`
	Completed               int                      `json:"completed"`
	PassRate                float64                  `json:"pass_rate"`
	FailRate                float64                  `json:"fail_rate"`
	TotalDefects            int                      `json:"total_defects"`
	AvgDefectsPerInspection float64                  `json:"avg_defects_per_inspection"`
	TotalSampled            int                      `json:"total_sampled"`
	TotalPassed             int                      `json:"total_passed"`
	TotalFailed             int                      `json:"total_failed"`
	ByStatus                map[InspectionStatus]int `json:"by_status"`
	ByType                  map[InspectionType]int   `json:"by_type"`
	ByResult                map[InspectionResult]int `json:"by_result"`
	DefectsBySeverity       map[Severity]int         `json:"defects_by_severity"`
}

// ComputeStatistics summarises inspections. Pass and fail rates are taken
// over completed (approved or rejected) inspections only.
func ComputeStatistics(items []Inspection) InspectionStatistics {
	stats := InspectionStatistics{
		TotalInspections:  len(items),
		ByStatus:          make(map[InspectionStatus]int, len(AllInspectionStatuses)),
		ByType:            make(map[InspectionType]int, len(AllInspectionTypes)),
		ByResult:          make(map[InspectionResult]int, len(AllInspectionResults)),
		DefectsBySeverity: make(map[Severity]int, len(AllSeverities)),
	}
	for _, s := range AllInspectionStatuses {
		stats.ByStatus[s] = 0
	}
	for _, t := range AllInspectionTypes {
		stats.ByType[t] = 0
	}
	for _, r := range AllInspectionResults {
		stats.ByResult[r] = 0
	}
	for _, s := range AllSeverities {
		stats.DefectsBySeverity[s] = 0
	}

	var passed, failed int
	for _, i := range items {
		stats.ByStatus[i.Status]++
		stats.ByType[i.Type]++
		stats.ByResult[i.OverallResult]++

		stats.DefectsBySeverity[SeverityCritical] += i.Defects.Critical
		stats.DefectsBySeverity[SeverityMajor] += i.Defects.Major
		stats.DefectsBySeverity[SeverityMinor] += i.Defects.Minor
		stats.DefectsBySeverity[SeverityCosmetic] += i.Defects.Cosmetic
		stats.TotalDefects += i.Defects.Total

		stats.TotalSampled += i.SampledQuantity
		stats.TotalPassed += i.PassedQuantity
		stats.TotalFailed += i.FailedQuantity

		if i.Status == InspectionStatusApproved || i.Status == InspectionStatusRejected {
			stats.Completed++
			switch i.OverallResult {
			case ResultPass:
				passed++
			case ResultFail:
				failed++
			}
		}
	}

	stats.PassRate = shared.Percent(int64(passed), int64(stats.Completed))
	stats.FailRate = shared.Percent(int64(failed), int64(stats.Completed))
	if stats.TotalInspections > 0 {
		stats.AvgDefectsPerInspection, _ = decimal.NewFromInt(int64(stats.TotalDefects)).
			Div(decimal.NewFromInt(int64(stats.TotalInspections))).Round(2).Float64()
	}
	return stats
}
