package quality

import (
	"regexp"
	"strings"

	"github.com/b3erp/backend/internal/domain/shared"
)

// DefectCategory groups defect codes by where in the process they arise
type DefectCategory string

const (
	DefectCategoryPackaging   DefectCategory = "packaging"
	DefectCategoryMaterial    DefectCategory = "material"
	DefectCategoryInProcess   DefectCategory = "in_process"
	DefectCategoryFinish      DefectCategory = "finish"
	DefectCategoryDimensional DefectCategory = "dimensional"
	DefectCategoryFunctional  DefectCategory = "functional"
)

// IsValid reports whether c is a known category
func (c DefectCategory) IsValid() bool {
	switch c {
	case DefectCategoryPackaging, DefectCategoryMaterial, DefectCategoryInProcess,
		DefectCategoryFinish, DefectCategoryDimensional, DefectCategoryFunctional:
		return true
	}
	return false
}

// Severity ranks the impact of a defect
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityCosmetic Severity = "cosmetic"
)

// AllSeverities lists severities from most to least severe
var AllSeverities = []Severity{SeverityCritical, SeverityMajor, SeverityMinor, SeverityCosmetic}

// IsValid reports whether s is a known severity
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityMajor, SeverityMinor, SeverityCosmetic:
		return true
	}
	return false
}

var defectCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,10}(-[A-Z0-9]{2,10}){0,2}$`)

// DefectCode is a catalogued defect type referenced by inspections
type DefectCode struct {
	shared.BaseAggregateRoot
	Code        string         `gorm:"type:varchar(30);not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    DefectCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Severity    Severity       `gorm:"type:varchar(10);not null;index" json:"severity"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	IsSystem    bool           `gorm:"not null;default:false" json:"is_system"`
}

// TableName returns the table name for GORM
func (DefectCode) TableName() string {
	return "defect_codes"
}

// NewDefectCode creates an active, user-defined defect code
func NewDefectCode(code, name string, category DefectCategory, severity Severity) (*DefectCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !defectCodePattern.MatchString(code) {
		return nil, shared.InvalidInput("defect code must look like ABC-XYZ")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.InvalidInput("defect name is required")
	}
	if !category.IsValid() {
		return nil, shared.InvalidInput("unknown defect category: " + string(category))
	}
	if !severity.IsValid() {
		return nil, shared.InvalidInput("unknown defect severity: " + string(severity))
	}
	return &DefectCode{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		Category:          category,
		Severity:          severity,
		IsActive:          true,
	}, nil
}

// NewSystemDefectCode creates a seeded defect code
func NewSystemDefectCode(code, name, description string, category DefectCategory, severity Severity) (*DefectCode, error) {
	d, err := NewDefectCode(code, name, category, severity)
	if err != nil {
		return nil, err
	}
	d.Description = description
	d.IsSystem = true
	return d, nil
}

// Update changes the editable attributes
func (d *DefectCode) Update(name, description string, category DefectCategory, severity Severity, active bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.InvalidInput("defect name is required")
	}
	if !category.IsValid() || !severity.IsValid() {
		return shared.InvalidInput("invalid category or severity")
	}
	d.Name = strings.TrimSpace(name)
	d.Description = description
	d.Category = category
	d.Severity = severity
	d.IsActive = active
	d.Touch()
	return nil
}

// CanDelete reports whether the code may be removed; seeded codes are only deactivated
func (d *DefectCode) CanDelete() error {
	if d.IsSystem {
		return shared.InvalidState("system defect codes cannot be deleted, deactivate them instead")
	}
	return nil
}
