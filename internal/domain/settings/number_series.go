package settings

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
)

// Well-known series codes used by the document-producing contexts
const (
	SeriesInspection = "INSPECTION"
	SeriesInvoice    = "INVOICE"
	SeriesEmployee   = "EMPLOYEE"
	SeriesLeave      = "LEAVE"
	SeriesPayroll    = "PAYROLL"
	SeriesAsset      = "ASSET"
	SeriesProject    = "PROJECT"
)

// ResetPolicy controls when the running counter restarts at 1
type ResetPolicy string

const (
	ResetNever   ResetPolicy = "never"
	ResetYearly  ResetPolicy = "yearly"
	ResetMonthly ResetPolicy = "monthly"
)

// IsValid reports whether p is a known policy
func (p ResetPolicy) IsValid() bool {
	switch p {
	case ResetNever, ResetYearly, ResetMonthly:
		return true
	}
	return false
}

// YearFormat selects a four or two digit year segment
type YearFormat string

const (
	YearFormatFull  YearFormat = "YYYY"
	YearFormatShort YearFormat = "YY"
)

const (
	DefaultSeparator = "-"
	DefaultPadding   = 4
	MaxPadding       = 12
)

var seriesCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,49}$`)

// FormatRule describes how a sequence number is rendered.
// Segments are prefix, year, month, padded sequence and suffix, in that
// order; empty segments are skipped and the rest joined with Separator.
type FormatRule struct {
	Prefix       string     `gorm:"type:varchar(20)" json:"prefix"`
	Suffix       string     `gorm:"type:varchar(20)" json:"suffix"`
	Separator    string     `gorm:"type:varchar(3)" json:"separator"`
	IncludeYear  bool       `gorm:"not null;default:false" json:"include_year"`
	YearFormat   YearFormat `gorm:"type:varchar(4);not null;default:'YYYY'" json:"year_format"`
	IncludeMonth bool       `gorm:"not null;default:false" json:"include_month"`
	Padding      int        `gorm:"not null;default:4" json:"padding"`
}

// Validate checks the rule for values Format cannot honour
func (r FormatRule) Validate() error {
	if r.Padding < 1 || r.Padding > MaxPadding {
		return shared.InvalidInput(fmt.Sprintf("padding must be between 1 and %d", MaxPadding))
	}
	if len(r.Separator) > 3 {
		return shared.InvalidInput("separator cannot exceed 3 characters")
	}
	if len(r.Prefix) > 20 || len(r.Suffix) > 20 {
		return shared.InvalidInput("prefix and suffix cannot exceed 20 characters")
	}
	if r.IncludeYear && r.YearFormat != YearFormatFull && r.YearFormat != YearFormatShort {
		return shared.InvalidInput("year_format must be YYYY or YY")
	}
	return nil
}

// Format renders seq at the given time. Sequences wider than Padding are
// never truncated.
func (r FormatRule) Format(seq int64, at time.Time) string {
	parts := make([]string, 0, 5)
	if r.Prefix != "" {
		parts = append(parts, r.Prefix)
	}
	if r.IncludeYear {
		if r.YearFormat == YearFormatShort {
			parts = append(parts, at.Format("06"))
		} else {
			parts = append(parts, at.Format("2006"))
		}
	}
	if r.IncludeMonth {
		parts = append(parts, at.Format("01"))
	}
	parts = append(parts, fmt.Sprintf("%0*d", r.Padding, seq))
	if r.Suffix != "" {
		parts = append(parts, r.Suffix)
	}
	return strings.Join(parts, r.Separator)
}

// NumberSeries is a named, persistent counter with a format rule
type NumberSeries struct {
	shared.BaseAggregateRoot
	Code          string      `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name          string      `gorm:"type:varchar(100);not null" json:"name"`
	Module        string      `gorm:"type:varchar(30);index" json:"module"`
	FormatRule    `gorm:"embedded"`
	NextNumber    int64       `gorm:"not null;default:1" json:"next_number"`
	Increment     int         `gorm:"not null;default:1" json:"increment"`
	ResetPolicy   ResetPolicy `gorm:"type:varchar(10);not null;default:'never'" json:"reset_policy"`
	CurrentPeriod string      `gorm:"type:varchar(7)" json:"current_period"`
	IsActive      bool        `gorm:"not null" json:"is_active"`
}

// TableName returns the table name for GORM
func (NumberSeries) TableName() string {
	return "number_series"
}

// NewNumberSeries creates an active series starting at 1
func NewNumberSeries(code, name, module string, rule FormatRule, policy ResetPolicy) (*NumberSeries, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !seriesCodePattern.MatchString(code) {
		return nil, shared.InvalidInput("code must be 2-50 upper-case letters, digits or underscores")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.InvalidInput("name is required")
	}
	if policy == "" {
		policy = ResetNever
	}
	if !policy.IsValid() {
		return nil, shared.InvalidInput("reset_policy must be never, yearly or monthly")
	}
	if rule.YearFormat == "" {
		rule.YearFormat = YearFormatFull
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	s := &NumberSeries{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		Module:            module,
		FormatRule:        rule,
		NextNumber:        1,
		Increment:         1,
		ResetPolicy:       policy,
		IsActive:          true,
	}
	s.CurrentPeriod = s.PeriodKey(time.Now())
	return s, nil
}

// PeriodKey returns the reset period containing at, or "" for ResetNever
func (s *NumberSeries) PeriodKey(at time.Time) string {
	switch s.ResetPolicy {
	case ResetYearly:
		return at.Format("2006")
	case ResetMonthly:
		return at.Format("2006-01")
	}
	return ""
}

func (s *NumberSeries) sequenceAt(at time.Time) int64 {
	if s.ResetPolicy != ResetNever && s.PeriodKey(at) != s.CurrentPeriod {
		return 1
	}
	return s.NextNumber
}

// Preview returns the value Consume would produce at the given time
func (s *NumberSeries) Preview(at time.Time) string {
	return s.Format(s.sequenceAt(at), at)
}

// Consume returns the next formatted value and advances the counter.
// Callers must hold a row lock on the series while consuming.
func (s *NumberSeries) Consume(at time.Time) (string, error) {
	if !s.IsActive {
		return "", shared.InvalidState(fmt.Sprintf("number series %s is inactive", s.Code))
	}
	seq := s.sequenceAt(at)
	step := int64(s.Increment)
	if step < 1 {
		step = 1
	}
	s.NextNumber = seq + step
	s.CurrentPeriod = s.PeriodKey(at)
	s.Touch()
	return s.Format(seq, at), nil
}

// Reset restarts the counter at start within the current period
func (s *NumberSeries) Reset(start int64) error {
	if start < 1 {
		return shared.InvalidInput("start must be at least 1")
	}
	from := fmt.Sprintf("%d", s.NextNumber)
	s.NextNumber = start
	s.CurrentPeriod = s.PeriodKey(time.Now())
	s.Touch()

	event := shared.NewStatusChangedEvent("number_series", s.ID, s.Code, from, "reset")
	event.Reason = fmt.Sprintf("counter reset to %d", start)
	s.AddDomainEvent(event)
	return nil
}

// Update replaces the descriptive fields and format rule
func (s *NumberSeries) Update(name, module string, rule FormatRule, policy ResetPolicy, increment int) error {
	if strings.TrimSpace(name) == "" {
		return shared.InvalidInput("name is required")
	}
	if !policy.IsValid() {
		return shared.InvalidInput("reset_policy must be never, yearly or monthly")
	}
	if increment < 1 {
		return shared.InvalidInput("increment must be at least 1")
	}
	if rule.YearFormat == "" {
		rule.YearFormat = YearFormatFull
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	if policy != s.ResetPolicy {
		s.ResetPolicy = policy
		s.CurrentPeriod = s.PeriodKey(time.Now())
	}
	s.Name = strings.TrimSpace(name)
	s.Module = module
	s.FormatRule = rule
	s.Increment = increment
	s.Touch()
	return nil
}

// Activate enables the series
func (s *NumberSeries) Activate() {
	s.IsActive = true
	s.Touch()
}

// Deactivate disables the series; Consume fails while inactive
func (s *NumberSeries) Deactivate() {
	s.IsActive = false
	s.Touch()
}
