package settings

import (
	"time"

	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/google/uuid"
)

// FormatRuleRequest is the wire form of a number format rule
type FormatRuleRequest struct {
	Prefix       string  `json:"prefix" binding:"max=20"`
	Suffix       string  `json:"suffix" binding:"max=20"`
	Separator    *string `json:"separator" binding:"omitempty,max=3"`
	IncludeYear  bool    `json:"include_year"`
	YearFormat   string  `json:"year_format" binding:"omitempty,oneof=YYYY YY"`
	IncludeMonth bool    `json:"include_month"`
	Padding      int     `json:"padding" binding:"omitempty,min=1,max=12"`
}

// toDomain fills the defaults: "-" separator and padding 4
func (r FormatRuleRequest) toDomain() settings.FormatRule {
	rule := settings.FormatRule{
		Prefix:       r.Prefix,
		Suffix:       r.Suffix,
		Separator:    settings.DefaultSeparator,
		IncludeYear:  r.IncludeYear,
		YearFormat:   settings.YearFormat(r.YearFormat),
		IncludeMonth: r.IncludeMonth,
		Padding:      r.Padding,
	}
	if r.Separator != nil {
		rule.Separator = *r.Separator
	}
	if rule.Padding == 0 {
		rule.Padding = settings.DefaultPadding
	}
	if rule.YearFormat == "" {
		rule.YearFormat = settings.YearFormatFull
	}
	return rule
}

// CreateNumberSeriesRequest creates a series
type CreateNumberSeriesRequest struct {
	Code   string `json:"code" binding:"required,min=2,max=50"`
	Name   string `json:"name" binding:"required,max=100"`
	Module string `json:"module" binding:"max=30"`
	FormatRuleRequest
	StartNumber int64  `json:"start_number" binding:"omitempty,min=1"`
	Increment   int    `json:"increment" binding:"omitempty,min=1"`
	ResetPolicy string `json:"reset_policy" binding:"omitempty,oneof=never yearly monthly"`
}

// UpdateNumberSeriesRequest replaces the editable fields of a series
type UpdateNumberSeriesRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Module string `json:"module" binding:"max=30"`
	FormatRuleRequest
	Increment   int    `json:"increment" binding:"omitempty,min=1"`
	ResetPolicy string `json:"reset_policy" binding:"omitempty,oneof=never yearly monthly"`
	IsActive    *bool  `json:"is_active"`
}

// ResetNumberSeriesRequest restarts the counter
type ResetNumberSeriesRequest struct {
	Start int64 `json:"start" binding:"omitempty,min=1"`
}

// FormatPreviewRequest formats an ad-hoc rule
type FormatPreviewRequest struct {
	FormatRuleRequest
	Sequence int64      `json:"sequence" binding:"omitempty,min=1"`
	At       *time.Time `json:"at"`
}

// NumberSeriesListFilter holds list query parameters
type NumberSeriesListFilter struct {
	Search   string `form:"search"`
	Module   string `form:"module"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// NumberSeriesResponse represents a series in API responses
type NumberSeriesResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Module        string    `json:"module"`
	Prefix        string    `json:"prefix"`
	Suffix        string    `json:"suffix"`
	Separator     string    `json:"separator"`
	IncludeYear   bool      `json:"include_year"`
	YearFormat    string    `json:"year_format"`
	IncludeMonth  bool      `json:"include_month"`
	Padding       int       `json:"padding"`
	NextNumber    int64     `json:"next_number"`
	Increment     int       `json:"increment"`
	ResetPolicy   string    `json:"reset_policy"`
	CurrentPeriod string    `json:"current_period"`
	IsActive      bool      `json:"is_active"`
	Preview       string    `json:"preview"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// SeriesValueResponse carries a generated or previewed number
type SeriesValueResponse struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// ToNumberSeriesResponse converts a domain series
func ToNumberSeriesResponse(s *settings.NumberSeries, at time.Time) NumberSeriesResponse {
	return NumberSeriesResponse{
		ID:            s.ID,
		Code:          s.Code,
		Name:          s.Name,
		Module:        s.Module,
		Prefix:        s.Prefix,
		Suffix:        s.Suffix,
		Separator:     s.Separator,
		IncludeYear:   s.IncludeYear,
		YearFormat:    string(s.YearFormat),
		IncludeMonth:  s.IncludeMonth,
		Padding:       s.Padding,
		NextNumber:    s.NextNumber,
		Increment:     s.Increment,
		ResetPolicy:   string(s.ResetPolicy),
		CurrentPeriod: s.CurrentPeriod,
		IsActive:      s.IsActive,
		Preview:       s.Preview(at),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
	}
}
