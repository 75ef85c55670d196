// Package seed loads the built-in reference data and applies it at startup.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	appquality "github.com/b3erp/backend/internal/application/quality"
	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// DefectCodeEntry is one defect code in the catalog file
type DefectCodeEntry struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
}

// SeriesEntry is one default number series. A nil Separator means "-".
type SeriesEntry struct {
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Module       string  `yaml:"module"`
	Prefix       string  `yaml:"prefix"`
	Suffix       string  `yaml:"suffix"`
	Separator    *string `yaml:"separator"`
	IncludeYear  bool    `yaml:"include_year"`
	YearFormat   string  `yaml:"year_format"`
	IncludeMonth bool    `yaml:"include_month"`
	Padding      int     `yaml:"padding"`
	ResetPolicy  string  `yaml:"reset_policy"`
}

// Catalog is the parsed reference data
type Catalog struct {
	DefectCodes  []DefectCodeEntry `yaml:"defect_codes"`
	NumberSeries []SeriesEntry     `yaml:"number_series"`
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &c, nil
}

// Load returns the embedded catalog. When overridePath is set its
// defect_codes, and number_series if present, replace the embedded ones.
func Load(overridePath string) (*Catalog, error) {
	catalog, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("read seed catalog %s: %w", overridePath, err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if len(override.DefectCodes) > 0 {
		catalog.DefectCodes = override.DefectCodes
	}
	if len(override.NumberSeries) > 0 {
		catalog.NumberSeries = override.NumberSeries
	}
	return catalog, nil
}

// DefectCodeSeeds converts the defect catalog for the quality service.
// Duplicate codes keep their first entry.
func (c *Catalog) DefectCodeSeeds() ([]appquality.DefectCodeSeed, error) {
	seen := make(map[string]bool, len(c.DefectCodes))
	out := make([]appquality.DefectCodeSeed, 0, len(c.DefectCodes))
	for _, e := range c.DefectCodes {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if seen[code] {
			continue
		}
		seen[code] = true
		category := quality.DefectCategory(e.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("defect code %s: unknown category %q", code, e.Category)
		}
		severity := quality.Severity(e.Severity)
		if !severity.IsValid() {
			return nil, fmt.Errorf("defect code %s: unknown severity %q", code, e.Severity)
		}
		out = append(out, appquality.DefectCodeSeed{
			Code:        code,
			Name:        e.Name,
			Description: e.Description,
			Category:    category,
			Severity:    severity,
		})
	}
	return out, nil
}

// Series builds the default number series
func (c *Catalog) Series() ([]*settings.NumberSeries, error) {
	out := make([]*settings.NumberSeries, 0, len(c.NumberSeries))
	for _, e := range c.NumberSeries {
		rule := settings.FormatRule{
			Prefix:       e.Prefix,
			Suffix:       e.Suffix,
			Separator:    settings.DefaultSeparator,
			IncludeYear:  e.IncludeYear,
			YearFormat:   settings.YearFormat(e.YearFormat),
			IncludeMonth: e.IncludeMonth,
			Padding:      e.Padding,
		}
		if e.Separator != nil {
			rule.Separator = *e.Separator
		}
		if rule.Padding == 0 {
			rule.Padding = settings.DefaultPadding
		}
		series, err := settings.NewNumberSeries(e.Code, e.Name, e.Module, rule, settings.ResetPolicy(e.ResetPolicy))
		if err != nil {
			return nil, fmt.Errorf("number series %s: %w", e.Code, err)
		}
		out = append(out, series)
	}
	return out, nil
}

// DefectCodeSeeder inserts missing defect codes
type DefectCodeSeeder interface {
	SeedDefectCodes(ctx context.Context) (appquality.SeedResult, error)
}

// SeriesEnsurer creates missing number series
type SeriesEnsurer interface {
	EnsureSeries(ctx context.Context, defaults []*settings.NumberSeries) (int, error)
}

// Runner applies the catalog according to the seed configuration
type Runner struct {
	cfg     config.SeedConfig
	catalog *Catalog
	defects DefectCodeSeeder
	series  SeriesEnsurer
	logger  *zap.Logger
}

// NewRunner creates a Runner
func NewRunner(cfg config.SeedConfig, catalog *Catalog, defects DefectCodeSeeder, series SeriesEnsurer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, catalog: catalog, defects: defects, series: series, logger: logger.Named("seed")}
}

// Run seeds number series first then defect codes. Both are
// insert-if-absent, so running again changes nothing.
func (r *Runner) Run(ctx context.Context) error {
	if r.cfg.NumberSeries {
		defaults, err := r.catalog.Series()
		if err != nil {
			return err
		}
		created, err := r.series.EnsureSeries(ctx, defaults)
		if err != nil {
			return fmt.Errorf("seed number series: %w", err)
		}
		r.logger.Info("number series seeded", zap.Int("created", created), zap.Int("catalog", len(defaults)))
	}
	if r.cfg.DefectCodes {
		if _, err := r.defects.SeedDefectCodes(ctx); err != nil {
			return fmt.Errorf("seed defect codes: %w", err)
		}
	}
	return nil
}
