package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/asset"
	"github.com/b3erp/backend/internal/domain/audit"
	"github.com/b3erp/backend/internal/domain/finance"
	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/domain/project"
	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// Options tunes how NewDatabase opens the connection
type Options struct {
	Logger        *zap.Logger
	LogLevel      string
	SlowThreshold time.Duration
}

// NewDatabase opens a postgres connection, retrying with exponential backoff
// until cfg.ConnectTimeout elapses.
func NewDatabase(cfg *config.DatabaseConfig, opts Options) (*Database, error) {
	var gl gormlogger.Interface = gormlogger.Default.LogMode(gormlogger.Silent)
	if opts.Logger != nil {
		gl = logger.NewGormLogger(opts.Logger, logger.GormConfig{Level: opts.LogLevel, SlowThreshold: opts.SlowThreshold})
	}

	gormCfg := &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.ConnectTimeout
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = 30 * time.Second
	}

	var db *gorm.DB
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		opened, err := open(cfg, gormCfg)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("database not ready",
					zap.Int("attempt", attempt),
					zap.String("host", cfg.Host),
					zap.Error(err),
				)
			}
			return err
		}
		db = opened
		return nil
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

func open(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats reports the connection pool counters
func (d *Database) Stats() (sql.DBStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Stats(), nil
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}

// Models lists every persisted entity, parents before children.
func Models() []interface{} {
	return []interface{}{
		&settings.NumberSeries{},
		&quality.DefectCode{},
		&quality.Inspection{},
		&quality.InspectionDefect{},
		&quality.InspectionAttachment{},
		&accounts.BankAccount{},
		&accounts.BankTransaction{},
		&finance.Invoice{},
		&finance.InvoiceLine{},
		&finance.InvoicePayment{},
		&hr.Employee{},
		&hr.LeaveRequest{},
		&hr.PayrollRun{},
		&hr.PayrollEntry{},
		&asset.Asset{},
		&project.Project{},
		&project.Milestone{},
		&project.Task{},
		&project.TaskDependency{},
		&identity.User{},
		&audit.Log{},
	}
}

// AutoMigrate creates the schema from the entity definitions.
// Production schemas come from the SQL migrations; this serves tests and local sqlite runs.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
