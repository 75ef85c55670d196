package logger

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// DefaultSlowQuery is the threshold used when none is configured
const DefaultSlowQuery = 200 * time.Millisecond

// GormConfig configures the zap-backed GORM logger
type GormConfig struct {
	// Level is one of silent, error, warn, info or debug
	Level         string
	SlowThreshold time.Duration
}

// GormLogger writes GORM output to zap. Failed statements are logged at
// error level, statements slower than the threshold at warn, and every
// statement at debug when the level is info.
type GormLogger struct {
	log   *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// NewGormLogger creates a GORM logger named "gorm" under log
func NewGormLogger(log *zap.Logger, cfg GormConfig) *GormLogger {
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = DefaultSlowQuery
	}
	return &GormLogger{log: log.Named("gorm"), level: MapGormLogLevel(cfg.Level), slow: slow}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var msg string
	lvl := gormlogger.Info
	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound):
		msg, lvl = "SQL Error", gormlogger.Error
	case elapsed > l.slow:
		msg, lvl = "Slow SQL", gormlogger.Warn
	default:
		msg = "SQL Query"
	}
	if l.level < lvl {
		return
	}

	sql, rows := fc()
	fields := append(statementFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
		zap.String("source", utils.FileWithLineNum()),
	)
	switch lvl {
	case gormlogger.Error:
		l.log.Error(msg, append(fields, zap.Error(err))...)
	case gormlogger.Warn:
		l.log.Warn(msg, append(fields, zap.Duration("threshold", l.slow))...)
	default:
		l.log.Debug(msg, fields...)
	}
}

// statementFields correlates a statement with its request and trace
func statementFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if user := GetUsername(ctx); user != "" {
		fields = append(fields, zap.String("username", user))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	return fields
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// MapGormLogLevel maps a configured level name to GORM's levels
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
