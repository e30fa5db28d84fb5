package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts zap to GORM's logger interface so SQL tracing ends
// up in the same structured stream as the rest of the application.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold overrides the duration above which a query is
// reported as slow
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(g *GormLogger) {
		g.slowThreshold = threshold
	}
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound
// is traced as an error. Lookups that translate the miss into a domain
// not-found want it suppressed.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(g *GormLogger) {
		g.skipNotFound = ignore
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	g := &GormLogger{
		log:           log.Named("gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
		skipNotFound:  true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LogMode implements gormlogger.Interface
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (g *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.withRequestID(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

// Warn implements gormlogger.Interface
func (g *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.withRequestID(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

// Error implements gormlogger.Interface
func (g *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.withRequestID(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace implements gormlogger.Interface, logging executed SQL
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && g.level >= gormlogger.Error:
		if g.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		g.withRequestID(ctx).Error("sql error", append(fields, zap.Error(err))...)

	case g.slowThreshold != 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		g.withRequestID(ctx).Warn("slow sql", append(fields, zap.Duration("threshold", g.slowThreshold))...)

	case g.level >= gormlogger.Info:
		g.withRequestID(ctx).Debug("sql trace", fields...)
	}
}

func (g *GormLogger) withRequestID(ctx context.Context) *zap.Logger {
	if requestID := GetRequestID(ctx); requestID != "" {
		return g.log.With(zap.String("request_id", requestID))
	}
	return g.log
}

// MapGormLogLevel translates the configured application log level into
// GORM's query-tracing level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
