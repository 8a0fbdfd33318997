package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// DBLogger routes GORM statements through zap. Statements issued under a
// request context carry that request's IDs and trace fields.
type DBLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

// DBLoggerOption configures a DBLogger
type DBLoggerOption func(*DBLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow
func WithSlowThreshold(d time.Duration) DBLoggerOption {
	return func(l *DBLogger) { l.slowThreshold = d }
}

// WithNotFoundLogged makes record-not-found errors visible in the log
func WithNotFoundLogged() DBLoggerOption {
	return func(l *DBLogger) { l.skipNotFound = false }
}

// NewDBLogger creates a GORM logger backed by zap
func NewDBLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...DBLoggerOption) *DBLogger {
	l := &DBLogger{
		base:          base.Named("db"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
		skipNotFound:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *DBLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *DBLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.scoped(ctx).Info(fmt.Sprintf(msg, data...))
	}
}

func (l *DBLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.scoped(ctx).Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *DBLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.scoped(ctx).Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement
func (l *DBLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	stmt, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", stmt),
	}
	log := l.scoped(ctx)

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if l.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		log.Error("statement failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		log.Warn("slow statement", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		log.Debug("statement", fields...)
	}
}

func (l *DBLogger) scoped(ctx context.Context) *zap.Logger {
	log := l.base
	if rid := GetRequestID(ctx); rid != "" {
		log = log.With(zap.String("request_id", rid))
	}
	if fields := traceFields(ctx); len(fields) > 0 {
		log = log.With(fields...)
	}
	return log
}

// DBLogLevel maps a textual level to GORM's log level, defaulting to warn
func DBLogLevel(level string) gormlogger.LogLevel {
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
