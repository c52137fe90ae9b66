package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSlowQuery is the duration after which a query is reported as slow.
const DefaultSlowQuery = 200 * time.Millisecond

// QueryLogger routes GORM output through slog so SQL shows up next to
// request logs with the same request_id and trace_id.
type QueryLogger struct {
	log   *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

// NewQueryLogger returns a GORM logger writing to l at level.
func NewQueryLogger(l *slog.Logger, level logger.LogLevel) *QueryLogger {
	return &QueryLogger{log: l, level: level, slow: DefaultSlowQuery}
}

// LogMode returns a copy of the logger at level.
func (q *QueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *q
	cp.level = level
	return &cp
}

func (q *QueryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	q.emit(ctx, logger.Info, slog.LevelInfo, fmt.Sprintf(msg, args...))
}

func (q *QueryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	q.emit(ctx, logger.Warn, slog.LevelWarn, fmt.Sprintf(msg, args...))
}

func (q *QueryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	q.emit(ctx, logger.Error, slog.LevelError, fmt.Sprintf(msg, args...))
}

func (q *QueryLogger) emit(ctx context.Context, min logger.LogLevel, lvl slog.Level, msg string, attrs ...slog.Attr) {
	if q.level < min {
		return
	}
	q.log.LogAttrs(ctx, lvl, msg, attrs...)
}

// Trace reports failed queries at Error, slow ones at Warn and everything
// else at Info. Missing rows are expected lookups, not failures.
func (q *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= logger.Silent {
		return
	}
	took := time.Since(begin)

	var (
		min logger.LogLevel
		lvl slog.Level
		msg string
	)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		min, lvl, msg = logger.Error, slog.LevelError, "query failed"
	case q.slow > 0 && took > q.slow:
		min, lvl, msg = logger.Warn, slog.LevelWarn, "slow query"
	default:
		min, lvl, msg = logger.Info, slog.LevelInfo, "query"
	}
	if q.level < min {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Int64("took_ms", took.Milliseconds()),
	}
	if lvl == slog.LevelError {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	q.log.LogAttrs(ctx, lvl, msg, attrs...)
}
