package gormpage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger adapts zerolog.Logger to gorm's logger.Interface, translating levels
// and attaching the SQL, row count and elapsed time to trace lines.
type Logger struct {
	logger        zerolog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewLogger builds a child logger scoped to the gorm component. The level
// defaults to Warn, gorm's own default; use LogMode to change it.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{
		logger:        log.With().Str("component", "gorm").Logger(),
		level:         logger.Warn,
		slowThreshold: 200 * time.Millisecond,
	}
}

// LogMode - implements logger.Interface.
func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

// Info - implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.logger.Info().Msgf(msg, args...)
	}
}

// Warn - implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.logger.Warn().Msgf(msg, args...)
	}
}

// Error - implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.logger.Error().Msgf(msg, args...)
	}
}

// Trace - implements logger.Interface. ErrRecordNotFound is not treated as a
// query failure.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow query")
	case l.level >= logger.Info:
		l.logger.Trace().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}

var _ logger.Interface = (*Logger)(nil)
