package pagetest

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// PGXLogger forwards pgx trace output to zerolog. Wire it into a pool via
// tracelog.TraceLog as the connection tracer.
type PGXLogger struct {
	logger zerolog.Logger
}

func NewPGXLogger(log zerolog.Logger) *PGXLogger {
	return &PGXLogger{logger: log.With().Str("component", "pgx").Logger()}
}

// Log - implements tracelog.Logger.
func (l *PGXLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info()
	}

	event.Fields(data).Msg(msg)
}

var _ tracelog.Logger = (*PGXLogger)(nil)
