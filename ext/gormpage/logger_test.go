package gormpage

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Test_Logger_Trace(t *testing.T) {
	queryFn := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name     string
		level    gormlogger.LogLevel
		begin    time.Time
		err      error
		wantMark string
	}{
		{
			name:     "query error logs at error level",
			level:    gormlogger.Warn,
			begin:    time.Now(),
			err:      errors.New("boom"),
			wantMark: `"level":"error"`,
		},
		{
			name:     "record not found is not an error",
			level:    gormlogger.Warn,
			begin:    time.Now(),
			err:      gorm.ErrRecordNotFound,
			wantMark: "",
		},
		{
			name:     "slow query logs at warn level",
			level:    gormlogger.Warn,
			begin:    time.Now().Add(-time.Second),
			err:      nil,
			wantMark: `"level":"warn"`,
		},
		{
			name:     "silent level logs nothing",
			level:    gormlogger.Silent,
			begin:    time.Now(),
			err:      errors.New("boom"),
			wantMark: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(zerolog.New(&buf)).LogMode(tt.level)

			l.Trace(context.Background(), tt.begin, queryFn, tt.err)

			if tt.wantMark == "" {
				require.Empty(t, buf.String())
				return
			}
			require.Contains(t, buf.String(), tt.wantMark)
			require.Contains(t, buf.String(), `"sql":"SELECT 1"`)
		})
	}
}

func Test_Logger_LogMode(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(zerolog.New(&buf))

	info := base.LogMode(gormlogger.Info)
	info.Info(context.Background(), "hello %s", "world")
	require.Contains(t, buf.String(), "hello world")

	buf.Reset()
	base.Info(context.Background(), "dropped")
	require.Empty(t, buf.String())
}
