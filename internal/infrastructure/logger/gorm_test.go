package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func selectQuery(rows int64) func() (string, int64) {
	return func() (string, int64) {
		return `SELECT * FROM "payments" WHERE flat_id = $1`, rows
	}
}

func TestNewGormLogger_Defaults(t *testing.T) {
	g, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, g.level)
	assert.Equal(t, 200*time.Millisecond, g.slowThreshold)
	assert.True(t, g.skipNotFound)
}

func TestNewGormLogger_Options(t *testing.T) {
	g, _ := newObservedGormLogger(gormlogger.Warn,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, g.slowThreshold)
	assert.False(t, g.skipNotFound)
}

func TestGormLogger_LogMode(t *testing.T) {
	g, _ := newObservedGormLogger(gormlogger.Info)

	clone, ok := g.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Error, clone.level)
	assert.Equal(t, gormlogger.Info, g.level)
}

func TestGormLogger_MessageLevels(t *testing.T) {
	g, recorded := newObservedGormLogger(gormlogger.Info)

	g.Info(context.Background(), "migrating %d tables", 9)
	g.Warn(context.Background(), "connection retry")
	g.Error(context.Background(), "migration failed")

	entries := recorded.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "migrating 9 tables", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestGormLogger_SilentSuppressesEverything(t *testing.T) {
	g, recorded := newObservedGormLogger(gormlogger.Silent)

	g.Info(context.Background(), "ignored")
	g.Trace(context.Background(), time.Now(), selectQuery(1), nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("query errors log with the statement", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Error)

		g.Trace(context.Background(), time.Now(), selectQuery(0), errors.New("connection reset"))

		entries := recorded.FilterMessage("sql error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("record-not-found is suppressed by default", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Error)

		g.Trace(context.Background(), time.Now(), selectQuery(0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("record-not-found logs when suppression is off", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

		g.Trace(context.Background(), time.Now(), selectQuery(0), gormlogger.ErrRecordNotFound)

		assert.Len(t, recorded.FilterMessage("sql error").All(), 1)
	})

	t.Run("slow queries log a warning", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		g.Trace(context.Background(), time.Now().Add(-time.Second), selectQuery(10), nil)

		entries := recorded.FilterMessage("slow sql").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("normal queries trace at debug", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Info)

		g.Trace(context.Background(), time.Now(), selectQuery(5), nil)

		entries := recorded.FilterMessage("sql trace").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})

	t.Run("request id from the context is attached", func(t *testing.T) {
		g, recorded := newObservedGormLogger(gormlogger.Info)
		ctx := ContextWithRequestID(context.Background(), "req-7")

		g.Trace(ctx, time.Now(), selectQuery(5), nil)

		entries := recorded.FilterMessage("sql trace").All()
		require.Len(t, entries, 1)
		fields := entryFields(entries[0])
		require.Contains(t, fields, "request_id")
		assert.Equal(t, "req-7", fields["request_id"].String)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"DEBUG", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MapGormLogLevel(tt.level), "level %q", tt.level)
	}
}

func TestGormLoggerImplementsInterface(t *testing.T) {
	g, _ := newObservedGormLogger(gormlogger.Info)

	var _ gormlogger.Interface = g
}
