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

func observedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func staticSQL(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := observedGormLogger(zapcore.InfoLevel, gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
	assert.True(t, gl.parameterizedQueries)

	var _ gormlogger.Interface = gl
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	sql := `SELECT * FROM "users" WHERE email = $1`

	t.Run("parameterized drops arguments", func(t *testing.T) {
		gl, _ := observedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		out, params := gl.ParamsFilter(context.Background(), sql, "ana@example.com")
		assert.Equal(t, sql, out)
		assert.Nil(t, params)
	})

	t.Run("arguments kept when disabled", func(t *testing.T) {
		gl, _ := observedGormLogger(zapcore.DebugLevel, gormlogger.Info, WithParameterizedQueries(false))
		_, params := gl.ParamsFilter(context.Background(), sql, "ana@example.com")
		assert.Equal(t, []any{"ana@example.com"}, params)
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := observedGormLogger(zapcore.InfoLevel, gormlogger.Info)
	next, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, next.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	t.Run("info logged at info level", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.InfoLevel, gormlogger.Info)
		gl.Info(context.Background(), "opened %s", "credito")
		require.Len(t, recorded.All(), 1)
		assert.Equal(t, "opened credito", recorded.All()[0].Message)
	})

	t.Run("info suppressed at warn level", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.InfoLevel, gormlogger.Warn)
		gl.Info(context.Background(), "hidden")
		assert.Empty(t, recorded.All())
	})

	t.Run("warn and error", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.InfoLevel, gormlogger.Warn)
		gl.Warn(context.Background(), "careful")
		gl.Error(context.Background(), "broken")
		logs := recorded.All()
		require.Len(t, logs, 2)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, logs[1].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.ErrorLevel, gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), staticSQL(`INSERT INTO "users"`, 0), errors.New("duplicate key"))
		require.Len(t, recorded.All(), 1)
		assert.Equal(t, "SQL Error", recorded.All()[0].Message)
		assert.Equal(t, "duplicate key", recorded.All()[0].ContextMap()["error"])
	})

	t.Run("record not found ignored", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.ErrorLevel, gormlogger.Error, WithIgnoreRecordNotFoundError(true))
		gl.Trace(context.Background(), time.Now(), staticSQL(`SELECT * FROM "users"`, 0), gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("slow query", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.WarnLevel, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), staticSQL(`SELECT * FROM "credits"`, 10), nil)
		require.Len(t, recorded.All(), 1)
		assert.Contains(t, recorded.All()[0].Message, "SLOW SQL")
	})

	t.Run("normal query at debug", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), staticSQL(`SELECT * FROM "clients"`, 5), nil)
		require.Len(t, recorded.All(), 1)
		assert.Equal(t, "SQL Query", recorded.All()[0].Message)
	})

	t.Run("sql not rendered when the level is disabled", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.InfoLevel, gormlogger.Info)
		called := false
		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			called = true
			return `SELECT 1`, 1
		}, nil)
		assert.False(t, called)
		assert.Empty(t, recorded.All())
	})

	t.Run("silent", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), staticSQL(`SELECT 1`, 1), nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("carries context fields", func(t *testing.T) {
		gl, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "test-req-id")
		ctx = context.WithValue(ctx, TeamIDKey, int64(3))

		gl.Trace(ctx, time.Now(), staticSQL(`SELECT * FROM "team_members"`, 2), nil)

		require.Len(t, recorded.All(), 1)
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, "test-req-id", fields["request_id"])
		assert.Equal(t, int64(3), fields["team_id"])
		assert.Equal(t, int64(2), fields["rows"])
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
		{"WARN", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
