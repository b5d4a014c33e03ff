package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	return zap.New(core), &buf
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("ignores values of the wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestWithRequestID(t *testing.T) {
	t.Run("keeps the given id", func(t *testing.T) {
		ctx, id := WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", id)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("generates an id when empty", func(t *testing.T) {
		ctx, id := WithRequestID(context.Background(), "")
		assert.Equal(t, id, GetRequestID(ctx))
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestTeamAndUserIDs(t *testing.T) {
	ctx := context.Background()
	assert.Zero(t, GetTeamID(ctx))
	assert.Zero(t, GetUserID(ctx))
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithTeamID(ctx, 42)
	ctx = WithUserID(ctx, 7)
	assert.Equal(t, int64(42), GetTeamID(ctx))
	assert.Equal(t, int64(7), GetUserID(ctx))
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	base, buf := bufferLogger()

	ctx, _ := WithRequestID(context.Background(), "req-aaa")
	ctx = WithTeamID(ctx, 5)
	ctx = WithUserID(ctx, 9)
	ctx = WithContext(ctx, base)

	L(ctx).Info("member added", zap.String("role", "owner"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-aaa"`)
	assert.Contains(t, out, `"team_id":5`)
	assert.Contains(t, out, `"user_id":9`)
	assert.Contains(t, out, `"role":"owner"`)
	assert.Contains(t, out, `"msg":"member added"`)
}

func TestContextLogger_EmptyContextFields(t *testing.T) {
	base, buf := bufferLogger()

	WithLogger(context.Background(), base).Warn("test")

	out := buf.String()
	assert.Contains(t, out, `"msg":"test"`)
	assert.NotContains(t, out, "request_id")
	assert.NotContains(t, out, "team_id")
	assert.NotContains(t, out, "user_id")
}

func TestContextLogger_FieldsAppearOnce(t *testing.T) {
	base, buf := bufferLogger()

	ctx := WithTeamID(WithContext(context.Background(), base), 3)
	L(ctx).Info("once")

	assert.Equal(t, 1, strings.Count(buf.String(), `"team_id"`))
}

func TestLOr(t *testing.T) {
	t.Run("uses the fallback when ctx has no logger", func(t *testing.T) {
		fallback, buf := bufferLogger()

		ctx := WithTeamID(context.Background(), 8)
		LOr(ctx, fallback).Info("from fallback")

		out := buf.String()
		assert.Contains(t, out, `"msg":"from fallback"`)
		assert.Contains(t, out, `"team_id":8`)
	})

	t.Run("prefers the logger attached to ctx", func(t *testing.T) {
		fallback, fallbackBuf := bufferLogger()
		attached, attachedBuf := bufferLogger()

		ctx := WithContext(context.Background(), attached)
		LOr(ctx, fallback).Info("from ctx")

		assert.Contains(t, attachedBuf.String(), `"msg":"from ctx"`)
		assert.Empty(t, fallbackBuf.String())
	})
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	assert.NotPanics(t, func() {
		cl.Info("test")
		cl.Warn("test")
	})
	require.NotNil(t, cl.enrichedLogger())
}
