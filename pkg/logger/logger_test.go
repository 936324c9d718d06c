package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("默认参数", func(t *testing.T) {
		l, err := New("", "", "", false)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("json格式debug级别", func(t *testing.T) {
		l, err := New("debug", "json", "stderr", true)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("无效级别", func(t *testing.T) {
		_, err := New("verbose", "json", "stdout", false)
		assert.Error(t, err)
	})

	t.Run("无效格式", func(t *testing.T) {
		_, err := New("info", "xml", "stdout", false)
		assert.Error(t, err)
	})
}

func TestContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).With(zap.String("request_id", "abc"))

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["request_id"])
}

func TestFromContext_Fallback(t *testing.T) {
	assert.Same(t, zap.L(), FromContext(context.Background()))
}
