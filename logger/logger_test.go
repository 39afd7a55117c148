package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expected)
		assert.Equal(t, expected, FromContext(ctx))
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		l := FromContext(t.Context())
		require.NotNil(t, l)
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, "not a logger")
		require.NotNil(t, FromContext(ctx))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write JSON with key values", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})
		l.With("component", "storage").Debug("entry expired", "key", "prefs")

		out := buf.String()
		assert.Contains(t, out, `"msg":"entry expired"`)
		assert.Contains(t, out, `"key":"prefs"`)
		assert.Contains(t, out, `"component":"storage"`)
	})

	t.Run("Should drop messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})
		l.Info("hidden")
		assert.Empty(t, buf.String())
		l.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("Should map unknown levels to info", func(t *testing.T) {
		assert.Equal(t, InfoLevel.ToCharmlogLevel(), LogLevel("verbose").ToCharmlogLevel())
	})
}
