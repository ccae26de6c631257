//nolint:err113 // Test file uses errors.New() for creating test errors
package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateError_NilError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, AnnotateError(nil, "key", "value"))
}

func TestAnnotateError_KeepsMessageAndChain(t *testing.T) {
	t.Parallel()

	baseErr := errors.New("position out of range")
	annotated := AnnotateError(baseErr, "position", 7, "size", 3)

	require.Error(t, annotated)
	assert.Equal(t, "position out of range", annotated.Error())
	require.ErrorIs(t, annotated, baseErr)
	assert.Equal(t, baseErr, errors.Unwrap(annotated))
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	t.Run("plain error has none", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ErrorAttrs(errors.New("plain")))
		assert.Empty(t, ErrorAttrs(nil))
	})

	t.Run("various value kinds", func(t *testing.T) {
		t.Parallel()

		err := AnnotateError(errors.New("boom"), "string", "value", "int", 42, "bool", true)

		attrs := map[string]any{}
		for _, attr := range ErrorAttrs(err) {
			attrs[attr.Key] = attr.Value.Any()
		}

		assert.Equal(t, map[string]any{
			"string": "value",
			"int":    int64(42),
			"bool":   true,
		}, attrs)
	})

	t.Run("nested annotations through fmt wrapping", func(t *testing.T) {
		t.Parallel()

		inner := AnnotateError(errors.New("boom"), "inner", 1)
		outer := AnnotateError(fmt.Errorf("context: %w", inner), "outer", 2)

		attrs := ErrorAttrs(outer)
		require.Len(t, attrs, 2)
		assert.Equal(t, "outer", attrs[0].Key)
		assert.Equal(t, "inner", attrs[1].Key)
	})
}

func logJSON(t *testing.T, fn func(*slog.Logger)) map[string]any {
	t.Helper()

	var buf bytes.Buffer

	logger := slog.New(NewErrorHandler(slog.NewJSONHandler(&buf, nil)))
	fn(logger)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	return out
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("expands annotated errors", func(t *testing.T) {
		t.Parallel()

		err := AnnotateError(errors.New("out of range"), "position", 5, "size", 2)

		out := logJSON(t, func(l *slog.Logger) {
			l.Info("rejected", "error", err)
		})

		assert.Equal(t, "rejected", out["msg"])
		assert.Equal(t, "out of range", out["error"])
		assert.InDelta(t, 5, out["position"], 0)
		assert.InDelta(t, 2, out["size"], 0)
	})

	t.Run("keeps plain errors", func(t *testing.T) {
		t.Parallel()

		out := logJSON(t, func(l *slog.Logger) {
			l.Info("failed", "error", errors.New("plain"), "list", "scores")
		})

		assert.Equal(t, "plain", out["error"])
		assert.Equal(t, "scores", out["list"])
	})

	t.Run("with attrs keeps expansion", func(t *testing.T) {
		t.Parallel()

		err := AnnotateError(errors.New("boom"), "op", "remove-at")

		out := logJSON(t, func(l *slog.Logger) {
			l.With("list", "names").Warn("failed", "error", err)
		})

		assert.Equal(t, "names", out["list"])
		assert.Equal(t, "remove-at", out["op"])
	})

	t.Run("with group keeps expansion", func(t *testing.T) {
		t.Parallel()

		err := AnnotateError(errors.New("boom"), "op", "get")

		out := logJSON(t, func(l *slog.Logger) {
			l.WithGroup("repl").Error("failed", "error", err)
		})

		group, ok := out["repl"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "get", group["op"])
	})

	t.Run("wrapping twice is a no-op", func(t *testing.T) {
		t.Parallel()

		inner := NewErrorHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
		assert.Same(t, inner, NewErrorHandler(inner))
	})
}
