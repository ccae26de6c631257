package envutil_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooSmall = errors.New("too small")

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestString(t *testing.T) {
	t.Run("present value", func(t *testing.T) {
		t.Setenv("SORTEDLIST_TEST_STRING", "hello")

		reader := envutil.String(t.Context(), "SORTEDLIST_TEST_STRING")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
		assert.True(t, reader.HasValue())
		assert.Equal(t, "SORTEDLIST_TEST_STRING=hello", reader.String())
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		reader := envutil.String(t.Context(), "SORTEDLIST_TEST_STRING_MISSING")
		_, err := reader.Value()
		require.ErrorIs(t, err, envutil.ErrEnvVarMissing)
		assert.False(t, reader.HasValue())
		assert.Equal(t, "SORTEDLIST_TEST_STRING_MISSING=<not set>", reader.String())
	})

	t.Run("with default", func(t *testing.T) {
		t.Parallel()

		reader := envutil.String(t.Context(), "SORTEDLIST_TEST_STRING_MISSING", envutil.Default("default"))
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "default", value)
	})

	t.Run("context override", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_OVERRIDE", "from-context")
		assert.Equal(t, "from-context", envutil.String(ctx, "SORTEDLIST_TEST_OVERRIDE").ValueOrElse("nope"))
	})
}

func TestBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		expected bool
		wantErr  bool
	}{
		{name: "true lowercase", value: "true", expected: true},
		{name: "true uppercase", value: "TRUE", expected: true},
		{name: "1", value: "1", expected: true},
		{name: "false", value: "false", expected: false},
		{name: "0", value: "0", expected: false},
		{name: "garbage", value: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_BOOL", tt.value)
			reader := envutil.Bool(ctx, "SORTEDLIST_TEST_BOOL")

			value, err := reader.Value()
			if tt.wantErr {
				require.ErrorIs(t, err, envutil.ErrBadEnvVar)
				assert.True(t, reader.HasError())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_INT", " 64 ")
	assert.Equal(t, 64, envutil.Int(ctx, "SORTEDLIST_TEST_INT").ValueOrElse(0))

	bad := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_INT", "sixty-four")
	assert.Equal(t, 7, envutil.Int(bad, "SORTEDLIST_TEST_INT").ValueOrElse(7))

	assert.Equal(t, 32, envutil.Int(t.Context(), "SORTEDLIST_TEST_INT_MISSING", envutil.Default(32)).ValueOrElse(0))
}

func TestDuration(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_TIMEOUT", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, envutil.Duration(ctx, "SORTEDLIST_TEST_TIMEOUT").ValueOrElse(0))

	bad := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_TIMEOUT", "soon")
	_, err := envutil.Duration(bad, "SORTEDLIST_TEST_TIMEOUT").Value()
	require.ErrorIs(t, err, envutil.ErrBadEnvVar)
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected slog.Level
	}{
		{value: "debug", expected: slog.LevelDebug},
		{value: "INFO", expected: slog.LevelInfo},
		{value: " warn ", expected: slog.LevelWarn},
		{value: "warning", expected: slog.LevelWarn},
		{value: "Error", expected: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_LEVEL", tt.value)
			level, err := envutil.SlogLevel(ctx, "SORTEDLIST_TEST_LEVEL").Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_LEVEL", "loud")
	_, err := envutil.SlogLevel(ctx, "SORTEDLIST_TEST_LEVEL").Value()
	require.ErrorIs(t, err, envutil.ErrInvalidLogLevel)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("validate rejects", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_DEGREE", "1")
		reader := envutil.Int(ctx, "SORTEDLIST_TEST_DEGREE", envutil.Validate(func(v int) error {
			if v < 2 {
				return errTooSmall
			}

			return nil
		}))

		_, err := reader.Value()
		require.ErrorIs(t, err, errTooSmall)
		require.ErrorIs(t, err, envutil.ErrBadEnvVar)
	})

	t.Run("if missing", func(t *testing.T) {
		t.Parallel()

		reader := envutil.String(t.Context(), "SORTEDLIST_TEST_REQUIRED", envutil.IfMissing[string](errTooSmall))
		_, err := reader.Value()
		require.ErrorIs(t, err, errTooSmall)
		assert.ErrorIs(t, reader.Error(), errTooSmall)
	})

	t.Run("map changes type", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "SORTEDLIST_TEST_NAME", "abc")
		reader := envutil.Map(envutil.String(ctx, "SORTEDLIST_TEST_NAME"), func(s string) (int, error) {
			return len(s), nil
		})

		assert.Equal(t, 3, reader.ValueOrElse(0))
		assert.Equal(t, "SORTEDLIST_TEST_NAME", reader.Key())
	})

	t.Run("new reader", func(t *testing.T) {
		t.Parallel()

		reader := envutil.NewReader("KEY", true, nil, 12)
		assert.Equal(t, 12, reader.ValueOrElse(0))
	})
}
