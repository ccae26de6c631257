// Package envutil reads typed configuration from environment variables.
//
// Every reader takes a context so that values can be overridden per call
// tree with WithEnvOverride, which keeps tests independent of the process
// environment.
package envutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidLogLevel is returned when a log level name is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

type envContextKey string

// WithEnvOverride returns a context in which key reads as value, regardless
// of the process environment.
func WithEnvOverride(ctx context.Context, key string, value string) context.Context {
	return context.WithValue(ctx, envContextKey(key), value)
}

func getEnvOverride(ctx context.Context, key string) (string, bool) {
	if ctx == nil {
		return "", false
	}

	val, ok := ctx.Value(envContextKey(key)).(string)

	return val, ok
}

// get returns a Reader for the given environment variable key.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getEnvOverride(ctx, key); ok {
		return Reader[string]{key: key, present: true, value: val}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	return apply(get(ctx, key), opts)
}

// Bool returns a Reader that parses the variable with strconv.ParseBool.
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(ctx, key), strconv.ParseBool), opts)
}

// Int returns a Reader that parses the variable as a base-10 int.
func Int(ctx context.Context, key string, opts ...Option[int]) Reader[int] {
	return apply(Map(Map(get(ctx, key), trimString), strconv.Atoi), opts)
}

// Duration returns a Reader that parses the variable with time.ParseDuration.
func Duration(ctx context.Context, key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(Map(get(ctx, key), trimString), time.ParseDuration), opts)
}

// SlogLevel returns a Reader that parses debug, info, warn or error (any case).
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(Map(get(ctx, key), trimString), parseSlogLevel), opts)
}

func trimString(value string) (string, error) {
	return strings.TrimSpace(value), nil
}

func parseSlogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}
}
