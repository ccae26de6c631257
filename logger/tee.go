package logger

import (
	"context"
	"errors"
	"log"
	"log/slog"
)

// teeHandler sends each record to every handler that accepts its level.
type teeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler returns a handler that fans records out to all of handlers.
func NewTeeHandler(handlers ...slog.Handler) slog.Handler {
	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}

		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{handlers: mapHandlers(t.handlers, func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{handlers: mapHandlers(t.handlers, func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})}
}

func mapHandlers(handlers []slog.Handler, f func(slog.Handler) slog.Handler) []slog.Handler {
	out := make([]slog.Handler, len(handlers))
	for i, h := range handlers {
		out[i] = f(h)
	}

	return out
}

// Tee makes the default logger also write to extra, on top of whatever
// ConfigureLogging installed. Used to bridge records into OpenTelemetry.
func Tee(extra slog.Handler) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	handler := NewTeeHandler(slog.Default().Handler(), extra)

	logger := slog.New(handler)
	slog.SetDefault(logger)

	def := log.Default()
	*def = *slog.NewLogLogger(handler, slog.Level(legacyLevel.Load()))

	return logger
}
