package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AnnotateError attaches slog key-value pairs to err. When the error is later
// logged through a handler built by NewErrorHandler, the pairs appear as
// regular attributes of the record. errors.Is and errors.As see through the
// annotation. Returns nil if err is nil.
//
//	return logger.AnnotateError(err, "position", pos, "size", n)
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &slogError{err: err, attrs: attrs}
}

// ErrorAttrs returns the attributes attached to err (or anything it wraps) by
// AnnotateError, outermost annotation first.
func ErrorAttrs(err error) []slog.Attr {
	var out []slog.Attr

	for err != nil {
		var se *slogError
		if !errors.As(err, &se) {
			break
		}

		out = append(out, se.attrs...)
		err = se.err
	}

	return out
}

type slogError struct {
	err   error
	attrs []slog.Attr
}

var _ error = (*slogError)(nil)

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

// errorHandler is a slog.Handler decorator which expands annotated errors
// into the record's attributes.
type errorHandler struct {
	inner slog.Handler
}

var _ slog.Handler = (*errorHandler)(nil)

// NewErrorHandler wraps inner so that attributes attached with AnnotateError
// are written next to the error itself.
func NewErrorHandler(inner slog.Handler) slog.Handler {
	if eh, ok := inner.(*errorHandler); ok {
		return eh
	}

	return &errorHandler{inner: inner}
}

func (s *errorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

func (s *errorHandler) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		err, isErr := attr.Value.Any().(error)
		if isErr {
			if extra := ErrorAttrs(err); len(extra) > 0 {
				errAttrs = append(errAttrs, extra...)
			}
		}

		baseAttrs = append(baseAttrs, attr)

		return true
	})

	if len(errAttrs) == 0 {
		return s.inner.Handle(ctx, record)
	}

	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(baseAttrs...)
	r.AddAttrs(errAttrs...)

	return s.inner.Handle(ctx, r)
}

func (s *errorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorHandler{inner: s.inner.WithAttrs(attrs)}
}

func (s *errorHandler) WithGroup(name string) slog.Handler {
	return &errorHandler{inner: s.inner.WithGroup(name)}
}
