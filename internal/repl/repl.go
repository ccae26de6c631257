// Package repl executes line-oriented commands against a sorted list. It backs
// both the script runner and the interactive shell of cmd/sortedlist.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OneOfOne/xxhash"
	amperrors "github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/amp-labs/amp-sortedlist/internal/repl"

var (
	// ErrUnknownCommand is returned for a command word the interpreter doesn't know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArgument is returned when a command has the wrong number of
	// arguments or one of them can't be parsed.
	ErrBadArgument = errors.New("bad argument")

	// ErrQuit is returned by Exec for "exit" and "quit". RunScript stops
	// without reporting it.
	ErrQuit = errors.New("quit")
)

// Parser converts a command argument into a list entry.
type Parser[T any] func(string) (T, error)

// Runner is an interpreter with its element type erased, as needed when the
// type is chosen at runtime.
type Runner interface {
	Exec(ctx context.Context, line string) error
	RunScript(ctx context.Context, r io.Reader) error
}

// Option configures an Interpreter.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider sets where command spans go. The global otel provider
// is used by default, which is a no-op unless one has been installed.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// Interpreter runs commands against one list and writes their output to out.
type Interpreter[T any] struct {
	list   sortedlist.SortedList[T]
	parse  Parser[T]
	out    io.Writer
	tracer trace.Tracer
}

var _ Runner = (*Interpreter[int])(nil)

// New creates an Interpreter for list. parse turns arguments into entries.
func New[T any](list sortedlist.SortedList[T], parse Parser[T], out io.Writer, opts ...Option) *Interpreter[T] {
	o := &options{tracerProvider: otel.GetTracerProvider()}

	for _, opt := range opts {
		opt(o)
	}

	return &Interpreter[T]{
		list:   list,
		parse:  parse,
		out:    out,
		tracer: o.tracerProvider.Tracer(tracerName),
	}
}

// Exec runs a single command line. Blank lines and lines starting with '#'
// do nothing.
func (in *Interpreter[T]) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	ctx, span := in.tracer.Start(ctx, "repl."+name, trace.WithAttributes(
		attribute.String("command", name),
		attribute.Int("args", len(args)),
	))
	defer span.End()

	logger.Get(ctx).Debug("executing command", "command", name, "args", args)

	err := in.dispatch(name, args)
	if err != nil && !errors.Is(err, ErrQuit) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.SetAttributes(attribute.Int("size", in.list.Size()))

	return err
}

// RunScript executes r line by line. A failing line writes "error: ..." to
// the output and the script carries on; all failures are returned together,
// each prefixed with its line number. The script stops early on "exit" or
// when ctx is done.
func (in *Interpreter[T]) RunScript(ctx context.Context, r io.Reader) error {
	var errs amperrors.Collection

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			errs.Add(err)

			break
		}

		lineNo++

		err := in.Exec(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			break
		}

		if err != nil {
			in.printf("error: %v\n", err)
			errs.Addf(err, "line %d", lineNo)
		}
	}

	errs.Add(scanner.Err())

	return errs.GetError()
}

func (in *Interpreter[T]) dispatch(name string, args []string) error {
	switch name {
	case "add":
		return in.add(args)
	case "remove":
		return withEntry(in, name, args, func(entry T) error {
			in.println(in.list.Remove(entry))

			return nil
		})
	case "remove-at":
		return withPosition(in, name, args, in.list.RemoveAt)
	case "get":
		return withPosition(in, name, args, in.list.GetEntryAt)
	case "position":
		return withEntry(in, name, args, func(entry T) error {
			in.println(in.list.GetPosition(entry))

			return nil
		})
	case "contains":
		return withEntry(in, name, args, func(entry T) error {
			in.println(in.list.Contains(entry))

			return nil
		})
	case "size":
		return noArgs(name, args, func() { in.println(in.list.Size()) })
	case "empty":
		return noArgs(name, args, func() { in.println(in.list.IsEmpty()) })
	case "clear":
		return noArgs(name, args, func() {
			in.list.Clear()
			in.println("ok")
		})
	case "list":
		return noArgs(name, args, func() { in.println(in.render()) })
	case "digest":
		return in.digest(args)
	case "help":
		return noArgs(name, args, func() { in.printf("%s", helpText) })
	case "exit", "quit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func (in *Interpreter[T]) add(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: add needs at least one value", ErrBadArgument)
	}

	entries := make([]T, 0, len(args))

	for _, arg := range args {
		entry, err := in.parse(arg)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrBadArgument, arg, err)
		}

		entries = append(entries, entry)
	}

	for _, entry := range entries {
		in.list.Add(entry)
	}

	in.println("ok")

	return nil
}

func withEntry[T any](in *Interpreter[T], name string, args []string, fn func(T) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s takes exactly one value", ErrBadArgument, name)
	}

	entry, err := in.parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrBadArgument, args[0], err)
	}

	return fn(entry)
}

func withPosition[T any](in *Interpreter[T], name string, args []string, fn func(int) (T, error)) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s takes exactly one position", ErrBadArgument, name)
	}

	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: position %q: %w", ErrBadArgument, args[0], err)
	}

	entry, err := fn(pos)
	if err != nil {
		return err
	}

	in.println(entry)

	return nil
}

func noArgs(name string, args []string, fn func()) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: %s takes no arguments", ErrBadArgument, name)
	}

	fn()

	return nil
}

// digest prints a 64-bit hash of the rendered list: xxh3 by default, or
// xxh64 when asked for.
func (in *Interpreter[T]) digest(args []string) error {
	algorithm := "xxh3"
	if len(args) > 0 {
		algorithm = strings.ToLower(args[0])
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: digest takes at most one algorithm", ErrBadArgument)
	}

	rendered := in.render()

	switch algorithm {
	case "xxh3":
		in.printf("%016x\n", xxh3.HashString(rendered))
	case "xxh64":
		in.printf("%016x\n", xxhash.ChecksumString64(rendered))
	default:
		return fmt.Errorf("%w: unknown digest algorithm %q", ErrBadArgument, args[0])
	}

	return nil
}

// render formats the list as "[a b c]".
func (in *Interpreter[T]) render() string {
	return fmt.Sprint(in.list.Entries())
}

func (in *Interpreter[T]) println(v any) {
	_, _ = fmt.Fprintln(in.out, v)
}

func (in *Interpreter[T]) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(in.out, format, args...)
}

const helpText = `commands:
  add V...      add one or more values
  remove V      remove one value equal to V
  remove-at P   remove and print the value at position P
  position V    print the position of V (negative: insertion point)
  get P         print the value at position P
  contains V    print whether V is present
  size          print the number of values
  empty         print whether the list is empty
  clear         remove every value
  list          print all values in order
  digest [ALG]  print a digest of the list (xxh3 or xxh64)
  help          print this text
  exit          stop
`
