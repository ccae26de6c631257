// Package script runs a command-line program's main function with logging
// configured from the environment, Ctrl+C turned into context cancellation and
// errors turned into exit codes.
//
//	func main() {
//	    script.New("sortedlist").Run(func(ctx context.Context) error {
//	        return newRootCommand().ExecuteContext(ctx)
//	    })
//	}
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/telemetry"
)

// Option configures a Script.
type Option func(script *Script)

// Exit returns an error that makes the script exit with code, without
// logging anything.
func Exit(code int) error {
	return &exitError{code: code}
}

// ExitWithError returns an error that makes the script log err and exit with 1.
func ExitWithError(err error) error {
	return &exitError{err: err, code: 1}
}

// ExitWithErrorMessage is ExitWithError with a formatted message.
func ExitWithErrorMessage(msg string, args ...any) error {
	return &exitError{
		err:  fmt.Errorf(msg, args...), //nolint:err113
		code: 1,
	}
}

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string {
	msg := "exit " + strconv.Itoa(e.code)

	if e.err != nil {
		return msg + ": " + e.err.Error()
	}

	return msg
}

func (e *exitError) Unwrap() error {
	return e.err
}

// LogLevel overrides LOG_LEVEL.
func LogLevel(lvl slog.Level) Option {
	return func(script *Script) {
		script.loggerOpts = append(script.loggerOpts, logger.WithMinLevel(lvl))
	}
}

// LegacyLogLevel overrides LEGACY_LOG_LEVEL.
func LegacyLogLevel(lvl slog.Level) Option {
	return func(script *Script) {
		script.loggerOpts = append(script.loggerOpts, func(options *logger.Options) {
			options.LegacyLevel = lvl
		})
	}
}

// LogOutput overrides LOG_OUTPUT.
func LogOutput(writer io.Writer) Option {
	return func(script *Script) {
		script.loggerOpts = append(script.loggerOpts, logger.WithOutput(writer))
	}
}

// WithEnvFile loads variables from path (see envutil.Load) before logging is
// configured. Files that don't exist are skipped.
func WithEnvFile(path string) Option {
	return func(script *Script) {
		script.envFiles = append(script.envFiles, path)
	}
}

// Script is a runnable program.
type Script struct {
	name       string
	envFiles   []string
	loggerOpts []logger.Option
}

// New creates a Script. name becomes the logging subsystem.
func New(scriptName string, opts ...Option) *Script {
	script := &Script{name: scriptName}

	for _, opt := range opts {
		opt(script)
	}

	return script
}

// Run calls f and exits the process with the resulting code. The context
// passed to f is canceled on SIGINT.
func (r *Script) Run(f func(ctx context.Context) error) {
	os.Exit(r.run(context.Background(), f))
}

func (r *Script) run(parent context.Context, callback func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)

	stopOnce := sync.Once{}
	cancel := func() {
		stopOnce.Do(stop)
	}

	defer cancel()

	for _, path := range r.envFiles {
		if err := envutil.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("error loading env file", "path", path, "error", err)

			return 1
		}
	}

	_ = logger.ConfigureLogging(ctx, r.name, r.loggerOpts...)

	log := logger.Get(ctx)

	if err := initTelemetry(ctx); err != nil {
		log.Error("error initializing telemetry", "error", err)

		return 1
	}

	defer func() {
		if err := telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("error shutting down telemetry", "error", err)
		}
	}()

	if callback == nil {
		log.Error("callback is nil")

		return 1
	}

	err := callback(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.code != 0 {
			log.Error("error running script", "error", err)
		}

		return exitErr.code
	}

	log.Error("error running script", "error", err)

	return 1
}

func initTelemetry(ctx context.Context) error {
	config, err := telemetry.LoadConfigFromEnv(ctx)
	if err != nil {
		return err
	}

	return telemetry.Initialize(ctx, config)
}
