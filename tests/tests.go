// Package tests gives tests a context carrying a unique id, the test name and
// a logger that writes through testing.T, so log output shows up next to the
// test that produced it.
//
//	func TestSomething(t *testing.T) {
//	    ctx := tests.Context(t)
//	    logger.Get(ctx).Info("visible in go test -v output")
//	}
package tests

import (
	"context"
	"testing"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/google/uuid"
	"github.com/neilotoole/slogt"
)

type contextKey string

const (
	// testIdKey holds "test-" followed by a random UUID.
	testIdKey contextKey = "testId"

	// testNameKey holds t.Name(), subtest path included.
	testNameKey contextKey = "testName"

	testTestKey contextKey = "testTest"
)

// Context returns t.Context() extended with a unique test id, the test name,
// t itself and a slogt logger installed with logger.WithLogger.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx := context.WithValue(t.Context(), testTestKey, t)
	ctx = context.WithValue(ctx, testIdKey, "test-"+uuid.New().String())
	ctx = context.WithValue(ctx, testNameKey, t.Name())

	return logger.WithLogger(ctx, slogt.New(t))
}

// CheckSkipped skips t when the boolean environment variable envKey is true.
// The optional arguments are the default when the variable is unset, and
// whether to invert the check (skip unless the variable is true).
func CheckSkipped(ctx context.Context, t *testing.T, envKey string, defaultValue ...bool) {
	t.Helper()

	defl := false
	invert := false

	if len(defaultValue) > 0 {
		defl = defaultValue[0]
	}

	if len(defaultValue) > 1 {
		invert = defaultValue[1]
	}

	original := envutil.Bool(ctx, envKey, envutil.Default(defl)).ValueOrElse(defl)

	shouldSkip := original
	if invert {
		shouldSkip = !shouldSkip
	}

	if shouldSkip {
		t.Skipf("Skipping test because of environment variable: %s=%v", envKey, original)
	}
}

func getValue[V any](ctx context.Context, key contextKey) (V, bool) {
	val, ok := ctx.Value(key).(V)

	return val, ok
}

// GetTestName returns the test name stored by Context.
func GetTestName(ctx context.Context) (string, bool) {
	return getValue[string](ctx, testNameKey)
}

// GetTestId returns the unique id stored by Context.
func GetTestId(ctx context.Context) (string, bool) {
	return getValue[string](ctx, testIdKey)
}

// GetTest returns the *testing.T stored by Context.
func GetTest(ctx context.Context) (*testing.T, bool) {
	return getValue[*testing.T](ctx, testTestKey)
}

// Info is the test metadata carried by a Context.
type Info struct {
	Test *testing.T `json:"-"`
	Id   string     `json:"id"`
	Name string     `json:"name"`
}

// GetTestInfo collects the values stored by Context. The boolean is false
// when the context carries none of them.
func GetTestInfo(ctx context.Context) (Info, bool) {
	name, nameOk := GetTestName(ctx)
	id, idOk := GetTestId(ctx)
	t, tOk := GetTest(ctx)

	if !nameOk && !idOk && !tOk {
		return Info{}, false
	}

	return Info{
		Test: t,
		Id:   id,
		Name: name,
	}, true
}
