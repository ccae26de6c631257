// Package errors accumulates errors from a sequence of independent steps,
// such as the lines of a command script.
package errors

import (
	"errors"
	"fmt"
)

// Collection gathers errors and returns them as one. It is not safe for
// concurrent use.
type Collection struct {
	errors []error
}

// Add appends err. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf appends err wrapped with a formatted prefix, as in
// fmt.Errorf("line 3: %w", err). Nil errors are ignored.
func (c *Collection) Addf(err error, format string, args ...any) {
	if err == nil {
		return
	}

	c.errors = append(c.errors, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err))
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError reports whether at least one error was added.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of errors collected.
func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns a copy of the collected errors in insertion order.
func (c *Collection) Errors() []error {
	out := make([]error, len(c.errors))
	copy(out, c.errors)

	return out
}

// GetError returns nil for an empty collection, the error itself when there
// is exactly one, and errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
