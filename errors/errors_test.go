//nolint:err113 // Test file uses errors.New() for creating test errors
package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Add(t *testing.T) {
	t.Parallel()

	t.Run("ignores nil errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(nil)
		c.Addf(nil, "line %d", 1)

		assert.False(t, c.HasError())
		assert.Zero(t, c.Len())
		require.NoError(t, c.GetError())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")

		c := &Collection{}
		c.Add(first)
		c.Add(nil)
		c.Add(second)

		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []error{first, second}, c.Errors())
	})

	t.Run("addf wraps with a prefix", func(t *testing.T) {
		t.Parallel()

		base := errors.New("unknown command")

		c := &Collection{}
		c.Addf(base, "line %d", 4)

		err := c.GetError()
		require.ErrorIs(t, err, base)
		assert.Equal(t, "line 4: unknown command", err.Error())
	})
}

func TestCollection_GetError(t *testing.T) {
	t.Parallel()

	t.Run("single error is returned as is", func(t *testing.T) {
		t.Parallel()

		only := errors.New("only")

		c := &Collection{}
		c.Add(only)

		assert.Same(t, only, c.GetError()) //nolint:testifylint
	})

	t.Run("multiple errors are joined", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")

		c := &Collection{}
		c.Add(first)
		c.Add(second)

		err := c.GetError()
		require.ErrorIs(t, err, first)
		require.ErrorIs(t, err, second)
		assert.Equal(t, "first\nsecond", err.Error())
	})
}

func TestCollection_Clear(t *testing.T) {
	t.Parallel()

	c := &Collection{}
	c.Add(errors.New("boom"))
	c.Clear()

	assert.False(t, c.HasError())
	require.NoError(t, c.GetError())

	c.Add(errors.New("again"))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_ErrorsIsACopy(t *testing.T) {
	t.Parallel()

	c := &Collection{}
	c.Add(errors.New("kept"))

	errs := c.Errors()
	errs[0] = nil

	require.Error(t, c.Errors()[0])
}
