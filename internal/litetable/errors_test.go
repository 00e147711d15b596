package litetable

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewError(t *testing.T) {
	req := require.New(t)

	t.Run("test error wrapping", func(t *testing.T) {
		err := NewError(ErrMalformedRequest, "")
		req.NotNil(err)
		req.Implements((*error)(nil), err)

		req.True(errors.Is(err, ErrMalformedRequest))
		req.False(errors.Is(err, ErrFetchFailed))
		req.Equal("malformed request", err.Error())
	})

	t.Run("test error wrapping with context", func(t *testing.T) {
		err := NewError(ErrMalformedRequest, "page size must be positive: %d", -1)
		req.True(errors.Is(err, ErrMalformedRequest))
		req.Equal("malformed request: page size must be positive: -1", err.Error())
	})
}

func TestWrapError(t *testing.T) {
	req := require.New(t)
	cause := errors.New("connection reset")

	err := WrapError(ErrFetchFailed, cause, "row %s column %s", "foo", "info:name")
	req.True(errors.Is(err, ErrFetchFailed))
	req.True(errors.Is(err, cause))
	req.Equal("fetch failed: row foo column info:name: connection reset", err.Error())

	var ltErr *Error
	req.True(errors.As(fmt.Errorf("outer: %w", err), &ltErr))
}
