package domainerrors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeInvalidScope, "tenant scope is required")
		assert.True(t, HasCode(err, CodeInvalidScope))
		assert.False(t, HasCode(err, CodeAdapterFailure))
	})

	t.Run("matches code behind fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("resolve: %w", New(CodeCancelled, "cancelled"))
		assert.True(t, HasCode(err, CodeCancelled))
	})

	t.Run("matches nested coded errors", func(t *testing.T) {
		inner := New(CodeTimeout, "deadline")
		err := Wrap(inner, CodeAdapterFailure, "source read failed")
		assert.True(t, HasCode(err, CodeAdapterFailure))
		assert.True(t, HasCode(err, CodeTimeout))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(context.Canceled, CodeCancelled))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(context.DeadlineExceeded, CodeTimeout, "resolution timed out")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, Is(err, context.DeadlineExceeded))
	assert.Equal(t, CodeTimeout, CodeOf(err))
	assert.Equal(t, CodeInternal, CodeOf(context.Canceled))
}
