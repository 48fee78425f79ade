package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("cause is reachable through errors.Is", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Wrap(cause, CodeUpdateFailed, "update patient")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "update patient: disk full", err.Error())
	})
}

func TestHasCode(t *testing.T) {
	t.Run("matches outermost code", func(t *testing.T) {
		err := Wrap(New(CodeNotFound, "patient not found"), CodeInternal, "sweep")
		assert.True(t, HasCode(err, CodeInternal))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("context: %w", New(CodeValidation, "bad date"))
		assert.True(t, HasCode(err, CodeValidation))
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
	})
}
