package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapStore(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapStore("op", nil))
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		err := WrapStore("team create", errors.New("connection refused"))
		var se *StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "team create", se.Op)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("keeps typed outcomes intact", func(t *testing.T) {
		conflict := &ConflictError{Message: "taken", References: 3}
		err := WrapStore("team delete", fmt.Errorf("rolled back: %w", conflict))
		assert.True(t, IsConflict(err))
		assert.False(t, IsNotFound(err))
	})

	t.Run("does not double-wrap", func(t *testing.T) {
		inner := &StoreError{Op: "inner", Err: errors.New("boom")}
		assert.Equal(t, inner, WrapStore("outer", inner))
	})
}

func TestKindChecks(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("bad id %q", "x")))
	assert.True(t, IsNotFound(NewNotFound("team")))
	assert.Equal(t, "team not found", NewNotFound("team").Error())
	assert.False(t, IsConflict(NewValidation("nope")))
}
