package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalid, KindOf(Invalid("missing field")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("no such post")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not yours")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already deleted")))
	assert.Equal(t, KindInternal, KindOf(errors.New("driver: bad connection")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("deleting post: %w", Conflict("already deleted"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestIsKind_NilError(t *testing.T) {
	assert.False(t, IsKind(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	err := Forbidden("you are banned and cannot perform this action")
	assert.Equal(t, "you are banned and cannot perform this action", err.Error())
}
