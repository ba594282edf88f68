package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionError_WrapsCause(t *testing.T) {
	cause := errors.New("A exception message")

	err := &ResolutionError{Key: "mailer", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
	assert.Equal(t,
		`An *errors.errorString occurred when attempting to retrieve the "mailer" entry from the container. Message: A exception message`,
		err.Error())
}

func TestResolutionError_WithoutCause(t *testing.T) {
	err := &ResolutionError{Key: "mailer"}

	assert.Equal(t,
		`An error occurred when attempting to retrieve the "mailer" entry from the container.`,
		err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Key: "not-found"}

	assert.Equal(t, `Identifier "not-found" is not defined.`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWrapResolution_NoDoubleWrap(t *testing.T) {
	inner := &ResolutionError{Key: "k", Err: errors.New("boom")}

	assert.Same(t, inner, wrapResolution("k", inner))

	outer := wrapResolution("other", inner)
	var re *ResolutionError
	assert.ErrorAs(t, outer, &re)
	assert.Equal(t, "other", re.Key)
}
