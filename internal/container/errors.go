package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("entry not found")

// NotFoundError is returned when neither a registry nor any of its
// delegates holds an entry for Key.
type NotFoundError struct {
	Key string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Identifier %q is not defined.", e.Key)
}

// Is allows errors.Is to match NotFoundError with ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// resolutionTemplate accepts the {error} and {id} variables.
const resolutionTemplate = `An {error} occurred when attempting to retrieve the "{id}" entry from the container.`

// ResolutionError wraps a failure raised while producing the entry for Key,
// either by a local factory or by a delegate.
type ResolutionError struct {
	// Key is the requested entry.
	Key string

	// Err is the underlying failure. It may be nil.
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	class := "error"
	if e.Err != nil {
		class = fmt.Sprintf("%T", e.Err)
	}

	msg := strings.NewReplacer("{error}", class, "{id}", e.Key).Replace(resolutionTemplate)
	if e.Err != nil {
		msg += " Message: " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// wrapResolution wraps err for key. Errors that are already a
// ResolutionError for the same key are returned unchanged.
func wrapResolution(key string, err error) error {
	var re *ResolutionError
	if errors.As(err, &re) && re.Key == key {
		return err
	}
	return &ResolutionError{Key: key, Err: err}
}
