package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a non-function value is registered as a listener.
	ErrNotFunction = errors.New("lua value is not a function")
)

// ScriptError is returned when Lua code fails to load or run.
type ScriptError struct {
	// Script is the name of the script the state was created for.
	Script string

	// Err is the underlying error, usually a *lua.ApiError.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
