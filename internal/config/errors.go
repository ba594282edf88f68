package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a setting holds a value the application cannot use.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// ValidationError describes a single setting that failed validation.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "log.level".
	Path string
	// Value is the offending value.
	Value any
	// Message describes what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
