package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event dispatcher.
var (
	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrInvalidEventName is returned when an event name is empty.
	ErrInvalidEventName = errors.New("invalid event name")

	// ErrInvalidReference is returned when a "key@Method" listener reference is malformed.
	ErrInvalidReference = errors.New("invalid listener reference")

	// ErrNoResolver is returned when a resolved listener fires on a dispatcher without a resolver.
	ErrNoResolver = errors.New("dispatcher has no resolver")

	// ErrMethodNotFound is returned when a bound method does not exist on its target.
	ErrMethodNotFound = errors.New("method not found")

	// ErrBadMethodSignature is returned when a bound method has the wrong signature.
	ErrBadMethodSignature = errors.New("method has an unsupported signature")

	// ErrUncomparableSubscriber is returned when a subscriber value cannot be
	// compared for removal. Pass a pointer instead.
	ErrUncomparableSubscriber = errors.New("subscriber is not comparable")
)

// SubscriberError reports a subscriber binding that could not be registered.
type SubscriberError struct {
	// Subscriber is the Go type of the subscriber.
	Subscriber string

	// Event is the event name the binding was declared for.
	Event string

	// Method is the bound method name.
	Method string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SubscriberError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("subscriber %s: %v", e.Subscriber, e.Err)
	}
	return fmt.Sprintf("subscriber %s: binding %q to %s: %v", e.Subscriber, e.Event, e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *SubscriberError) Unwrap() error {
	return e.Err
}
