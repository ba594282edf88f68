package event

import "sync/atomic"

// Event is the structured event object handed to object-style listeners.
type Event interface {
	// Arguments returns the payload the event was fired with.
	Arguments() []any

	// IsPropagationStopped reports whether a listener stopped propagation.
	IsPropagationStopped() bool

	// StopPropagation prevents any further listener from receiving the event.
	StopPropagation()
}

// Propagator holds the propagation flag. Embed it to implement the
// propagation half of Event.
type Propagator struct {
	stopped atomic.Bool
}

// IsPropagationStopped reports whether StopPropagation has been called.
func (p *Propagator) IsPropagationStopped() bool {
	return p.stopped.Load()
}

// StopPropagation marks the event as stopped.
func (p *Propagator) StopPropagation() {
	p.stopped.Store(true)
}

// GenericEvent wraps an arbitrary payload for object-style listeners.
type GenericEvent struct {
	Propagator

	// Subject is what the event is about. Events created by the dispatcher
	// use the fired event name.
	Subject any

	args []any
}

// NewGenericEvent creates an event carrying the given arguments.
func NewGenericEvent(subject any, args ...any) *GenericEvent {
	return &GenericEvent{Subject: subject, args: args}
}

// Arguments returns the payload.
func (e *GenericEvent) Arguments() []any {
	return e.args
}

// Argument returns the i-th payload element, or nil when out of range.
func (e *GenericEvent) Argument(i int) any {
	if i < 0 || i >= len(e.args) {
		return nil
	}
	return e.args[i]
}

// Len returns the number of payload elements.
func (e *GenericEvent) Len() int {
	return len(e.args)
}

// eventFor returns the object handed to object-style listeners for a payload.
// An Event passed as the first payload element is reused as is.
func eventFor(name string, payload []any) Event {
	if len(payload) > 0 {
		if ev, ok := payload[0].(Event); ok {
			return ev
		}
	}
	return NewGenericEvent(name, payload...)
}
