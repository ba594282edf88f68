package event

import (
	"context"
	"reflect"
	"unsafe"
)

// Listener receives an event's payload as positional arguments.
//
// A non-nil response is collected by Fire and returned by Until. A response
// of exactly false stops propagation.
type Listener interface {
	Handle(ctx context.Context, args ...any) (any, error)
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(ctx context.Context, args ...any) (any, error)

// Handle implements the Listener interface.
func (f ListenerFunc) Handle(ctx context.Context, args ...any) (any, error) {
	return f(ctx, args...)
}

// EventListener receives a single structured event, the name it was fired
// under and the dispatcher itself.
type EventListener interface {
	HandleEvent(ctx context.Context, ev Event, name string, d *Dispatcher) error
}

// EventListenerFunc is a function adapter for EventListener.
type EventListenerFunc func(ctx context.Context, ev Event, name string, d *Dispatcher) error

// HandleEvent implements the EventListener interface.
func (f EventListenerFunc) HandleEvent(ctx context.Context, ev Event, name string, d *Dispatcher) error {
	return f(ctx, ev, name, d)
}

// Kind is the calling convention of a registered listener.
type Kind int

const (
	// KindPositional listeners receive the payload spread as arguments.
	KindPositional Kind = iota

	// KindObject listeners receive one Event per dispatch.
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Registration is a listener as stored by the dispatcher.
type Registration struct {
	name     string
	priority int
	seq      uint64
	kind     Kind

	positional Listener
	object     EventListener

	// original is the value the caller registered.
	original any
}

// Name returns the event name or pattern the listener was registered under.
func (r *Registration) Name() string {
	return r.name
}

// Priority returns the registration priority. Higher fires first.
func (r *Registration) Priority() int {
	return r.priority
}

// Kind returns the listener's calling convention.
func (r *Registration) Kind() Kind {
	return r.kind
}

// Unwrap returns the value originally passed at registration: the Listener,
// the EventListener, the "key@Method" reference or the subscriber MethodRef.
func (r *Registration) Unwrap() any {
	return r.original
}

// matches reports whether the registration was made with listener l.
func (r *Registration) matches(l any) bool {
	return sameListener(r.original, l)
}

// sameListener compares two registered listener values. Functions compare by
// closure identity: the same func value matches itself, while two closures
// created from one literal are distinct. Other values compare with == when
// their dynamic type allows it.
func sameListener(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return funcData(a) == funcData(b)
	}
	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// funcData returns the data word of an interface holding a func. Func
// values are pointer-shaped, so the word is the closure itself.
func funcData(v any) unsafe.Pointer {
	type eface struct {
		typ  unsafe.Pointer
		data unsafe.Pointer
	}
	return (*eface)(unsafe.Pointer(&v)).data
}

// isNil reports whether v is nil or an interface holding a nil pointer or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
