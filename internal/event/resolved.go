package event

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// DefaultMethod is the method called when a listener reference names no method.
const DefaultMethod = "Handle"

// ListenResolved registers a positional listener whose target is looked up
// in the dispatcher's resolver every time the event fires. ref has the form
// "key@Method", or just "key" to call Handle.
//
// The method must have the signature
//
//	func(ctx context.Context, args ...any) (any, error)
//
// RemoveListener and ListenerPriority identify the listener by ref.
func (d *Dispatcher) ListenResolved(name, ref string, priority int) error {
	key, method, err := parseReference(ref)
	if err != nil {
		return err
	}
	l := &resolvedListener{d: d, key: key, method: method}
	return d.register(&Registration{
		name:       name,
		priority:   priority,
		kind:       KindPositional,
		positional: l,
		original:   ref,
	})
}

func parseReference(ref string) (key, method string, err error) {
	key, method, found := strings.Cut(ref, "@")
	if !found {
		method = DefaultMethod
	}
	if key == "" || method == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return key, method, nil
}

// resolvedListener calls a method on a target taken from the resolver.
type resolvedListener struct {
	d      *Dispatcher
	key    string
	method string
}

// Handle implements the Listener interface.
func (l *resolvedListener) Handle(ctx context.Context, args ...any) (any, error) {
	if l.d.resolver == nil {
		return nil, ErrNoResolver
	}
	target, err := l.d.resolver.Get(l.key)
	if err != nil {
		return nil, err
	}
	fn, err := positionalMethod(target, l.method)
	if err != nil {
		return nil, fmt.Errorf("listener %s@%s: %w", l.key, l.method, err)
	}
	return fn(ctx, args...)
}

func positionalMethod(target any, method string) (func(context.Context, ...any) (any, error), error) {
	if method == DefaultMethod {
		if h, ok := target.(Listener); ok {
			return h.Handle, nil
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: nil target has no method %s", ErrMethodNotFound, method)
	}
	m := reflect.ValueOf(target).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T.%s", ErrMethodNotFound, target, method)
	}
	fn, ok := m.Interface().(func(context.Context, ...any) (any, error))
	if !ok {
		return nil, fmt.Errorf("%w: %T.%s is %s", ErrBadMethodSignature, target, method, m.Type())
	}
	return fn, nil
}
