package event

import (
	"context"
	"fmt"
	"reflect"
	"sort"
)

// Subscriber declares a set of object-style listeners bound to its own
// methods. Each bound method must have the signature
//
//	func(ctx context.Context, ev event.Event, name string, d *event.Dispatcher) error
type Subscriber interface {
	// SubscribedEvents maps event names or patterns to method bindings.
	SubscribedEvents() map[string][]Binding
}

// Binding names a subscriber method and the priority it listens at.
type Binding struct {
	Method   string
	Priority int
}

// On binds a method at priority 0.
func On(method string) []Binding {
	return []Binding{{Method: method}}
}

// OnPriority binds a method at the given priority.
func OnPriority(method string, priority int) []Binding {
	return []Binding{{Method: method, Priority: priority}}
}

// MethodRef identifies a subscriber method registration. Pass one to
// RemoveListener or ListenerPriority to address a single binding.
type MethodRef struct {
	Target any
	Method string
}

// String returns "Type.Method".
func (m MethodRef) String() string {
	return fmt.Sprintf("%T.%s", m.Target, m.Method)
}

type subscriberMethod = func(ctx context.Context, ev Event, name string, d *Dispatcher) error

// AddSubscriber registers every binding declared by s. Event names are
// registered in sorted order and bindings in declaration order. Nothing is
// registered if any binding fails to resolve. s must be comparable so that
// RemoveSubscriber can find its bindings again.
func (d *Dispatcher) AddSubscriber(s Subscriber) error {
	if isNil(s) {
		return ErrNilListener
	}

	events := s.SubscribedEvents()
	if !reflect.ValueOf(s).Comparable() {
		return &SubscriberError{
			Subscriber: fmt.Sprintf("%T", s),
			Err:        ErrUncomparableSubscriber,
		}
	}
	var regs []*Registration
	for _, name := range sortedNames(events) {
		for _, b := range events[name] {
			fn, err := subscriberMethodOf(s, b.Method)
			if err != nil {
				return &SubscriberError{
					Subscriber: fmt.Sprintf("%T", s),
					Event:      name,
					Method:     b.Method,
					Err:        err,
				}
			}
			if name == "" {
				return &SubscriberError{
					Subscriber: fmt.Sprintf("%T", s),
					Event:      name,
					Method:     b.Method,
					Err:        ErrInvalidEventName,
				}
			}
			regs = append(regs, &Registration{
				name:     name,
				priority: b.Priority,
				kind:     KindObject,
				object:   EventListenerFunc(fn),
				original: MethodRef{Target: s, Method: b.Method},
			})
		}
	}

	for _, reg := range regs {
		if err := d.register(reg); err != nil {
			return err
		}
	}
	return nil
}

// RemoveSubscriber removes every binding declared by s.
func (d *Dispatcher) RemoveSubscriber(s Subscriber) {
	if isNil(s) {
		return
	}
	events := s.SubscribedEvents()
	for _, name := range sortedNames(events) {
		for _, b := range events[name] {
			d.RemoveListener(name, MethodRef{Target: s, Method: b.Method})
		}
	}
}

func subscriberMethodOf(target any, method string) (subscriberMethod, error) {
	m := reflect.ValueOf(target).MethodByName(method)
	if !m.IsValid() {
		return nil, ErrMethodNotFound
	}
	fn, ok := m.Interface().(subscriberMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBadMethodSignature, m.Type())
	}
	return fn, nil
}

func sortedNames(events map[string][]Binding) []string {
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
