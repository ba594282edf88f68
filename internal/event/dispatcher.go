package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/container"
	"github.com/teratic/eventbridge/internal/event/topic"
)

// Dispatcher is a priority-ordered event dispatcher.
//
// Listeners are registered under an event name or a wildcard pattern with
// an integer priority. Higher priorities fire first; equal priorities fire
// in registration order. Dispatch is synchronous and listeners run without
// any dispatcher lock held, so a listener may fire further events.
type Dispatcher struct {
	registry    *registry
	logger      *zap.Logger
	resolver    container.Container
	broadcaster Broadcaster

	mu      sync.Mutex
	firing  []string
	pending map[string][][]any
}

// New creates a dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher{
		registry:    newRegistry(cfg.cacheSize),
		logger:      cfg.logger,
		resolver:    cfg.resolver,
		broadcaster: cfg.broadcaster,
		pending:     make(map[string][][]any),
	}
}

// Listen registers a positional listener for an event name or pattern.
func (d *Dispatcher) Listen(name string, l Listener, priority int) error {
	if isNil(l) {
		return ErrNilListener
	}
	return d.register(&Registration{
		name:       name,
		priority:   priority,
		kind:       KindPositional,
		positional: l,
		original:   l,
	})
}

// AddListener registers an object-style listener for an event name or pattern.
func (d *Dispatcher) AddListener(name string, l EventListener, priority int) error {
	if isNil(l) {
		return ErrNilListener
	}
	return d.register(&Registration{
		name:     name,
		priority: priority,
		kind:     KindObject,
		object:   l,
		original: l,
	})
}

func (d *Dispatcher) register(reg *Registration) error {
	if reg.name == "" {
		return ErrInvalidEventName
	}
	d.registry.add(reg)
	d.logger.Debug("listener registered",
		zap.String("event", reg.name),
		zap.Int("priority", reg.priority),
		zap.Stringer("kind", reg.kind),
	)
	return nil
}

// RemoveListener removes the first registration of l under exactly name.
// Pass the pattern itself to remove a wildcard registration. It reports
// whether a listener was removed.
func (d *Dispatcher) RemoveListener(name string, l any) bool {
	_, ok := d.registry.remove(name, l)
	return ok
}

// Forget removes every listener registered under exactly name.
func (d *Dispatcher) Forget(name string) {
	if n := d.registry.forget(name); n > 0 {
		d.logger.Debug("listeners forgotten", zap.String("event", name), zap.Int("count", n))
	}
}

// ListenerPriority returns the priority l was registered with under name.
func (d *Dispatcher) ListenerPriority(name string, l any) (int, bool) {
	return d.registry.priority(name, l)
}

// HasListeners reports whether firing name would reach any listener,
// counting wildcard patterns that match it.
func (d *Dispatcher) HasListeners(name string) bool {
	return d.registry.has(name)
}

// HasAnyListeners reports whether any listener is registered at all.
func (d *Dispatcher) HasAnyListeners() bool {
	return d.registry.hasAny()
}

// Listeners returns the listeners that firing name would invoke, in order.
func (d *Dispatcher) Listeners(name string) []*Registration {
	return d.registry.listeners(name)
}

// AllListeners returns the sorted listener list of every registered name
// and pattern.
func (d *Dispatcher) AllListeners() map[string][]*Registration {
	keys := d.registry.keys()
	all := make(map[string][]*Registration, len(keys))
	for _, k := range keys {
		all[k] = d.registry.listeners(k)
	}
	return all
}

// Fire dispatches name to its listeners and returns their responses.
//
// Positional listeners receive payload spread as arguments; their responses
// are collected in order, and a response of exactly false stops propagation
// without being collected. Object-style listeners share one Event for the
// whole dispatch and contribute a nil response; if one stops propagation,
// no further listener runs. A listener error stops the dispatch and is
// returned as is.
func (d *Dispatcher) Fire(ctx context.Context, name string, payload ...any) ([]any, error) {
	responses, _, err := d.fire(ctx, name, payload, false)
	return responses, err
}

// Until dispatches name and returns the first non-nil response from a
// positional listener, skipping the remaining listeners. It returns nil
// when no listener produced one.
func (d *Dispatcher) Until(ctx context.Context, name string, payload ...any) (any, error) {
	_, response, err := d.fire(ctx, name, payload, true)
	return response, err
}

// FireEvent dispatches an event value as the sole payload, under the name
// reported by its EventName method or else its package-qualified type name.
func (d *Dispatcher) FireEvent(ctx context.Context, ev any) ([]any, error) {
	name := topic.Of(ev).String()
	if name == "" {
		return nil, ErrInvalidEventName
	}
	return d.Fire(ctx, name, ev)
}

// Dispatch fires ev under name and returns it. A nil ev is replaced by an
// empty GenericEvent.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, ev Event) (Event, error) {
	if ev == nil {
		ev = NewGenericEvent(nil)
	}
	_, err := d.Fire(ctx, name, ev)
	return ev, err
}

// Firing returns the name of the innermost event being dispatched, or ""
// when idle.
func (d *Dispatcher) Firing() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.firing) == 0 {
		return ""
	}
	return d.firing[len(d.firing)-1]
}

func (d *Dispatcher) fire(ctx context.Context, name string, payload []any, halt bool) ([]any, any, error) {
	d.enter(name)
	defer d.leave()

	if len(payload) > 0 {
		if b, ok := payload[0].(ShouldBroadcast); ok {
			d.broadcast(ctx, name, b)
		}
	}

	responses := make([]any, 0)
	var ev Event

	for _, reg := range d.registry.listeners(name) {
		if reg.kind == KindObject {
			if ev == nil {
				ev = eventFor(name, payload)
			}
			if err := reg.object.HandleEvent(ctx, ev, name, d); err != nil {
				return nil, nil, err
			}
			if ev.IsPropagationStopped() {
				d.logger.Debug("propagation stopped", zap.String("event", name), zap.String("listener", reg.name))
				break
			}
			responses = append(responses, nil)
			continue
		}

		response, err := reg.positional.Handle(ctx, payload...)
		if err != nil {
			return nil, nil, err
		}
		if halt && response != nil {
			d.logger.Debug("dispatch halted", zap.String("event", name), zap.String("listener", reg.name))
			return nil, response, nil
		}
		if stop, ok := response.(bool); ok && !stop {
			d.logger.Debug("propagation stopped", zap.String("event", name), zap.String("listener", reg.name))
			break
		}
		responses = append(responses, response)
	}

	if halt {
		return nil, nil, nil
	}
	return responses, nil, nil
}

func (d *Dispatcher) broadcast(ctx context.Context, name string, ev ShouldBroadcast) {
	d.logger.Debug("broadcasting event", zap.String("event", name), zap.Strings("channels", ev.BroadcastOn()))
	if err := d.broadcaster.Broadcast(ctx, name, ev); err != nil {
		d.logger.Warn("broadcast failed", zap.String("event", name), zap.Error(err))
	}
}

// enter pushes name onto the firing stack.
func (d *Dispatcher) enter(name string) {
	d.mu.Lock()
	d.firing = append(d.firing, name)
	d.mu.Unlock()
}

// leave pops the firing stack.
func (d *Dispatcher) leave() {
	d.mu.Lock()
	if n := len(d.firing); n > 0 {
		d.firing = d.firing[:n-1]
	}
	d.mu.Unlock()
}
