package container

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Factory produces an entry. It receives the registry it is bound in so it
// can resolve its own dependencies.
type Factory func(r *Registry) (any, error)

type entryKind int

const (
	kindValue entryKind = iota
	kindFactory
	kindSingleton
)

// entry is one locally bound key.
type entry struct {
	kind    entryKind
	factory Factory

	mu    sync.Mutex
	value any
	built bool
}

// resolve returns the entry value, running the factory when needed.
// It is called without the registry lock held.
func (e *entry) resolve(r *Registry) (any, error) {
	switch e.kind {
	case kindFactory:
		return e.factory(r)
	case kindSingleton:
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.built {
			return e.value, nil
		}
		v, err := e.factory(r)
		if err != nil {
			return nil, err
		}
		e.value, e.built = v, true
		return v, nil
	default:
		return e.value, nil
	}
}

// Registry is a key/value container that falls back to its delegates when
// a key is not bound locally. It is safe for concurrent use.
type Registry struct {
	DelegateSet

	mu      sync.RWMutex
	entries map[string]*entry
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for delegate lookups.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Set binds key to a fixed value, replacing any previous binding.
func (r *Registry) Set(key string, value any) {
	r.bind(key, &entry{kind: kindValue, value: value})
}

// SetAll binds every key of values.
func (r *Registry) SetAll(values map[string]any) {
	for k, v := range values {
		r.Set(k, v)
	}
}

// Factory binds key to fn. Every Get runs fn again.
func (r *Registry) Factory(key string, fn Factory) {
	r.bind(key, &entry{kind: kindFactory, factory: fn})
}

// Singleton binds key to fn. The first successful Get runs fn and its
// result is returned from then on. A failed build is retried on the next Get.
//
// fn must not Get its own key.
func (r *Registry) Singleton(key string, fn Factory) {
	r.bind(key, &entry{kind: kindSingleton, factory: fn})
}

func (r *Registry) bind(key string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = e
}

// Remove drops the local binding for key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Keys returns the locally bound keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is bound locally. Delegates are not consulted,
// which lets two registries delegate to each other.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Get resolves key locally, then through the delegates.
//
// Failures while producing an entry are returned as *ResolutionError.
// A key unknown everywhere yields *NotFoundError.
func (r *Registry) Get(key string) (any, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if ok {
		v, err := e.resolve(r)
		if err != nil {
			return nil, wrapResolution(key, err)
		}
		return v, nil
	}

	if !r.HasInDelegates(key) {
		return nil, &NotFoundError{Key: key}
	}

	r.logger.Debug("resolving entry from delegates", zap.String("key", key))
	v, err := r.GetFromDelegates(key)
	if err != nil {
		return nil, wrapResolution(key, err)
	}
	return v, nil
}
