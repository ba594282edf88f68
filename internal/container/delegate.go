package container

import "sync"

// Container is the lookup capability a delegate must provide.
type Container interface {
	// Has reports whether the container can produce an entry for key.
	Has(key string) bool

	// Get returns the entry for key.
	Get(key string) (any, error)
}

// DelegateSet is an ordered list of fallback containers. It is meant to be
// embedded by a container that consults its delegates on a local miss.
// The zero value is ready to use.
//
// A container may be added as a delegate of itself, directly or through
// a chain; lookups through such a cycle do not terminate.
type DelegateSet struct {
	mu   sync.RWMutex
	list []Container
}

// AddDelegate appends c to the delegate list. Duplicates are kept.
func (d *DelegateSet) AddDelegate(c Container) {
	if c == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.list = append(d.list, c)
}

// Delegates returns the delegates in insertion order.
func (d *DelegateSet) Delegates() []Container {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Container, len(d.list))
	copy(result, d.list)
	return result
}

// HasInDelegates reports whether any delegate has key.
// Delegates are asked in order and the scan stops at the first yes.
func (d *DelegateSet) HasInDelegates(key string) bool {
	for _, c := range d.Delegates() {
		if c.Has(key) {
			return true
		}
	}
	return false
}

// GetFromDelegates returns the entry from the first delegate that has key.
// Has and Get are separate calls on the delegate; a delegate that changes
// between them answers with whatever its Get returns.
func (d *DelegateSet) GetFromDelegates(key string) (any, error) {
	for _, c := range d.Delegates() {
		if c.Has(key) {
			return c.Get(key)
		}
	}
	return nil, &NotFoundError{Key: key}
}
