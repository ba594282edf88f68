package event

import (
	"slices"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/teratic/eventbridge/internal/event/topic"
)

// registry stores listeners in priority buckets keyed by event name or
// wildcard pattern. It is thread-safe for concurrent access.
//
// The merged, sorted view per dispatched name is derived from the buckets
// and kept in a bounded LRU until a mutation touches a contributing key.
type registry struct {
	mu      sync.RWMutex
	buckets map[string]map[int][]*Registration
	matcher *topic.Matcher
	sorted  *lru.Cache[string, []*Registration]
	seq     uint64
}

func newRegistry(cacheSize int) *registry {
	sorted, err := lru.New[string, []*Registration](cacheSize)
	if err != nil {
		// Only a non-positive size fails.
		sorted, _ = lru.New[string, []*Registration](defaultCacheSize)
	}
	return &registry{
		buckets: make(map[string]map[int][]*Registration),
		matcher: topic.NewMatcher(),
		sorted:  sorted,
	}
}

// add appends reg to the bucket for its name and priority.
func (r *registry) add(reg *Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	reg.seq = r.seq

	byPriority := r.buckets[reg.name]
	if byPriority == nil {
		byPriority = make(map[int][]*Registration)
		r.buckets[reg.name] = byPriority
	}
	byPriority[reg.priority] = append(byPriority[reg.priority], reg)

	r.matcher.Add(topic.Topic(reg.name))
	r.invalidate(reg.name)
}

// remove deletes the first registration under exactly name whose original
// listener equals l. Buckets are scanned highest priority first.
func (r *registry) remove(name string, l any) (*Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPriority := r.buckets[name]
	for _, priority := range priorities(byPriority) {
		regs := byPriority[priority]
		for i, reg := range regs {
			if !reg.matches(l) {
				continue
			}
			regs = slices.Delete(regs, i, i+1)
			if len(regs) == 0 {
				delete(byPriority, priority)
			} else {
				byPriority[priority] = regs
			}
			if len(byPriority) == 0 {
				r.drop(name)
			}
			r.invalidate(name)
			return reg, true
		}
	}
	return nil, false
}

// forget deletes every registration under exactly name.
func (r *registry) forget(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, regs := range r.buckets[name] {
		n += len(regs)
	}
	if n == 0 {
		return 0
	}
	r.drop(name)
	r.invalidate(name)
	return n
}

// priority returns the priority of the first registration of l under name.
func (r *registry) priority(name string, l any) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPriority := r.buckets[name]
	for _, priority := range priorities(byPriority) {
		for _, reg := range byPriority[priority] {
			if reg.matches(l) {
				return priority, true
			}
		}
	}
	return 0, false
}

// has reports whether name has listeners of its own or through a matching
// wildcard pattern.
func (r *registry) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.buckets[name]; ok {
		return true
	}
	return len(r.matcher.Match(topic.Topic(name))) > 0
}

// hasAny reports whether at least one listener is registered.
func (r *registry) hasAny() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.buckets) > 0
}

// keys returns every registered name and pattern, sorted.
func (r *registry) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.buckets))
	for k := range r.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// listeners returns the merged view for name: the exact bucket plus every
// matching wildcard bucket, by priority descending then registration order.
// The returned slice is a copy.
func (r *registry) listeners(name string) []*Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.sorted.Get(name); ok {
		return slices.Clone(cached)
	}

	var merged []*Registration
	for _, regs := range r.buckets[name] {
		merged = append(merged, regs...)
	}
	for _, pattern := range r.matcher.Match(topic.Topic(name)) {
		if string(pattern) == name {
			continue
		}
		for _, regs := range r.buckets[string(pattern)] {
			merged = append(merged, regs...)
		}
	}
	sortRegistrations(merged)

	r.sorted.Add(name, merged)
	return slices.Clone(merged)
}

// drop removes every bucket under name. Caller holds the lock.
func (r *registry) drop(name string) {
	delete(r.buckets, name)
	r.matcher.Remove(topic.Topic(name))
}

// invalidate evicts every cached view key contributed to. Caller holds the lock.
func (r *registry) invalidate(key string) {
	k := topic.Topic(key)
	if !k.IsWildcard() {
		r.sorted.Remove(key)
		return
	}
	for _, name := range r.sorted.Keys() {
		if topic.Topic(name).Matches(k) {
			r.sorted.Remove(name)
		}
	}
}

// priorities returns the bucket priorities, highest first.
func priorities(byPriority map[int][]*Registration) []int {
	ps := make([]int, 0, len(byPriority))
	for p := range byPriority {
		ps = append(ps, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ps)))
	return ps
}

// sortRegistrations orders by priority descending, then registration order.
func sortRegistrations(regs []*Registration) {
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].priority != regs[j].priority {
			return regs[i].priority > regs[j].priority
		}
		return regs[i].seq < regs[j].seq
	})
}
