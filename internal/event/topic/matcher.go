package topic

import "sync"

// Matcher holds a set of wildcard patterns in the order they were first added.
// It is safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	patterns []Topic
	index    map[Topic]int
}

// NewMatcher creates a new empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		index: make(map[Topic]int),
	}
}

// Add registers a pattern. Adding a pattern twice keeps its original position.
// Empty topics and topics without a wildcard are ignored.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" || !pattern.IsWildcard() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index[pattern]; exists {
		return
	}
	m.index[pattern] = len(m.patterns)
	m.patterns = append(m.patterns, pattern)
}

// Remove unregisters a pattern.
func (m *Matcher) Remove(pattern Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, exists := m.index[pattern]
	if !exists {
		return
	}
	m.patterns = append(m.patterns[:idx], m.patterns[idx+1:]...)
	delete(m.index, pattern)
	for i := idx; i < len(m.patterns); i++ {
		m.index[m.patterns[i]] = i
	}
}

// Match returns the registered patterns matching the event topic,
// in registration order.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Topic
	for _, p := range m.patterns {
		if eventTopic.Matches(p) {
			matches = append(matches, p)
		}
	}
	return matches
}
