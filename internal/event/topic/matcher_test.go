package topic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Add(t *testing.T) {
	m := NewMatcher()

	m.Add(Topic("user.*"))
	m.Add(Topic("*.failed"))

	assert.Equal(t, []Topic{"user.*", "*.failed"}, m.patterns)
	assert.Equal(t, []Topic{"user.*"}, m.Match(Topic("user.created")))
}

func TestMatcher_Add_IgnoresExactAndEmpty(t *testing.T) {
	m := NewMatcher()

	m.Add(Topic(""))
	m.Add(Topic("user.created"))

	assert.Empty(t, m.patterns)
}

func TestMatcher_Add_Duplicate(t *testing.T) {
	m := NewMatcher()

	m.Add(Topic("user.*"))
	m.Add(Topic("order.*"))
	m.Add(Topic("user.*"))

	assert.Equal(t, []Topic{"user.*", "order.*"}, m.patterns)
}

func TestMatcher_Remove(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("a.*"))
	m.Add(Topic("b.*"))
	m.Add(Topic("c.*"))

	m.Remove(Topic("b.*"))
	m.Remove(Topic("missing.*"))

	assert.Equal(t, []Topic{"a.*", "c.*"}, m.patterns)
	assert.Empty(t, m.Match(Topic("b.x")))

	// Index stays consistent after the shift.
	m.Remove(Topic("c.*"))
	assert.Equal(t, []Topic{"a.*"}, m.patterns)
	assert.Equal(t, map[Topic]int{"a.*": 0}, m.index)
}

func TestMatcher_Match_RegistrationOrder(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("*.created"))
	m.Add(Topic("bar.*"))
	m.Add(Topic("user.*"))

	matches := m.Match(Topic("user.created"))
	require.Len(t, matches, 2)
	assert.Equal(t, []Topic{"*.created", "user.*"}, matches)

	assert.Empty(t, m.Match(Topic("order.placed")))
}

func TestMatcher_Concurrent(t *testing.T) {
	m := NewMatcher()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Add(Topic("load.*"))
		}()
		go func() {
			defer wg.Done()
			_ = m.Match(Topic("load.test"))
		}()
	}
	wg.Wait()

	assert.Len(t, m.patterns, 1)
}
