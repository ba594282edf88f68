package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericEvent(t *testing.T) {
	ev := NewGenericEvent("subject", "a", 2)

	assert.Equal(t, []any{"a", 2}, ev.Arguments())
	assert.Equal(t, 2, ev.Len())
	assert.Equal(t, "a", ev.Argument(0))
	assert.Nil(t, ev.Argument(5))
	assert.Nil(t, ev.Argument(-1))
	assert.False(t, ev.IsPropagationStopped())

	ev.StopPropagation()
	assert.True(t, ev.IsPropagationStopped())
}

// userEvent embeds Propagator to become an Event.
type userEvent struct {
	Propagator
	Name string
}

func (e *userEvent) Arguments() []any { return []any{e.Name} }

func TestPropagator_Embedded(t *testing.T) {
	var ev Event = &userEvent{Name: "ann"}

	assert.False(t, ev.IsPropagationStopped())
	ev.StopPropagation()
	assert.True(t, ev.IsPropagationStopped())
}

func TestEventFor(t *testing.T) {
	custom := &userEvent{Name: "ann"}

	assert.Same(t, custom, eventFor("e", []any{custom, "extra"}))

	wrapped := eventFor("e", []any{"x"})
	ge, ok := wrapped.(*GenericEvent)
	if assert.True(t, ok) {
		assert.Equal(t, "e", ge.Subject)
		assert.Equal(t, []any{"x"}, ge.Arguments())
	}
}

func TestSameListener(t *testing.T) {
	a := &tagged{id: 1}
	b := &tagged{id: 1}
	fn := func(context.Context, ...any) (any, error) { return nil, nil }
	var closures []ListenerFunc
	for i := 0; i < 2; i++ {
		i := i
		closures = append(closures, func(context.Context, ...any) (any, error) { return i, nil })
	}

	tests := []struct {
		name string
		x, y any
		want bool
	}{
		{"same pointer", a, a, true},
		{"distinct pointers", a, b, false},
		{"same func", ListenerFunc(fn), ListenerFunc(fn), true},
		{"func type differs", ListenerFunc(fn), fn, false},
		{"closure matches itself", closures[0], closures[0], true},
		{"closures from one literal", closures[0], closures[1], false},
		{"strings", "m@Handle", "m@Handle", true},
		{"method refs", MethodRef{a, "X"}, MethodRef{a, "X"}, true},
		{"method refs differ", MethodRef{a, "X"}, MethodRef{a, "Y"}, false},
		{"uncomparable", []int{1}, []int{1}, false},
		{"nil", nil, nil, true},
		{"nil vs value", nil, a, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameListener(tt.x, tt.y))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "positional", KindPositional.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
