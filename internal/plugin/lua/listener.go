package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/teratic/eventbridge/internal/event"
)

// Listener adapts a Lua function to event.Listener. The function receives
// the payload spread as arguments; its first return value is the response.
type Listener struct {
	state *State
	fn    *lua.LFunction
}

// NewListener creates a positional listener calling fn in state.
func NewListener(state *State, fn *lua.LFunction) *Listener {
	return &Listener{state: state, fn: fn}
}

// Handle implements event.Listener.
func (l *Listener) Handle(ctx context.Context, args ...any) (any, error) {
	results, err := l.state.Call(ctx, l.fn, args...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// String names the script the listener was defined in.
func (l *Listener) String() string {
	return "lua:" + l.state.Name()
}

// EventListener adapts a Lua function to event.EventListener. The function
// receives one table:
//
//	{ name = "user.created", args = {...}, stop = function, stopped = function }
type EventListener struct {
	state *State
	fn    *lua.LFunction
}

// NewEventListener creates an object-style listener calling fn in state.
func NewEventListener(state *State, fn *lua.LFunction) *EventListener {
	return &EventListener{state: state, fn: fn}
}

// HandleEvent implements event.EventListener.
func (l *EventListener) HandleEvent(ctx context.Context, ev event.Event, name string, _ *event.Dispatcher) error {
	return l.state.Do(ctx, func(L *lua.LState, b *Bridge) error {
		t := L.NewTable()
		t.RawSetString("name", lua.LString(name))
		t.RawSetString("args", b.ToLuaValue(ev.Arguments()))
		t.RawSetString("stop", L.NewFunction(func(L *lua.LState) int {
			ev.StopPropagation()
			return 0
		}))
		t.RawSetString("stopped", L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LBool(ev.IsPropagationStopped()))
			return 1
		}))

		L.Push(l.fn)
		L.Push(t)
		return L.PCall(1, 0, nil)
	})
}

// String names the script the listener was defined in.
func (l *EventListener) String() string {
	return "lua:" + l.state.Name()
}
