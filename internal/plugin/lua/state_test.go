package lua

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s, err := NewState("test.lua", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateDoString(t *testing.T) {
	s := newTestState(t)

	require.NoError(t, s.DoString(context.Background(), `x = 1 + 1`))

	var got glua.LValue
	require.NoError(t, s.Do(context.Background(), func(L *glua.LState, _ *Bridge) error {
		got = L.GetGlobal("x")
		return nil
	}))
	assert.Equal(t, glua.LNumber(2), got)
}

func TestStateSyntaxError(t *testing.T) {
	s := newTestState(t)

	err := s.DoString(context.Background(), `this is not lua`)

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "test.lua", se.Script)
}

func TestStateCall(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.DoString(context.Background(), `function add(a, b) return a + b, "sum" end`))

	var fn *glua.LFunction
	require.NoError(t, s.Do(context.Background(), func(L *glua.LState, _ *Bridge) error {
		fn = L.GetGlobal("add").(*glua.LFunction)
		return nil
	}))

	results, err := s.Call(context.Background(), fn, 2, 3)

	require.NoError(t, err)
	assert.Equal(t, []any{int64(5), "sum"}, results)
}

func TestStateCallNoResults(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.DoString(context.Background(), `function noop() end`))

	var fn *glua.LFunction
	require.NoError(t, s.Do(context.Background(), func(L *glua.LState, _ *Bridge) error {
		fn = L.GetGlobal("noop").(*glua.LFunction)
		return nil
	}))

	results, err := s.Call(context.Background(), fn)

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestStateExecutionTimeout(t *testing.T) {
	s := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := s.DoString(context.Background(), `while true do end`)

	require.Error(t, err)
	var se *ScriptError
	assert.ErrorAs(t, err, &se)
}

func TestStateClosed(t *testing.T) {
	s, err := NewState("closed.lua")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
}

func TestStateRecoversPanics(t *testing.T) {
	s := newTestState(t)

	err := s.Do(context.Background(), func(*glua.LState, *Bridge) error {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lua panic: boom")
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := newTestState(t)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		t.Run(name, func(t *testing.T) {
			err := s.DoString(context.Background(), name+`("x")`)
			assert.Error(t, err)
		})
	}
}

func TestSandboxLibraries(t *testing.T) {
	s := newTestState(t)

	require.NoError(t, s.DoString(context.Background(), `
		assert(string.upper("a") == "A")
		assert(math.max(1, 2) == 2)
		assert(#table.concat({"a", "b"}) == 2)
		assert(io == nil)
		assert(os == nil)
		assert(debug == nil)
	`))
}

func TestSandboxRequire(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.RegisterModule("greeter", map[string]glua.LGFunction{
		"hello": func(L *glua.LState) int {
			L.Push(glua.LString("hi"))
			return 1
		},
	}))

	require.NoError(t, s.DoString(context.Background(), `
		local s = require("string")
		assert(s.lower("A") == "a")
		local g = require("greeter")
		assert(g.hello() == "hi")
		assert(greeter.hello() == "hi")
	`))

	err := s.DoString(context.Background(), `require("os")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `module "os" is not available`)
	assert.False(t, s.sandbox.Allowed("os"))
	assert.True(t, s.sandbox.Allowed("greeter"))
}
