package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single top-level call into a state.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua with sandboxing and call serialization.
//
// gopher-lua's LState is not goroutine-safe. State serializes top-level
// calls with a mutex. A call made while the state is already running on the
// same call chain (a Lua listener reached through events.fire from Lua) is
// recognised through its context and runs without re-acquiring the lock.
type State struct {
	L *lua.LState

	name    string
	bridge  *Bridge
	sandbox *Sandbox

	mu               sync.Mutex
	executionTimeout time.Duration
	closed           bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout of each top-level call. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.executionTimeout = d
		}
	}
}

// NewState creates a new sandboxed Lua state. name identifies the script in
// errors and logs.
func NewState(name string, opts ...StateOption) (*State, error) {
	s := &State{
		name:             name,
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	s.L = L
	s.bridge = NewBridge(L)
	s.sandbox = NewSandbox(L)
	if err := s.sandbox.Install(); err != nil {
		L.Close()
		return nil, &ScriptError{Script: name, Err: err}
	}
	return s, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenPackage(L)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, channel, coroutine.
}

// Name returns the script name.
func (s *State) Name() string {
	return s.name
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.Do(ctx, func(L *lua.LState, _ *Bridge) error {
		return L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.Do(ctx, func(L *lua.LState, _ *Bridge) error {
		return L.DoString(code)
	})
}

// Call calls a Lua function with Go arguments and returns its results
// converted to Go values. It returns an empty slice when the function
// returns nothing.
func (s *State) Call(ctx context.Context, fn *lua.LFunction, args ...any) ([]any, error) {
	var results []any
	err := s.Do(ctx, func(L *lua.LState, b *Bridge) error {
		var err error
		results, err = b.CallFunc(fn, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []any{}
	}
	return results, nil
}

// heldKey marks a context whose call chain already holds a state.
type heldKey struct{ s *State }

// Do runs fn against the underlying LState. All LState access from Go must
// go through Do. Failures are reported as *ScriptError.
func (s *State) Do(ctx context.Context, fn func(L *lua.LState, b *Bridge) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Value(heldKey{s}) != nil {
		return s.wrap(s.protect(fn))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.wrap(ErrStateClosed)
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(context.WithValue(ctx, heldKey{s}, true))
	defer s.L.RemoveContext()

	return s.wrap(s.protect(fn))
}

// protect executes fn with panic recovery.
func (s *State) protect(fn func(L *lua.LState, b *Bridge) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(s.L, s.bridge)
}

func (s *State) wrap(err error) error {
	if err == nil {
		return nil
	}
	var se *ScriptError
	if errors.As(err, &se) && se.Script == s.name {
		return err
	}
	return &ScriptError{Script: s.name, Err: err}
}

// RegisterModule installs funcs as a global table and makes it available
// to require.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) error {
	return s.Do(context.Background(), func(L *lua.LState, _ *Bridge) error {
		mod := L.SetFuncs(L.NewTable(), funcs)
		L.SetGlobal(name, mod)
		L.PreloadModule(name, func(L *lua.LState) int {
			L.Push(mod)
			return 1
		})
		s.sandbox.Allow(name)
		return nil
	})
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. After Close every call returns ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
