package lua

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/container"
	"github.com/teratic/eventbridge/internal/event"
)

// Host loads scripts into their own sandboxed states and lets them register
// listeners on a dispatcher through the events module.
type Host struct {
	dispatcher *event.Dispatcher
	resolver   container.Container
	logger     *zap.Logger
	stateOpts  []StateOption

	mu        sync.Mutex
	states    []*State
	listeners []hostListener
	closed    bool
}

// hostListener records a registration made by a script.
type hostListener struct {
	state    *State
	name     string
	listener any
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithResolver exposes a container to scripts through the registry module.
func WithResolver(c container.Container) HostOption {
	return func(h *Host) {
		h.resolver = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithStateOptions sets the options every script state is created with.
func WithStateOptions(opts ...StateOption) HostOption {
	return func(h *Host) {
		h.stateOpts = append(h.stateOpts, opts...)
	}
}

// NewHost creates a host registering script listeners on d.
func NewHost(d *event.Dispatcher, opts ...HostOption) *Host {
	h := &Host{
		dispatcher: d,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadFile runs a script file in a new state. If the script fails, the
// listeners it registered are removed and the state is closed.
func (h *Host) LoadFile(ctx context.Context, path string) error {
	return h.load(ctx, filepath.Base(path), func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// LoadString runs a script chunk in a new state.
func (h *Host) LoadString(ctx context.Context, name, code string) error {
	return h.load(ctx, name, func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func (h *Host) load(ctx context.Context, name string, run func(*State) error) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return &ScriptError{Script: name, Err: ErrStateClosed}
	}

	s, err := NewState(name, h.stateOpts...)
	if err != nil {
		return err
	}
	if err := h.installModules(s); err != nil {
		s.Close()
		return err
	}

	h.mu.Lock()
	h.states = append(h.states, s)
	h.mu.Unlock()

	if err := run(s); err != nil {
		h.release(s)
		h.logger.Warn("script failed", zap.String("script", name), zap.Error(err))
		return err
	}
	h.logger.Info("script loaded", zap.String("script", name))
	return nil
}

// Scripts returns the names of the loaded scripts in load order.
func (h *Host) Scripts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, len(h.states))
	for i, s := range h.states {
		names[i] = s.Name()
	}
	return names
}

// Close removes every listener registered by scripts and closes their states.
func (h *Host) Close() error {
	h.mu.Lock()
	states := h.states
	h.states = nil
	h.closed = true
	h.mu.Unlock()

	var errs []error
	for _, s := range states {
		h.removeListeners(s)
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// release unloads a single state.
func (h *Host) release(s *State) {
	h.removeListeners(s)
	s.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, st := range h.states {
		if st == s {
			h.states = append(h.states[:i], h.states[i+1:]...)
			break
		}
	}
}

func (h *Host) track(s *State, name string, l any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, hostListener{state: s, name: name, listener: l})
}

// untrack drops the records for name after the dispatcher forgot it.
func (h *Host) untrack(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.listeners[:0]
	for _, hl := range h.listeners {
		if hl.name != name {
			kept = append(kept, hl)
		}
	}
	h.listeners = kept
}

func (h *Host) removeListeners(s *State) {
	h.mu.Lock()
	var mine []hostListener
	kept := h.listeners[:0]
	for _, hl := range h.listeners {
		if hl.state == s {
			mine = append(mine, hl)
		} else {
			kept = append(kept, hl)
		}
	}
	h.listeners = kept
	h.mu.Unlock()

	for _, hl := range mine {
		h.dispatcher.RemoveListener(hl.name, hl.listener)
	}
}

// checkFunction returns the function at index n or raises a Lua error.
func checkFunction(L *lua.LState, n int) *lua.LFunction {
	fn, ok := L.Get(n).(*lua.LFunction)
	if !ok {
		L.ArgError(n, ErrNotFunction.Error())
	}
	return fn
}
