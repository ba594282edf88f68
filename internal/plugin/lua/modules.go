package lua

import (
	"context"
	"errors"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/container"
)

// installModules registers the events and registry modules in s.
func (h *Host) installModules(s *State) error {
	if err := s.RegisterModule("events", h.eventsModule(s)); err != nil {
		return err
	}
	return s.RegisterModule("registry", h.registryModule(s))
}

// contextOf returns the context of the call that is running L.
func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (h *Host) eventsModule(s *State) map[string]lua.LGFunction {
	d := h.dispatcher
	b := s.bridge

	return map[string]lua.LGFunction{
		// events.listen(name, fn [, priority])
		"listen": func(L *lua.LState) int {
			name := L.CheckString(1)
			l := NewListener(s, checkFunction(L, 2))
			priority := L.OptInt(3, 0)
			if err := d.Listen(name, l, priority); err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			h.track(s, name, l)
			h.logger.Debug("script listener registered",
				zap.String("script", s.Name()), zap.String("event", name), zap.Int("priority", priority))
			return 0
		},

		// events.subscribe(name, fn [, priority])
		"subscribe": func(L *lua.LState) int {
			name := L.CheckString(1)
			l := NewEventListener(s, checkFunction(L, 2))
			priority := L.OptInt(3, 0)
			if err := d.AddListener(name, l, priority); err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			h.track(s, name, l)
			h.logger.Debug("script subscriber registered",
				zap.String("script", s.Name()), zap.String("event", name), zap.Int("priority", priority))
			return 0
		},

		// events.forget(name)
		"forget": func(L *lua.LState) int {
			name := L.CheckString(1)
			d.Forget(name)
			h.untrack(name)
			return 0
		},

		// events.fire(name, ...) -> responses
		"fire": func(L *lua.LState) int {
			name := L.CheckString(1)
			responses, err := d.Fire(contextOf(L), name, b.Args(L, 2)...)
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			L.Push(b.ToLuaValue(responses))
			return 1
		},

		// events.fire_until(name, ...) -> first non-nil response
		"fire_until": func(L *lua.LState) int {
			name := L.CheckString(1)
			response, err := d.Until(contextOf(L), name, b.Args(L, 2)...)
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			L.Push(b.ToLuaValue(response))
			return 1
		},

		// events.push(name, ...)
		"push": func(L *lua.LState) int {
			d.Push(L.CheckString(1), b.Args(L, 2)...)
			return 0
		},

		// events.flush(name)
		"flush": func(L *lua.LState) int {
			if err := d.Flush(contextOf(L), L.CheckString(1)); err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		},

		// events.firing() -> name or nil
		"firing": func(L *lua.LState) int {
			if name := d.Firing(); name != "" {
				L.Push(lua.LString(name))
			} else {
				L.Push(lua.LNil)
			}
			return 1
		},

		// events.has(name) -> bool
		"has": func(L *lua.LState) int {
			L.Push(lua.LBool(d.HasListeners(L.CheckString(1))))
			return 1
		},
	}
}

// delegating is implemented by containers that can also answer through
// their delegates.
type delegating interface {
	HasInDelegates(key string) bool
}

func (h *Host) registryModule(s *State) map[string]lua.LGFunction {
	b := s.bridge

	return map[string]lua.LGFunction{
		// registry.get(key) -> value | nil, message
		"get": func(L *lua.LState) int {
			key := L.CheckString(1)
			if h.resolver == nil {
				L.Push(lua.LNil)
				L.Push(lua.LString("no registry configured"))
				return 2
			}
			v, err := h.resolver.Get(key)
			if err != nil {
				if !errors.Is(err, container.ErrNotFound) {
					h.logger.Warn("registry lookup failed", zap.String("key", key), zap.Error(err))
				}
				L.Push(lua.LNil)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			L.Push(b.ToLuaValue(v))
			return 1
		},

		// registry.has(key) -> bool
		"has": func(L *lua.LState) int {
			key := L.CheckString(1)
			found := false
			if h.resolver != nil {
				found = h.resolver.Has(key)
				if dl, ok := h.resolver.(delegating); ok && !found {
					found = dl.HasInDelegates(key)
				}
			}
			L.Push(lua.LBool(found))
			return 1
		},
	}
}
