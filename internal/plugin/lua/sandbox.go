package lua

import (
	"errors"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what a script can load.
type Sandbox struct {
	L *lua.LState

	mu      sync.RWMutex
	allowed map[string]bool
}

// builtinModules are the standard modules scripts may require.
var builtinModules = []string{"string", "table", "math"}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	allowed := make(map[string]bool, len(builtinModules))
	for _, m := range builtinModules {
		allowed[m] = true
	}
	return &Sandbox{L: L, allowed: allowed}
}

// Install removes the loaders that reach the filesystem or compile
// arbitrary strings, and replaces require with a whitelist.
func (s *Sandbox) Install() error {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	return s.installSafeRequire()
}

// Allow lets scripts require a module.
func (s *Sandbox) Allow(module string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed[module] = true
}

// Allowed reports whether scripts may require module.
func (s *Sandbox) Allowed(module string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allowed[module]
}

// installSafeRequire clears package.path and package.cpath so nothing is
// loaded from disk, then wraps require with the whitelist.
func (s *Sandbox) installSafeRequire() error {
	pkg, ok := s.L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return errors.New("package library is not open")
	}
	s.L.SetField(pkg, "path", lua.LString(""))
	s.L.SetField(pkg, "cpath", lua.LString(""))

	original := s.L.GetGlobal("require")
	if original.Type() != lua.LTFunction {
		return errors.New("require is not available")
	}

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.Allowed(name) {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
	return nil
}
