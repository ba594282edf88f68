// Package lua runs sandboxed Lua scripts whose functions listen to events.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Go-Lua type conversion bridge
//   - Lua functions as positional or object-style event listeners
//   - Per-call execution timeouts
//
// # Host
//
// A Host gives every script its own State and installs two modules:
//
//	events.listen(name, fn [, priority])     -- fn(...) gets the payload
//	events.subscribe(name, fn [, priority])  -- fn(ev) gets {name, args, stop, stopped}
//	events.forget(name)
//	events.fire(name, ...)                   -- returns the responses table
//	events.fire_until(name, ...)             -- returns the first non-nil response
//	events.push(name, ...)
//	events.flush(name)
//	events.firing()
//	events.has(name)
//
//	registry.get(key)                        -- value, or nil and a message
//	registry.has(key)
//
// A script listener that returns false stops propagation, as a Go listener
// would:
//
//	events.listen("order.placed", function(id)
//	    if id == nil then return false end
//	    return "ok " .. id
//	end, 10)
//
// Usage:
//
//	host := lua.NewHost(dispatcher, lua.WithResolver(registry))
//	defer host.Close()
//
//	if err := host.LoadFile(ctx, "listeners.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// LoadPaths loads everything Discover finds: the *.lua files of a
// directory, the init.lua of each subdirectory, glob matches and plain
// files, in that order.
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Opening only the base, package, string, table and math libraries
//   - Removing dofile, loadfile, load and loadstring
//   - Limiting require to the standard modules and the host modules
//
// # Bridge
//
// The Bridge provides bidirectional type conversion:
//
//	bridge := lua.NewBridge(L)
//
//	// Go to Lua
//	luaVal := bridge.ToLuaValue(map[string]any{
//	    "name":  "test",
//	    "count": 42,
//	})
//
//	// Lua to Go
//	goVal := bridge.ToGoValue(luaVal)
package lua
