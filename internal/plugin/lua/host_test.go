package lua

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teratic/eventbridge/internal/container"
	"github.com/teratic/eventbridge/internal/event"
)

func newTestHost(t *testing.T, opts ...HostOption) (*Host, *event.Dispatcher) {
	t.Helper()
	d := event.New()
	h := NewHost(d, opts...)
	t.Cleanup(func() { h.Close() })
	return h, d
}

func TestHost_PositionalListener(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, h.LoadString(ctx, "greet.lua", `
		events.listen("user.created", function(name, age)
			return "hello " .. name .. " " .. age
		end, 5)
	`))

	responses, err := d.Fire(ctx, "user.created", "ann", 30)

	require.NoError(t, err)
	assert.Equal(t, []any{"hello ann 30"}, responses)
	assert.Equal(t, []string{"greet.lua"}, h.Scripts())
}

func TestHost_FalseStopsPropagation(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()
	called := false
	require.NoError(t, d.Listen("e", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		called = true
		return nil, nil
	}), 0))

	require.NoError(t, h.LoadString(ctx, "stop.lua", `
		events.listen("e", function() return 1 end, 10)
		events.listen("e", function() return false end, 5)
	`))

	responses, err := d.Fire(ctx, "e")

	require.NoError(t, err)
	assert.Equal(t, []any{int64(1)}, responses)
	assert.False(t, called)
}

func TestHost_ObjectStyleListener(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()
	var reached []string
	require.NoError(t, d.AddListener("order.*", event.EventListenerFunc(
		func(ctx context.Context, ev event.Event, name string, _ *event.Dispatcher) error {
			reached = append(reached, name)
			return nil
		}), -1))

	require.NoError(t, h.LoadString(ctx, "guard.lua", `
		seen = {}
		events.subscribe("order.*", function(ev)
			table.insert(seen, ev.name .. ":" .. ev.args[1])
			if ev.args[1] == "blocked" then ev.stop() end
			assert(ev.stopped() == (ev.args[1] == "blocked"))
		end)
	`))

	_, err := d.Fire(ctx, "order.placed", "ok")
	require.NoError(t, err)
	_, err = d.Fire(ctx, "order.placed", "blocked")
	require.NoError(t, err)

	assert.Equal(t, []string{"order.placed"}, reached)
}

func TestHost_FireFromLua(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()
	require.NoError(t, d.Listen("price", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		return args[0].(int64) * 2, nil
	}), 0))

	require.NoError(t, h.LoadString(ctx, "caller.lua", `
		local r = events.fire("price", 21)
		assert(r[1] == 42, "got " .. tostring(r[1]))
		assert(events.fire_until("price", 5) == 10)
		assert(events.has("price"))
		assert(not events.has("nothing"))
		assert(events.firing() == nil)
	`))
}

func TestHost_ReentrantSameState(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, h.LoadString(ctx, "chain.lua", `
		events.listen("outer", function(x)
			assert(events.firing() == "outer")
			local inner = events.fire("inner", x)
			return "outer(" .. inner[1] .. ")"
		end)
		events.listen("inner", function(x)
			assert(events.firing() == "inner")
			return "inner(" .. x .. ")"
		end)
	`))

	responses, err := d.Fire(ctx, "outer", "v")

	require.NoError(t, err)
	assert.Equal(t, []any{"outer(inner(v))"}, responses)
}

func TestHost_ReentrantAcrossStates(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, h.LoadString(ctx, "a.lua", `
		events.listen("ping", function(n)
			if n >= 4 then return n end
			return events.fire_until("pong", n + 1)
		end)
	`))
	require.NoError(t, h.LoadString(ctx, "b.lua", `
		events.listen("pong", function(n)
			return events.fire_until("ping", n + 1)
		end)
	`))

	response, err := d.Until(ctx, "ping", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(4), response)
}

func TestHost_PushFlushForget(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, h.LoadString(ctx, "queue.lua", `
		got = {}
		events.listen("job", function(id) table.insert(got, id) end)
		events.push("job", "a")
		events.push("job", "b")
	`))
	assert.Equal(t, 2, d.Pushed("job"))

	require.NoError(t, h.LoadString(ctx, "flush.lua", `
		events.flush("job")
		events.forget("job")
	`))

	assert.Equal(t, 0, d.Pushed("job"))
	assert.False(t, d.HasListeners("job"))
}

func TestHost_Registry(t *testing.T) {
	root := container.NewRegistry()
	fallback := container.NewRegistry()
	root.Set("app.name", "bridge")
	fallback.Set("db.dsn", "memory")
	root.AddDelegate(fallback)

	h, _ := newTestHost(t, WithResolver(root))

	require.NoError(t, h.LoadString(context.Background(), "registry.lua", `
		assert(registry.get("app.name") == "bridge")
		assert(registry.get("db.dsn") == "memory")
		assert(registry.has("app.name"))
		assert(registry.has("db.dsn"))
		assert(not registry.has("missing"))
		local v, msg = registry.get("missing")
		assert(v == nil)
		assert(string.find(msg, "missing", 1, true))
	`))
}

func TestHost_RegistryWithoutResolver(t *testing.T) {
	h, _ := newTestHost(t)

	require.NoError(t, h.LoadString(context.Background(), "noreg.lua", `
		local v, msg = registry.get("x")
		assert(v == nil and msg ~= nil)
		assert(not registry.has("x"))
	`))
}

func TestHost_FailedScriptIsUnloaded(t *testing.T) {
	h, d := newTestHost(t)

	err := h.LoadString(context.Background(), "broken.lua", `
		events.listen("e", function() return 1 end)
		error("setup failed")
	`)

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "broken.lua", se.Script)
	assert.False(t, d.HasListeners("e"))
	assert.Empty(t, h.Scripts())
}

func TestHost_ListenerErrors(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, h.LoadString(ctx, "raise.lua", `
		events.listen("e", function() error("listener broke") end)
	`))

	_, err := d.Fire(ctx, "e")

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "listener broke")
}

func TestHost_GoErrorSurfacesInLua(t *testing.T) {
	h, d := newTestHost(t)
	ctx := context.Background()
	require.NoError(t, d.Listen("fails", event.ListenerFunc(func(context.Context, ...any) (any, error) {
		return nil, errors.New("go side failed")
	}), 0))

	err := h.LoadString(ctx, "call.lua", `
		local ok, msg = pcall(events.fire, "fails")
		assert(not ok)
		assert(string.find(msg, "go side failed", 1, true))
	`)

	require.NoError(t, err)
}

func TestHost_BadArguments(t *testing.T) {
	h, _ := newTestHost(t)

	err := h.LoadString(context.Background(), "bad.lua", `events.listen("e", 42)`)
	require.Error(t, err)

	err = h.LoadString(context.Background(), "empty.lua", `events.listen("", function() end)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), event.ErrInvalidEventName.Error())
}

func TestHost_CloseRemovesListeners(t *testing.T) {
	d := event.New()
	h := NewHost(d)
	require.NoError(t, h.LoadString(context.Background(), "x.lua", `
		events.listen("a", function() end)
		events.subscribe("b", function(ev) end)
	`))
	require.True(t, d.HasAnyListeners())

	require.NoError(t, h.Close())

	assert.False(t, d.HasAnyListeners())
	err := h.LoadString(context.Background(), "late.lua", `x = 1`)
	assert.ErrorIs(t, err, ErrStateClosed)
}

func TestHost_LoadFile(t *testing.T) {
	h, d := newTestHost(t)
	path := filepath.Join(t.TempDir(), "file.lua")
	require.NoError(t, os.WriteFile(path, []byte(`events.listen("f", function() return "from file" end)`), 0o644))

	require.NoError(t, h.LoadFile(context.Background(), path))

	responses, err := d.Fire(context.Background(), "f")
	require.NoError(t, err)
	assert.Equal(t, []any{"from file"}, responses)
	assert.Equal(t, []string{"file.lua"}, h.Scripts())
}
