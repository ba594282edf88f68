package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PushFlush(t *testing.T) {
	d := New()
	var got [][]any
	require.NoError(t, d.Listen("report.ready", ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		got = append(got, args)
		return nil, nil
	}), 0))

	d.Push("report.ready", "p1")
	d.Push("report.ready", "p2", 2)
	assert.Equal(t, 2, d.Pushed("report.ready"))
	assert.Empty(t, got)

	require.NoError(t, d.Flush(context.Background(), "report.ready"))

	assert.Equal(t, [][]any{{"p1"}, {"p2", 2}}, got)
	assert.Equal(t, 0, d.Pushed("report.ready"))

	require.NoError(t, d.Flush(context.Background(), "report.ready"))
	assert.Len(t, got, 2)
}

func TestDispatcher_ForgetPushed(t *testing.T) {
	d := New()
	calls := 0
	require.NoError(t, d.Listen("e", ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		calls++
		return nil, nil
	}), 0))

	d.Push("e", 1)
	d.Push("other", 2)
	d.ForgetPushed()

	require.NoError(t, d.Flush(context.Background(), "e"))
	assert.Zero(t, calls)
	assert.Zero(t, d.Pushed("other"))
}

func TestDispatcher_FlushStopsOnError(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	require.NoError(t, d.Listen("e", ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		if args[0] == "bad" {
			return nil, boom
		}
		return nil, nil
	}), 0))

	d.Push("e", "bad")
	d.Push("e", "good")

	err := d.Flush(context.Background(), "e")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, d.Pushed("e"))
}

func TestDispatcher_PushCopiesPayload(t *testing.T) {
	d := New()
	payload := []any{"a"}
	d.Push("e", payload...)
	payload[0] = "mutated"

	var got any
	require.NoError(t, d.Listen("e", ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		got = args[0]
		return nil, nil
	}), 0))
	require.NoError(t, d.Flush(context.Background(), "e"))

	assert.Equal(t, "a", got)
}

func TestDispatcher_PushDuringFlush(t *testing.T) {
	d := New()
	var got []any
	require.NoError(t, d.Listen("e", ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		got = append(got, args[0])
		if args[0] == 1 {
			d.Push("e", 3)
		}
		return nil, nil
	}), 0))

	d.Push("e", 1)
	d.Push("e", 2)
	require.NoError(t, d.Flush(context.Background(), "e"))

	assert.Equal(t, []any{1, 2, 3}, got)
}
