package event

import "context"

// ShouldBroadcast marks a payload that is delivered to a Broadcaster
// before listeners run.
type ShouldBroadcast interface {
	// BroadcastOn returns the channels the event is broadcast on.
	BroadcastOn() []string
}

// Broadcaster delivers broadcastable events outside the process.
type Broadcaster interface {
	Broadcast(ctx context.Context, name string, ev ShouldBroadcast) error
}

// BroadcasterFunc is a function adapter for Broadcaster.
type BroadcasterFunc func(ctx context.Context, name string, ev ShouldBroadcast) error

// Broadcast implements the Broadcaster interface.
func (f BroadcasterFunc) Broadcast(ctx context.Context, name string, ev ShouldBroadcast) error {
	return f(ctx, name, ev)
}

// NopBroadcaster discards every event.
type NopBroadcaster struct{}

// Broadcast implements the Broadcaster interface.
func (NopBroadcaster) Broadcast(context.Context, string, ShouldBroadcast) error {
	return nil
}
