package event

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

// Push queues payload to be fired under name by a later Flush.
func (d *Dispatcher) Push(name string, payload ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[name] = append(d.pending[name], slices.Clone(payload))
}

// Flush fires every payload pushed under name, oldest first, removing each
// before it is fired. It stops at the first listener error; payloads not
// yet fired stay queued.
func (d *Dispatcher) Flush(ctx context.Context, name string) error {
	flushed := 0
	for {
		payload, ok := d.shift(name)
		if !ok {
			break
		}
		if _, err := d.Fire(ctx, name, payload...); err != nil {
			return err
		}
		flushed++
	}
	if flushed > 0 {
		d.logger.Debug("flushed pushed events", zap.String("event", name), zap.Int("count", flushed))
	}
	return nil
}

// ForgetPushed discards every pushed payload.
func (d *Dispatcher) ForgetPushed() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.pending)
}

// Pushed returns the number of payloads waiting under name.
func (d *Dispatcher) Pushed(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.pending[name])
}

// shift removes and returns the oldest payload pushed under name.
func (d *Dispatcher) shift(name string) ([]any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	queue := d.pending[name]
	if len(queue) == 0 {
		return nil, false
	}
	payload := queue[0]
	if len(queue) == 1 {
		delete(d.pending, name)
	} else {
		d.pending[name] = queue[1:]
	}
	return payload, true
}
