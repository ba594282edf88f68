package event_test

import (
	"context"
	"fmt"

	"github.com/teratic/eventbridge/internal/event"
)

func Example() {
	d := event.New()
	ctx := context.Background()

	_ = d.Listen("order.placed", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		return fmt.Sprintf("invoice for %v", args[0]), nil
	}), 10)
	_ = d.Listen("order.*", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		return "audited", nil
	}), 0)

	responses, _ := d.Fire(ctx, "order.placed", "A-17")
	fmt.Println(responses)
	// Output: [invoice for A-17 audited]
}

func ExampleDispatcher_Until() {
	d := event.New()
	ctx := context.Background()

	_ = d.Listen("price.lookup", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		return nil, nil
	}), 10)
	_ = d.Listen("price.lookup", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		return 42, nil
	}), 0)

	price, _ := d.Until(ctx, "price.lookup", "sku-1")
	fmt.Println(price)
	// Output: 42
}

func ExampleDispatcher_AddListener() {
	d := event.New()
	ctx := context.Background()

	_ = d.AddListener("kernel.request", event.EventListenerFunc(
		func(ctx context.Context, ev event.Event, name string, _ *event.Dispatcher) error {
			fmt.Println(name, ev.Arguments())
			ev.StopPropagation()
			return nil
		}), 0)
	_ = d.Listen("kernel.request", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
		fmt.Println("never reached")
		return nil, nil
	}), -1)

	_, _ = d.Fire(ctx, "kernel.request", "/home")
	// Output: kernel.request [/home]
}
