// Package event provides a priority-ordered event dispatcher.
//
// Listeners are registered under an event name or a wildcard pattern, each
// with a signed priority. Firing an event runs its listeners synchronously,
// highest priority first, and collects their responses.
//
// # Architecture
//
//	                    ┌──────────────────────────────────────────┐
//	                    │               Dispatcher                  │
//	                    │  - Fire / Until / Dispatch                │
//	                    │  - Firing stack                           │
//	                    │  - Pushed events                          │
//	                    └──────────────────────────────────────────┘
//	                                      │
//	          ┌───────────────────────────┼───────────────────────────┐
//	          ▼                           ▼                           ▼
//	┌─────────────────┐         ┌─────────────────┐         ┌─────────────────┐
//	│    registry     │         │   Subscribers   │         │    Resolver     │
//	│  - Priority     │         │  - Method       │         │  - "key@Method" │
//	│    buckets      │         │    bindings     │         │    listeners    │
//	│  - Sorted LRU   │         └─────────────────┘         └─────────────────┘
//	└─────────────────┘
//
// # Event Names
//
// Names use dot notation. A name containing "*" is a pattern that matches
// any run of characters:
//
//	user.created   - exact name
//	user.*         - user.created, user.profile.updated
//	*.failed       - job.failed, mail.send.failed
//
// # Listener Styles
//
// Positional listeners receive the payload spread as arguments and may
// return a response:
//
//	d.Listen("user.created", event.ListenerFunc(func(ctx context.Context, args ...any) (any, error) {
//	    return "welcome mail queued", nil
//	}), 0)
//
// Object-style listeners receive one Event per dispatch, shared by every
// object-style listener of that dispatch:
//
//	d.AddListener("user.created", event.EventListenerFunc(
//	    func(ctx context.Context, ev event.Event, name string, d *event.Dispatcher) error {
//	        if len(ev.Arguments()) == 0 {
//	            ev.StopPropagation()
//	        }
//	        return nil
//	    }), 10)
//
// # Propagation
//
//   - A positional listener returning exactly false stops the dispatch.
//   - An object-style listener calling StopPropagation stops the dispatch.
//   - Until returns the first non-nil positional response.
//   - A listener error stops the dispatch and is returned unchanged.
//
// # Ordering
//
// Listeners fire by priority, highest first. Listeners of equal priority
// fire in registration order, whether they were registered under the exact
// name or under a matching pattern.
//
// # Pushed Events
//
//	d.Push("report.ready", reportID)
//	...
//	err := d.Flush(ctx, "report.ready")
//
// # Thread Safety
//
// The Dispatcher is safe for concurrent use. Dispatch itself is synchronous
// and listeners run with no dispatcher lock held, so they may register
// listeners or fire further events. The firing stack is shared by the
// dispatcher, so Firing is only meaningful when dispatches are not
// interleaved across goroutines.
//
// # Subpackages
//
//   - topic: Event name type and wildcard pattern matching
package event
