// Package topic provides event-name types and wildcard pattern matching
// for the event dispatcher.
//
// # Topic Format
//
// Event names use dot-notation to create hierarchical namespaces:
//
//	user.created
//	order.line.added
//	github.com/acme/shop/orders.Placed
//
// # Wildcards
//
// A "*" in a listener name matches any run of characters, separators
// included, so a trailing "*" selects a whole namespace:
//
//	user.*       matches user.created, user.profile.updated (not admin.user.created)
//	*.failed     matches job.failed, mail.delivery.failed
//	*            matches everything
//
// # Usage
//
//	m := topic.NewMatcher()
//	m.Add(topic.Topic("user.*"))
//	m.Add(topic.Topic("*.created"))
//
//	matches := m.Match(topic.Topic("user.created"))
//	// matches contains both patterns, in the order they were added
package topic
