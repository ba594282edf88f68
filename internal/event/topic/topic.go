package topic

import (
	"reflect"
	"strings"

	"github.com/tidwall/match"
)

// Topic is an event name using dot notation.
// Examples: "user.created", "order.line.added", "app.Booted"
//
// A Topic containing Wildcard is a pattern: "user.*" matches every name
// that starts with "user.", however many segments follow.
type Topic string

// Wildcard matches any run of characters, separators included.
const Wildcard = "*"

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// IsWildcard returns true if the topic is a pattern.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), Wildcard)
}

// globEscaper keeps "?" and backslashes literal so that "*" is the only wildcard.
var globEscaper = strings.NewReplacer(`\`, `\\`, `?`, `\?`)

// Matches returns true if this topic matches the given pattern.
// A pattern without wildcards only matches itself.
func (t Topic) Matches(pattern Topic) bool {
	if !pattern.IsWildcard() {
		return t == pattern
	}
	return match.Match(string(t), globEscaper.Replace(string(pattern)))
}

// Named is implemented by event values that choose their own topic.
type Named interface {
	EventName() string
}

// Of returns the topic for an event value. Values implementing Named
// supply their own name; anything else is named after its Go type,
// package-qualified, with pointers dereferenced.
//
// Example: *orders.Placed -> "github.com/acme/shop/orders.Placed"
func Of(v any) Topic {
	if n, ok := v.(Named); ok {
		return Topic(n.EventName())
	}
	typ := reflect.TypeOf(v)
	if typ == nil {
		return ""
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.PkgPath() == "" || typ.Name() == "" {
		return Topic(typ.String())
	}
	return Topic(typ.PkgPath() + "." + typ.Name())
}
