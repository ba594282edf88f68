package event

import (
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/container"
)

// defaultCacheSize is the number of sorted listener views kept by default.
const defaultCacheSize = 512

// Option configures a Dispatcher.
type Option func(*config)

// config contains configuration for the dispatcher.
type config struct {
	// logger receives debug traces of dispatch decisions.
	logger *zap.Logger

	// resolver resolves "key@Method" listener targets.
	resolver container.Container

	// broadcaster receives broadcastable payloads.
	broadcaster Broadcaster

	// cacheSize bounds the number of cached sorted listener views.
	cacheSize int
}

func defaultConfig() config {
	return config{
		logger:      zap.NewNop(),
		broadcaster: NopBroadcaster{},
		cacheSize:   defaultCacheSize,
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithResolver sets the container used by ListenResolved listeners.
func WithResolver(r container.Container) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithBroadcaster sets the collaborator notified of broadcastable events.
func WithBroadcaster(b Broadcaster) Option {
	return func(c *config) {
		if b != nil {
			c.broadcaster = b
		}
	}
}

// WithCacheSize bounds the number of event names whose merged, sorted
// listener list is cached.
func WithCacheSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}
