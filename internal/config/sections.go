package config

import "time"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string

	// Format selects the encoder: "json" for production output, "console"
	// for human-readable development output.
	Format string
}

// EventsConfig tunes the event dispatcher.
type EventsConfig struct {
	// SortedCacheSize bounds how many merged listener views are cached.
	SortedCacheSize int
}

// ScriptsConfig controls Lua listener scripts.
type ScriptsConfig struct {
	// Paths are files, directories or glob patterns loaded at startup.
	Paths []string

	// Timeout bounds a single call into a script.
	Timeout time.Duration
}

// RegistryConfig seeds the root container.
type RegistryConfig struct {
	// Values are registered as plain entries, keyed by identifier.
	// Keys are lower-cased by the loader.
	Values map[string]any
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:  c.v.GetString(KeyLogLevel),
		Format: c.v.GetString(KeyLogFormat),
	}
}

// Events returns the dispatcher settings.
func (c *Config) Events() EventsConfig {
	return EventsConfig{
		SortedCacheSize: c.v.GetInt(KeySortedCacheSize),
	}
}

// Scripts returns the script settings.
func (c *Config) Scripts() ScriptsConfig {
	return ScriptsConfig{
		Paths:   c.v.GetStringSlice(KeyScriptPaths),
		Timeout: c.v.GetDuration(KeyScriptTimeout),
	}
}

// Registry returns the container seed values.
func (c *Config) Registry() RegistryConfig {
	values := c.v.GetStringMap(KeyRegistryValues)
	if values == nil {
		values = map[string]any{}
	}
	return RegistryConfig{Values: values}
}
