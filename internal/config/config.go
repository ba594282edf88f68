package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Setting paths.
const (
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeySortedCacheSize = "events.sorted_cache_size"
	KeyScriptPaths     = "scripts.paths"
	KeyScriptTimeout   = "scripts.timeout"
	KeyRegistryValues  = "registry.values"
)

// Defaults.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultSortedCacheSize = 512
	DefaultScriptTimeout   = 5 * time.Second

	// EnvPrefix prefixes environment overrides: log.level is read from
	// EVENTBRIDGE_LOG_LEVEL.
	EnvPrefix = "EVENTBRIDGE"
)

// Config provides access to the application settings.
//
// Settings resolve from, highest priority first: environment variables,
// the config file, built-in defaults.
type Config struct {
	v *viper.Viper

	configFile string
	searchDirs []string
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile loads settings from path. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithSearchDirs replaces the directories searched for eventbridge.yaml
// when no explicit file is given.
func WithSearchDirs(dirs ...string) Option {
	return func(c *Config) {
		c.searchDirs = dirs
	}
}

// New creates a Config holding only defaults. Call Load to read the
// config file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		v:          viper.New(),
		searchDirs: defaultSearchDirs(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.v.SetDefault(KeyLogLevel, DefaultLogLevel)
	c.v.SetDefault(KeyLogFormat, DefaultLogFormat)
	c.v.SetDefault(KeySortedCacheSize, DefaultSortedCacheSize)
	c.v.SetDefault(KeyScriptPaths, []string{})
	c.v.SetDefault(KeyScriptTimeout, DefaultScriptTimeout)
	c.v.SetDefault(KeyRegistryValues, map[string]any{})

	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
	return c
}

// Load reads the config file, if any, and validates the result.
// Without an explicit file, a missing eventbridge.yaml is not an error.
func Load(opts ...Option) (*Config, error) {
	c := New(opts...)
	if err := c.read(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) read() error {
	if c.configFile != "" {
		if _, err := os.Stat(c.configFile); err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, c.configFile)
		}
		c.v.SetConfigFile(c.configFile)
	} else {
		c.v.SetConfigName("eventbridge")
		c.v.SetConfigType("yaml")
		for _, dir := range c.searchDirs {
			c.v.AddConfigPath(dir)
		}
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// FileUsed returns the config file that was read, or "" if none was.
func (c *Config) FileUsed() string {
	return c.v.ConfigFileUsed()
}

// Get returns the raw value at path.
func (c *Config) Get(path string) (any, bool) {
	if !c.v.IsSet(path) {
		return nil, false
	}
	return c.v.Get(path), true
}

// Set overrides the value at path for the lifetime of the Config.
func (c *Config) Set(path string, value any) {
	c.v.Set(path, value)
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	switch level := c.v.GetString(KeyLogLevel); level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: KeyLogLevel, Value: level, Message: "must be one of debug, info, warn, error"}
	}

	switch format := c.v.GetString(KeyLogFormat); format {
	case "json", "console":
	default:
		return &ValidationError{Path: KeyLogFormat, Value: format, Message: "must be json or console"}
	}

	if size := c.v.GetInt(KeySortedCacheSize); size <= 0 {
		return &ValidationError{Path: KeySortedCacheSize, Value: size, Message: "must be positive"}
	}

	if timeout := c.v.GetDuration(KeyScriptTimeout); timeout <= 0 {
		return &ValidationError{Path: KeyScriptTimeout, Value: c.v.Get(KeyScriptTimeout), Message: "must be a positive duration"}
	}
	return nil
}

func defaultSearchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "eventbridge"))
	}
	return dirs
}
