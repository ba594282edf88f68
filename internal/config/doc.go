// Package config loads application settings.
//
// Settings are layered with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← EVENTBRIDGE_LOG_LEVEL, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ./eventbridge.yaml or ~/.config/eventbridge/
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// An environment variable is named after its setting path, upper-cased,
// with dots replaced by underscores and EVENTBRIDGE_ prepended.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithConfigFile("eventbridge.yaml"))
//	if err != nil {
//		return err
//	}
//	scripts := cfg.Scripts()
//
// # File Format
//
//	log:
//	  level: debug
//	  format: json
//	events:
//	  sorted_cache_size: 1024
//	scripts:
//	  paths: [./listeners]
//	  timeout: 2s
//	registry:
//	  values:
//	    greeting: hello
package config
