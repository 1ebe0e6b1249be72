/*
Package config loads hub settings from YAML or JSON and exposes them through
typed accessors with defaults.

# Basic Usage

	cfg, err := config.Load("eventhub.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	name := cfg.String("name", "eventhub")
	limit := cfg.Int("max_listeners", 0)

Load accepts .yaml, .yml and .json files. When the document has an
"eventhub" mapping only that section is returned, so hub settings can live
in a larger application file. A typical file:

	eventhub:
	  name: ui
	  log_level: debug
	  log_format: json
	  metrics: true
	  tracing: false
	  max_listeners: 25

# Defaults

Every accessor returns its default when the key is missing or holds a value
of the wrong type. Int accepts float64 values only when they have no
fractional part, since JSON decodes all numbers as float64.

Config is safe for concurrent reads. It never modifies the map it wraps.
*/
package config
