package eventhub

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/randalmurphal/eventhub/pkg/eventhub/config"
)

// DefaultName is the name a hub gets when WithName is not used.
const DefaultName = "eventhub"

// hubConfig holds configuration for a hub.
type hubConfig struct {
	name         string
	logger       *slog.Logger
	metrics      bool
	tracing      bool
	maxListeners int
}

func defaultHubConfig() hubConfig {
	return hubConfig{
		name: DefaultName,
	}
}

// Option configures a Hub.
type Option func(*hubConfig)

// WithName sets the hub name used in logs, metrics and spans.
// Empty names are ignored.
func WithName(name string) Option {
	return func(c *hubConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger enables structured logging of registrations and emits.
// A hub without a logger logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *hubConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(c *hubConfig) {
		c.metrics = enabled
	}
}

// WithTracing enables an OpenTelemetry span per EmitContext call using the
// global tracer provider.
func WithTracing(enabled bool) Option {
	return func(c *hubConfig) {
		c.tracing = enabled
	}
}

// WithMaxListeners logs a warning when any single event name collects more
// than n bindings. Registration is never refused. Zero disables the check.
//
// Example:
//
//	hub := eventhub.New(eventhub.WithLogger(logger), eventhub.WithMaxListeners(20))
func WithMaxListeners(n int) Option {
	return func(c *hubConfig) {
		if n >= 0 {
			c.maxListeners = n
		}
	}
}

// settingKeys are the keys OptionsFromConfig understands.
var settingKeys = []string{"name", "log_level", "log_format", "metrics", "tracing", "max_listeners"}

// OptionsFromConfig translates a settings section into hub options.
//
// Recognized keys: name, log_level (debug|info|warn|error), log_format
// (text|json), metrics, tracing, max_listeners. A logger is only built when
// log_level is set; it writes to out, or to stderr when out is nil.
// Unrecognized keys and invalid values are reported together.
func OptionsFromConfig(cfg config.Config, out io.Writer) ([]Option, error) {
	var result *multierror.Error

	for _, key := range cfg.Unknown(settingKeys...) {
		result = multierror.Append(result, fmt.Errorf("unknown setting %q", key))
	}

	opts := []Option{
		WithName(cfg.String("name", DefaultName)),
		WithMetrics(cfg.Bool("metrics", false)),
		WithTracing(cfg.Bool("tracing", false)),
	}

	if n := cfg.Int("max_listeners", 0); n < 0 {
		result = multierror.Append(result, fmt.Errorf("max_listeners must not be negative, got %d", n))
	} else {
		opts = append(opts, WithMaxListeners(n))
	}

	if levelName := cfg.String("log_level", ""); levelName != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
		}

		if out == nil {
			out = os.Stderr
		}
		handlerOpts := &slog.HandlerOptions{Level: level}

		var handler slog.Handler
		switch format := strings.ToLower(cfg.String("log_format", "text")); format {
		case "text":
			handler = slog.NewTextHandler(out, handlerOpts)
		case "json":
			handler = slog.NewJSONHandler(out, handlerOpts)
		default:
			result = multierror.Append(result, fmt.Errorf("log_format must be text or json, got %q", format))
		}

		if handler != nil {
			opts = append(opts, WithLogger(slog.New(handler)))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return opts, nil
}

// OptionsFromFile loads a YAML or JSON settings file with config.Load and
// translates it with OptionsFromConfig.
func OptionsFromFile(path string, out io.Writer) ([]Option, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := OptionsFromConfig(cfg, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
