package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration decodes Go duration strings ("250ms", "1s") or integer
// nanoseconds from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)

	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the complete configuration for a mailmesh session.
type Config struct {
	// Router tunes the delivery loop.
	Router RouterConfig `yaml:"router,omitempty" validate:"omitempty"`

	// Logging configures the structured logger built by the façade.
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`
}

// RouterConfig tunes the mail delivery loop.
type RouterConfig struct {
	// RefreshTime is the suspension interval between delivery loop
	// iterations. It bounds worst-case cancellation latency.
	RefreshTime Duration `yaml:"refresh_time" validate:"gte=0"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum level emitted (debug, info, warn, error).
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format selects the slog handler (json or text).
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// Default returns the baseline configuration: one second refresh,
// info-level JSON logging.
func Default() Config {
	return Config{
		Router:  RouterConfig{RefreshTime: Duration(time.Second)},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Parse decodes a YAML document over the defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}
