package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective handoff configuration.
type Config struct {
	Hooks  HooksConfig  `koanf:"hooks" toml:"hooks"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// HooksConfig controls the values baked into the installed hooks and the
// settings.json entries that invoke them.
type HooksConfig struct {
	// Threshold overrides CLAUDE_CONTEXT_THRESHOLD in the monitor hook. 0 keeps
	// the previous installation's value.
	Threshold int `koanf:"threshold" toml:"threshold"`
	// MaxContext overrides CLAUDE_MAX_CONTEXT. 0 keeps the previous value.
	MaxContext          int `koanf:"max_context" toml:"max_context"`
	StopTimeout         int `koanf:"stop_timeout" toml:"stop_timeout"`
	SessionStartTimeout int `koanf:"session_start_timeout" toml:"session_start_timeout"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	Color  string `koanf:"color" toml:"color"`
	Banner bool   `koanf:"banner" toml:"banner"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Hooks.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// Validate validates the hooks configuration. Zero threshold and max context
// are allowed and mean "keep".
func (c *HooksConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Threshold, validation.Min(1), validation.Max(100)),
		validation.Field(&c.MaxContext, validation.Min(1000)),
		validation.Field(&c.StopTimeout, validation.Required, validation.Min(1), validation.Max(600)),
		validation.Field(&c.SessionStartTimeout, validation.Required, validation.Min(1), validation.Max(600)),
	)
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Color, validation.In(ColorAuto, ColorAlways, ColorNever)),
	)
}

// Default returns the configuration described by the embedded defaults.
func Default() *Config {
	return &Config{
		Hooks: HooksConfig{
			StopTimeout:         10,
			SessionStartTimeout: 5,
		},
		Output: OutputConfig{
			Color:  ColorAuto,
			Banner: true,
		},
	}
}
