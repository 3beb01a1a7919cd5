package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/sessionkit/handoff/pkg/logging"
)

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "HANDOFF_"

// LoadOptions configures LoadConfiguration.
type LoadOptions struct {
	// ProjectConfigPath is the optional .claude/handoff.toml; a missing file is not an error.
	ProjectConfigPath string
	// Overrides are dotted keys set explicitly on the command line.
	Overrides map[string]interface{}
}

// LoadConfiguration merges defaults, project file, environment and
// overrides, then decodes and validates the result.
func LoadConfiguration(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project config if it exists
	if opts.ProjectConfigPath != "" {
		if _, err := os.Stat(opts.ProjectConfigPath); err == nil {
			if err := k.Load(file.Provider(opts.ProjectConfigPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad,
					"failed to load project config from %s", opts.ProjectConfigPath)
			}
			log.Debug().Str("path", opts.ProjectConfigPath).Msg("Loaded project config")
		}
	}

	// 3. Env vars: HANDOFF_HOOKS_MAX_CONTEXT -> hooks.max_context
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}

	log.Debug().
		Int("threshold", cfg.Hooks.Threshold).
		Int("maxContext", cfg.Hooks.MaxContext).
		Str("color", cfg.Output.Color).
		Msg("Configuration loaded")

	return &cfg, nil
}

// envKey maps an environment variable to a dotted config key. Only the first
// underscore after the prefix separates section from key, so multi-word keys
// like max_context survive.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
