package config

import (
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sessionkit/handoff/pkg/errors"
)

// Marshal renders the effective configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
