// Package config loads client configuration from an optional TOML file
// and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultEndpoint is the hosted text-generation endpoint used when
	// no configuration overrides it.
	DefaultEndpoint = "https://api-inference.huggingface.co/models/gpt2"

	// EnvAPIToken carries the bearer credential. EnvAPITokenFallback is
	// honored for setups that already export a Hugging Face token.
	EnvAPIToken         = "PARLEY_API_TOKEN"
	EnvAPITokenFallback = "HF_API_TOKEN"
)

// Config is the client configuration. The bearer token is sourced from
// the environment only and never from the file.
type Config struct {
	Endpoint string `toml:"endpoint"`
	Debug    bool   `toml:"debug"`

	Token string `toml:"-"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "parley", "parley.toml"), nil
}

// Load reads the config file at path, falling back to defaults when
// the file does not exist. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Config{Endpoint: DefaultEndpoint}

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	cfg.Token = os.Getenv(EnvAPIToken)
	if cfg.Token == "" {
		cfg.Token = os.Getenv(EnvAPITokenFallback)
	}

	return cfg, nil
}
