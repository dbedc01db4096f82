package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "RETYPE_"

// DefaultPath returns $XDG_CONFIG_HOME/retype/config.toml, creating the
// directory if needed.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("retype", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// DefaultStatsPath returns the stats file under the XDG data directory.
func DefaultStatsPath(backend string) (string, error) {
	name := "stats.db"
	if backend == StatsJSON {
		name = "stats.json"
	}

	path, err := xdg.DataFile(filepath.Join("retype", name))
	if err != nil {
		return "", fmt.Errorf("resolve stats path: %w", err)
	}
	return path, nil
}

// Load starts from Defaults, applies the file at path if it exists, then .env
// and RETYPE_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// a missing .env is the common case
	_ = godotenv.Load()

	if err := env.Parse(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("%w: parse environment: %v", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	return decode(path, data, cfg)
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: decode yaml %s: %v", ErrInvalid, path, err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("%w: decode toml %s: %v", ErrInvalid, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, path, undecoded)
		}
	}

	return nil
}
