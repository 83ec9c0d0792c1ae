package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"os"
	"path/filepath"
)

// DefaultPath is read when neither the caller nor FATASHI_CONFIG names a file.
const DefaultPath = "./fatashi.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
//
// The file is path, or the FATASHI_CONFIG env when path is empty, or
// DefaultPath. A missing file is an error only when it was named explicitly;
// otherwise the configuration comes from ENV and defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	dir := "."

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("FATASHI_CONFIG")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}

		dir = filepath.Dir(path)
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.resolvePaths(dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// resolvePaths makes relative source paths relative to dir, the directory of
// the config file.
func (c *Config) resolvePaths(dir string) {
	for _, paths := range [][]string{c.Sources.Kamusi, c.Sources.Methali, c.Sources.Test} {
		for i, path := range paths {
			if !filepath.IsAbs(path) {
				paths[i] = filepath.Join(dir, path)
			}
		}
	}
}
