package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config holds defaults for flags that were not set on the command line.
type config struct {
	Format   string `json:"format" yaml:"format" toml:"format"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

func defaultConfig() config {
	return config{Format: "yaml", LogLevel: "info"}
}

// loadConfig reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, errors.New("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "cannot read config")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, errors.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "cannot parse %s", path)
	}
	return cfg, nil
}
