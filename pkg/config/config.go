// Package config reads the configuration file of gemini.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/245790/gemini/pkg/env"
)

// Config holds the settings read from the configuration file.
type Config struct {
	// Initial size of universes, in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Probability of a cell being alive in a random fill, in (0, 1].
	Density float64 `yaml:"density"`
	// Seed of random fills; 0 means a time-based seed.
	Seed int64 `yaml:"seed"`
	// Delay between frames of the terminal viewer.
	Tick time.Duration `yaml:"tick"`
	// Number of canonical nodes above which the node store is compacted; 0
	// disables compaction.
	MaxNodes int `yaml:"max_nodes"`
	// Path of the pattern database; empty means no database.
	DB string `yaml:"db"`
}

// Default returns the configuration used when there is no configuration file.
func Default() Config {
	return Config{
		Width:    64,
		Height:   64,
		Density:  0.5,
		Tick:     50 * time.Millisecond,
		MaxNodes: 4000000,
	}
}

// Path returns the path of the configuration file: $GEMINI_CONFIG if set,
// otherwise gemini/config.yaml under $XDG_CONFIG_HOME or $HOME/.config. It
// returns an empty string if none of the variables is set.
func Path() string {
	if p := os.Getenv(env.GEMINI_CONFIG); p != "" {
		return p
	}
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "gemini", "config.yaml")
	}
	if home := os.Getenv(env.HOME); home != "" {
		return filepath.Join(home, ".config", "gemini", "config.yaml")
	}
	return ""
}

// Load reads the configuration file at path. Settings missing from the file
// take their default values. A missing file, or an empty path, yields the
// default configuration.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration from YAML and validates it. Unknown settings
// are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all settings are in range, and returns an error naming
// the first one that is not.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fieldError("width", "must be positive", c.Width)
	case c.Height <= 0:
		return fieldError("height", "must be positive", c.Height)
	case !(c.Density > 0 && c.Density <= 1):
		return fieldError("density", "must be in (0, 1]", c.Density)
	case c.Tick < 0:
		return fieldError("tick", "must not be negative", c.Tick)
	case c.MaxNodes < 0:
		return fieldError("max_nodes", "must not be negative", c.MaxNodes)
	}
	return nil
}

func fieldError(field, constraint string, value any) error {
	return fmt.Errorf("%s %s, got %v", field, constraint, value)
}

// Write writes the configuration as YAML.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Read loads the configuration file at path, or at Path() if path is empty.
func Read(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	return Load(path)
}
