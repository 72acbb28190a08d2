// Package config loads the voxel tool configuration from JSON and merges it
// with command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the world and tool settings.
type Config struct {
	WorldRadius   int    `json:"world_radius"`   // world boundary in chunks (0 = infinite)
	GeneratorType string `json:"generator_type"` // "flat", "hills" or "empty"
	Seed          int64  `json:"seed"`
	BlocksFile    string `json:"blocks_file"` // minecraft-data blocks.json; empty = embedded table
	LogLevel      string `json:"log_level"`
	PreloadRadius int    `json:"preload_radius"` // chunks generated around the origin at startup
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WorldRadius:   0,
		GeneratorType: "flat",
		LogLevel:      "info",
		PreloadRadius: 2,
	}
}

// Load reads the JSON file at path over a copy of the defaults. If the file
// does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Validate rejects negative radii and unknown log levels.
func (c *Config) Validate() error {
	if c.WorldRadius < 0 {
		return fmt.Errorf("world_radius %d is negative", c.WorldRadius)
	}
	if c.PreloadRadius < 0 {
		return fmt.Errorf("preload_radius %d is negative", c.PreloadRadius)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["world-radius"] {
		cfg.WorldRadius = fromFile.WorldRadius
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["blocks"] {
		cfg.BlocksFile = fromFile.BlocksFile
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["preload"] {
		cfg.PreloadRadius = fromFile.PreloadRadius
	}
}
