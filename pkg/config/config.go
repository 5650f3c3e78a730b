// Package config loads spacetile's optional TOML configuration file.
//
// The file lives at <xdg-config>/spacetile/config.toml. A missing file is
// not an error: defaults apply, and command-line flags override whatever the
// file provides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const appName = "spacetile"

// Config holds user-tunable defaults for the pipeline.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Canvas CanvasConfig `toml:"canvas"`
	Cache  CacheConfig  `toml:"cache"`
}

// ScanConfig tunes the filesystem scanner.
type ScanConfig struct {
	// TimeoutSeconds is the scan wall-clock budget.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// IncludeHidden scans dot-prefixed entries too.
	IncludeHidden bool `toml:"include_hidden"`
}

// CanvasConfig sets the default layout canvas.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// CacheConfig controls artifact caching.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan:   ScanConfig{TimeoutSeconds: 30},
		Canvas: CanvasConfig{Width: 800, Height: 600},
	}
}

// Timeout returns the scan budget as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Scan.TimeoutSeconds) * time.Second
}

// Path returns the config file location under the XDG config directory.
func Path() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// CacheDir returns the cache location under the XDG cache directory.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// Load reads the config file at path, falling back to defaults for any
// value the file omits. A nonexistent file returns the defaults silently;
// a malformed file returns an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Scan.TimeoutSeconds <= 0 {
		cfg.Scan.TimeoutSeconds = Default().Scan.TimeoutSeconds
	}
	if cfg.Canvas.Width <= 0 {
		cfg.Canvas.Width = Default().Canvas.Width
	}
	if cfg.Canvas.Height <= 0 {
		cfg.Canvas.Height = Default().Canvas.Height
	}
	return cfg, nil
}
