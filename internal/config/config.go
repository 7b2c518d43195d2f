// Package config resolves converter settings from an optional JSON config
// file, CLI flags and defaults, in that priority order (flags win).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configurable paths and settings for one conversion run.
type Config struct {
	ScenePath   string `json:"scene"`
	ScriptPath  string `json:"script"`
	BlendPath   string `json:"blend"`
	DumpPath    string `json:"dump"`
	PreviewPath string `json:"preview"`
	PreviewSize int    `json:"preview_size"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Script      string
	Blend       string
	Dump        string
	Preview     string
	PreviewSize int
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag overrides and fills empty fields with defaults
// derived from the scene path.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.ScenePath = flags.Scene
	}
	if flags.Script != "" {
		c.ScriptPath = flags.Script
	}
	if flags.Blend != "" {
		c.BlendPath = flags.Blend
	}
	if flags.Dump != "" {
		c.DumpPath = flags.Dump
	}
	if flags.Preview != "" {
		c.PreviewPath = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}

	if c.ScenePath != "" {
		stem := sceneStem(c.ScenePath)
		if c.ScriptPath == "" {
			c.ScriptPath = stem + ".py"
		}
		if c.BlendPath == "" {
			c.BlendPath = stem + ".blend"
		}
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
}

// sceneStem returns the scene file name without extension, relative to the
// working directory, so outputs land where the tool runs.
func sceneStem(scenePath string) string {
	base := filepath.Base(scenePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
