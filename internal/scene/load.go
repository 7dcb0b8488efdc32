package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
)

// Load reads a scene file. Files ending in .toml are decoded as TOML,
// anything else as JSON.
func Load(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	optics.DebugLog("Loaded scene %q from %s: %d elements", cfg.Name, path, len(cfg.Elements))
	return &cfg, nil
}

// ParseJSON decodes a scene sent over the wire.
func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseTOML decodes a scene given as TOML text.
func ParseTOML(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("scene has no elements")
	}
	if c.MaxIterations < 0 || c.MaxBounces < 0 || c.MinIntensity < 0 {
		return fmt.Errorf("scene limits must be >= 0")
	}
	if b := c.Bounds; b != nil && (b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y) {
		return fmt.Errorf("scene bounds are empty: %+v", *b)
	}
	return nil
}
