package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
)

type Config struct {
	MaxIterations  int     `envconfig:"MAX_ITERATIONS" default:"10000"`
	MaxBounces     int     `envconfig:"MAX_BOUNCES" default:"256"`
	MinIntensity   float64 `envconfig:"MIN_INTENSITY" default:"1e-4"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	Addr           string  `envconfig:"ADDR" default:":8080"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
}

// Load reads OPTICS_* variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("optics", &cfg); err != nil {
		return nil, err
	}
	if cfg.MaxIterations < 1 || cfg.MaxBounces < 1 {
		return nil, fmt.Errorf("iteration and bounce limits must be >= 1, got %d, %d", cfg.MaxIterations, cfg.MaxBounces)
	}
	// a zero threshold would be replaced by the engine default
	if !(cfg.MinIntensity > 0) {
		return nil, fmt.Errorf("min intensity must be > 0, got %g", cfg.MinIntensity)
	}
	return &cfg, nil
}

// TraceConfig maps the limits onto a trace configuration.
func (c *Config) TraceConfig(logger *slog.Logger) optics.TraceConfig {
	return optics.TraceConfig{
		MaxIterations: c.MaxIterations,
		MaxBounces:    c.MaxBounces,
		MinIntensity:  c.MinIntensity,
		Logger:        logger,
	}
}

func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
