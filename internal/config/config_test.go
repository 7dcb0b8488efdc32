package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxIterations != 10000 || cfg.MaxBounces != 256 || cfg.MinIntensity != 1e-4 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Addr != ":8080" || cfg.Level() != slog.LevelInfo {
		t.Fatalf("defaults: %+v", cfg)
	}
	if o := cfg.Origins(); len(o) != 2 || o[0] != "localhost:5173" {
		t.Fatalf("origins: %v", o)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPTICS_MAX_ITERATIONS", "500")
	t.Setenv("OPTICS_MAX_BOUNCES", "12")
	t.Setenv("OPTICS_MIN_INTENSITY", "0.01")
	t.Setenv("OPTICS_LOG_LEVEL", "debug")
	t.Setenv("OPTICS_ALLOWED_ORIGINS", " a.example , ,b.example")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	tc := cfg.TraceConfig(nil)
	if tc.MaxIterations != 500 || tc.MaxBounces != 12 || tc.MinIntensity != 0.01 {
		t.Fatalf("trace config: %+v", tc)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("level: %v", cfg.Level())
	}
	if o := cfg.Origins(); len(o) != 2 || o[1] != "b.example" {
		t.Fatalf("origins: %q", o)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("OPTICS_MAX_BOUNCES", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero bounces")
	}
	t.Setenv("OPTICS_MAX_BOUNCES", "x")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
	t.Setenv("OPTICS_MAX_BOUNCES", "8")
	for _, v := range []string{"0", "-1e-3", "NaN"} {
		t.Setenv("OPTICS_MIN_INTENSITY", v)
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "min intensity") {
			t.Fatalf("OPTICS_MIN_INTENSITY=%s: want a min intensity error, got %v", v, err)
		}
	}
}

func TestLevelFallback(t *testing.T) {
	c := &Config{LogLevel: "loud"}
	if c.Level() != slog.LevelInfo {
		t.Fatal("unknown level must fall back to info")
	}
}
