package optics

import "log/slog"

// TraceConfig replaces ambient simulation settings. Zero values select the
// package defaults, so a zero MinIntensity cannot disable the threshold.
type TraceConfig struct {
	MaxIterations int
	MaxBounces    int
	MinIntensity  Real
	// Bounds, when set, fixes the scene extent used to extend escaping rays.
	Bounds *Rect
	Logger *slog.Logger
}

// DefaultTraceConfig returns the defaults used by Trace.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{}.withDefaults()
}

func (c TraceConfig) withDefaults() TraceConfig {
	if c.MaxIterations <= 0 {
		c.MaxIterations = MaxIterations
	}
	if c.MaxBounces <= 0 {
		c.MaxBounces = MaxBounces
	}
	if c.MinIntensity <= 0 {
		c.MinIntensity = MinIntensity
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
