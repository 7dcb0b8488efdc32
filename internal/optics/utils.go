package optics

import "math"

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func clamp(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x Real) Real { return clamp(x, 0, 1) }

// wrapPhase maps any finite angle into (-π, π].
func wrapPhase(p Real) Real {
	if !isFinite(p) {
		return p
	}
	p = math.Mod(p+math.Pi, 2*math.Pi)
	if p <= 0 {
		p += 2 * math.Pi
	}
	return p - math.Pi
}

func degToRad(d Real) Real { return d * math.Pi / 180 }
