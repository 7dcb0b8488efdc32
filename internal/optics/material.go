package optics

import "math"

// Dispersion gives the refractive index at a vacuum wavelength in nm.
type Dispersion interface {
	Index(wavelengthNM Real) Real
}

// ConstantIndex ignores the wavelength.
type ConstantIndex Real

func (c ConstantIndex) Index(Real) Real { return Real(c) }

// Cauchy is n(λ) = A + B/λ² + C/λ⁴ with λ in micrometres.
type Cauchy struct {
	A, B, C Real
}

func (c Cauchy) Index(wavelengthNM Real) Real {
	l2 := sq(wavelengthNM * 1e-3)
	return c.A + c.B/l2 + c.C/(l2*l2)
}

// Sellmeier is n²(λ) = 1 + Σ Bᵢλ²/(λ² - Cᵢ) with λ in micrometres and Cᵢ in µm².
type Sellmeier struct {
	B, C [3]Real
}

func (s Sellmeier) Index(wavelengthNM Real) Real {
	l2 := sq(wavelengthNM * 1e-3)
	n2 := 1.0
	for i := 0; i < 3; i++ {
		n2 += s.B[i] * l2 / (l2 - s.C[i])
	}
	if n2 < 1 {
		return 1
	}
	return math.Sqrt(n2)
}

// Common glasses.
var (
	GlassBK7 = Sellmeier{
		B: [3]Real{1.03961212, 0.231792344, 1.01046945},
		C: [3]Real{0.00600069867, 0.0200179144, 103.560653},
	}
	GlassFusedSilica = Sellmeier{
		B: [3]Real{0.6961663, 0.4079426, 0.8974794},
		C: [3]Real{0.0684043 * 0.0684043, 0.1162414 * 0.1162414, 9.896161 * 9.896161},
	}
	GlassDenseFlint = Cauchy{A: 1.7280, B: 0.01342}
)

// GlassByName resolves the names accepted in scene files.
func GlassByName(name string) (Dispersion, bool) {
	switch name {
	case "bk7", "BK7":
		return GlassBK7, true
	case "fused_silica", "silica":
		return GlassFusedSilica, true
	case "sf11", "dense_flint", "flint":
		return GlassDenseFlint, true
	}
	return nil, false
}

func sq(x Real) Real { return x * x }

// refractSurface bends r at h into (h.Entering) or out of a medium of index
// nInside surrounded by nOutside. Total internal reflection falls back to a
// full reflection that keeps the ray in its current medium.
func refractSurface(e Element, r *Ray, h Hit, p *Pass, nInside, nOutside Real) []*Ray {
	n1 := r.MediumIndex
	n2 := nOutside
	if h.Entering {
		n2 = nInside
	}
	d := r.Direction()
	dir, ok := refract(d, h.Normal, n1/n2)
	medium := n2
	if !ok {
		dir = reflect(d, h.Normal)
		medium = n1
		DebugLog("TIR at %s surface %d", e.ID(), h.SurfaceID)
	}
	child := p.spawn(e, r, h.Point, dir, r.Intensity())
	if child != nil {
		child.MediumIndex = medium
	}
	return p.finish(r, children(child))
}
