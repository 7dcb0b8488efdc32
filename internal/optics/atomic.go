package optics

import (
	"fmt"
	"math"
	"strings"
)

// AtomicLine is one fine-structure transition.
type AtomicLine struct {
	Name         string
	WavelengthNM Real // vacuum
	NaturalWidth Real // Γ/2π in Hz (FWHM)
	Degeneracy   Real // g2/g1
}

// Species is an alkali vapour with its D lines and vapour-pressure fit
// log10(P/atm) = A + B/T (solid below Melting, liquid above).
type Species struct {
	Name    string
	MassAMU Real
	Lines   []AtomicLine
	Melting Real
	solidA  Real
	solidB  Real
	liquidA Real
	liquidB Real
}

var (
	Rb85 = Species{Name: "Rb85", MassAMU: 84.911789738, Melting: 312.46,
		solidA: 4.857, solidB: -4215, liquidA: 4.312, liquidB: -4040,
		Lines: []AtomicLine{
			{"D1", 794.979, 5.746e6, 1},
			{"D2", 780.241, 6.065e6, 2},
		}}
	Rb87 = Species{Name: "Rb87", MassAMU: 86.909180527, Melting: 312.46,
		solidA: 4.857, solidB: -4215, liquidA: 4.312, liquidB: -4040,
		Lines: []AtomicLine{
			{"D1", 794.979, 5.746e6, 1},
			{"D2", 780.241, 6.065e6, 2},
		}}
	Cs133 = Species{Name: "Cs133", MassAMU: 132.905451931, Melting: 301.59,
		solidA: 4.711, solidB: -3999, liquidA: 4.165, liquidB: -3830,
		Lines: []AtomicLine{
			{"D1", 894.593, 4.575e6, 1},
			{"D2", 852.347, 5.234e6, 2},
		}}
	K39 = Species{Name: "K39", MassAMU: 38.96370649, Melting: 336.53,
		solidA: 4.961, solidB: -4646, liquidA: 4.402, liquidB: -4453,
		Lines: []AtomicLine{
			{"D1", 770.108, 5.956e6, 1},
			{"D2", 766.701, 6.035e6, 2},
		}}
	Na23 = Species{Name: "Na23", MassAMU: 22.98976928, Melting: 370.87,
		solidA: 5.298, solidB: -5603, liquidA: 4.704, liquidB: -5377,
		Lines: []AtomicLine{
			{"D1", 589.756, 9.765e6, 1},
			{"D2", 589.158, 9.795e6, 2},
		}}
)

// SpeciesByName looks up a species, case-insensitively.
func SpeciesByName(name string) (Species, bool) {
	for _, s := range []Species{Rb85, Rb87, Cs133, K39, Na23} {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Species{}, false
}

// VaporDensity is the saturated number density (m⁻³) at temperature T (K).
func (s Species) VaporDensity(T Real) Real {
	a, b := s.solidA, s.solidB
	if T >= s.Melting {
		a, b = s.liquidA, s.liquidB
	}
	pa := math.Pow(10, a+b/T) * 101325
	return pa / (boltzmann * T)
}

// dopplerFWHM is ν0·√(8kT ln2 / (m c²)) in Hz.
func (s Species) dopplerFWHM(nu0, T Real) Real {
	m := s.MassAMU * atomicMassUnit
	return nu0 * math.Sqrt(8*boltzmann*T*math.Ln2/(m*speedOfLight*speedOfLight))
}

// pseudoVoigt evaluates the Thompson–Cox–Hastings approximation of a Voigt
// profile with Gaussian FWHM fG and Lorentzian FWHM fL at detuning x (Hz).
// The result is area-normalised (1/Hz).
func pseudoVoigt(x, fG, fL Real) Real {
	f := math.Pow(math.Pow(fG, 5)+
		2.69269*math.Pow(fG, 4)*fL+
		2.42843*math.Pow(fG, 3)*fL*fL+
		4.47163*fG*fG*math.Pow(fL, 3)+
		0.07842*fG*math.Pow(fL, 4)+
		math.Pow(fL, 5), 0.2)
	q := fL / f
	eta := 1.36603*q - 0.47719*q*q + 0.11116*q*q*q
	hw := f / 2
	lorentz := hw / (math.Pi * (x*x + hw*hw))
	gauss := math.Sqrt(4*math.Ln2/math.Pi) / f * math.Exp(-4*math.Ln2*x*x/(f*f))
	return eta*lorentz + (1-eta)*gauss
}

// AtomicVaporCell is a rectangular cell of alkali vapour. Transmission
// follows Beer–Lambert with a Doppler- and natural-broadened cross section
// summed over the species' D lines.
type AtomicVaporCell struct {
	base
	Species       Species
	Temperature   Real // K
	Density       Real // m⁻³; 0 = saturated vapour at Temperature
	MetersPerUnit Real // scene length unit in metres
	length        Real
	height        Real
	poly          convexPoly
}

func NewAtomicVaporCell(id string, pose Pose, length, height Real, species Species, temperature Real) (*AtomicVaporCell, error) {
	if !(length > 0 && height > 0) {
		return nil, fmt.Errorf("cell size must be > 0, got %.6g x %.6g", length, height)
	}
	if !(temperature > 0) {
		return nil, fmt.Errorf("cell temperature must be > 0 K, got %.6g", temperature)
	}
	if len(species.Lines) == 0 {
		return nil, fmt.Errorf("species %q has no lines", species.Name)
	}
	c := &AtomicVaporCell{
		base:    newBase(id, "atomic_cell", pose),
		Species: species, Temperature: temperature, MetersPerUnit: 1e-3,
		length: length, height: height,
	}
	c.rebuild = c.update
	c.update()
	return c, nil
}

func (c *AtomicVaporCell) update() {
	w, h := c.length/2, c.height/2
	c.poly = newConvexPoly([]Point2{
		c.f.toWorld(Point2{-w, -h}), c.f.toWorld(Point2{w, -h}),
		c.f.toWorld(Point2{w, h}), c.f.toWorld(Point2{-w, h}),
	})
}

// NumberDensity is the configured density or the saturated one.
func (c *AtomicVaporCell) NumberDensity() Real {
	if c.Density > 0 {
		return c.Density
	}
	return c.Species.VaporDensity(c.Temperature)
}

// AbsorptionCoefficient is α(λ) = N·Σσ in m⁻¹, with
// σ = (λ0²/8π)(g2/g1)·A·φ(ν) and A = 2πΓ.
func (c *AtomicVaporCell) AbsorptionCoefficient(wavelengthNM Real) Real {
	nu := speedOfLight / (wavelengthNM * 1e-9)
	sigma := 0.0
	for _, l := range c.Species.Lines {
		lam0 := l.WavelengthNM * 1e-9
		nu0 := speedOfLight / lam0
		phi := pseudoVoigt(nu-nu0, c.Species.dopplerFWHM(nu0, c.Temperature), l.NaturalWidth)
		A := 2 * math.Pi * l.NaturalWidth
		sigma += lam0 * lam0 / (8 * math.Pi) * l.Degeneracy * A * phi
	}
	return c.NumberDensity() * sigma
}

// Transmission is exp(-α·L) for a path of L scene units.
func (c *AtomicVaporCell) Transmission(wavelengthNM, pathLength Real) Real {
	return math.Exp(-c.AbsorptionCoefficient(wavelengthNM) * pathLength * c.MetersPerUnit)
}

func (c *AtomicVaporCell) Bounds() Rect { return c.poly.bounds() }

// Contains reports whether p is inside the cell.
func (c *AtomicVaporCell) Contains(p Point2) bool { return c.poly.contains(p) }

func (c *AtomicVaporCell) Intersect(o Point2, d Vector2) []Hit { return polyHits(&c.poly, o, d) }

func (c *AtomicVaporCell) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	d := r.Direction()
	exit, L := h.Point, h.Distance
	if h.Entering {
		L = 0
		start := h.Point.Add(d.Mul(BumpShift))
		if x, ok := nearest(c.Intersect(start, d)); ok {
			exit, L = x.Point, x.Distance+BumpShift
		}
	}
	T := c.Transmission(r.WavelengthNM, L)
	I := r.Intensity() * T
	if p.faint(r, I) || I <= 0 {
		return p.absorb(c, r)
	}
	child := p.spawn(c, r, h.Point, d, I)
	if child != nil && h.Entering {
		child.moveTo(exit)
	}
	return p.finish(r, children(child))
}
