package optics

import (
	"math"
	"math/cmplx"
)

// PolarizationKind is the scalar polarization tag.
type PolarizationKind uint8

const (
	PolUnpolarized PolarizationKind = iota
	PolLinear
	PolCircular
	PolElliptical
)

func (k PolarizationKind) String() string {
	switch k {
	case PolLinear:
		return "linear"
	case PolCircular:
		return "circular"
	case PolElliptical:
		return "elliptical"
	default:
		return "unpolarized"
	}
}

// Handedness of circular or elliptical light. Right-handed light has the
// Jones vector (1, -i)/√2.
type Handedness int8

const (
	RightHanded Handedness = 1
	LeftHanded  Handedness = -1
)

// stokesTol decides when an ellipse is degenerate (linear) or round (circular).
const stokesTol = 1e-6

// Polarization is an immutable polarization state. The tag and the Jones
// vector are derived from each other by the constructors only, so they can
// never disagree.
type Polarization struct {
	kind   PolarizationKind
	angle  Real // linear axis or ellipse major axis, in (-π/2, π/2]
	hand   Handedness
	chi    Real // ellipticity angle, in [-π/4, π/4]
	ex, ey complex128
}

// Unpolarized light carries no Jones vector.
func Unpolarized() Polarization { return Polarization{kind: PolUnpolarized} }

// Linear returns linear polarization along angle (radians).
func Linear(angle Real) Polarization {
	a := wrapAxis(angle)
	return Polarization{
		kind:  PolLinear,
		angle: a,
		ex:    complex(math.Cos(a), 0),
		ey:    complex(math.Sin(a), 0),
	}
}

// Circular returns circular polarization of the given handedness.
func Circular(h Handedness) Polarization {
	if h != LeftHanded {
		h = RightHanded
	}
	s := 1 / math.Sqrt2
	return FromJones(complex(s, 0), complex(0, -s*Real(h)))
}

// FromJones derives the polarization tag from a Jones vector. The vector is
// normalized; a zero vector yields unpolarized light.
func FromJones(ex, ey complex128) Polarization {
	s0 := sqAbs(ex) + sqAbs(ey)
	if !(s0 > 1e-300) || math.IsNaN(s0) {
		return Unpolarized()
	}
	inv := complex(1/math.Sqrt(s0), 0)
	ex, ey = ex*inv, ey*inv

	c := cmplx.Conj(ex) * ey
	s1 := sqAbs(ex) - sqAbs(ey)
	s2 := 2 * real(c)
	s3 := 2 * imag(c)

	p := Polarization{ex: ex, ey: ey, angle: wrapAxis(0.5 * math.Atan2(s2, s1))}
	switch {
	case math.Abs(s3) < stokesTol:
		p.kind = PolLinear
	case math.Abs(s3) > 1-stokesTol:
		p.kind = PolCircular
		p.angle = 0
	default:
		p.kind = PolElliptical
	}
	if p.kind != PolLinear {
		p.chi = 0.5 * math.Asin(clamp(-s3, -1, 1))
		if s3 < 0 {
			p.hand = RightHanded
		} else {
			p.hand = LeftHanded
		}
	}
	return p
}

func (p Polarization) Kind() PolarizationKind { return p.kind }
func (p Polarization) Angle() Real             { return p.angle }
func (p Polarization) Handedness() Handedness  { return p.hand }
func (p Polarization) Ellipticity() Real       { return p.chi }
func (p Polarization) IsPolarized() bool       { return p.kind != PolUnpolarized }

// Jones returns the normalized Jones vector; ok is false for unpolarized light.
func (p Polarization) Jones() (ex, ey complex128, ok bool) {
	if p.kind == PolUnpolarized {
		return 0, 0, false
	}
	return p.ex, p.ey, true
}

// Stokes returns the normalized Stokes parameters (S1, S2, S3).
func (p Polarization) Stokes() (s1, s2, s3 Real) {
	if p.kind == PolUnpolarized {
		return 0, 0, 0
	}
	c := cmplx.Conj(p.ex) * p.ey
	return sqAbs(p.ex) - sqAbs(p.ey), 2 * real(c), 2 * imag(c)
}

func (p Polarization) String() string {
	switch p.kind {
	case PolLinear:
		return "linear"
	case PolCircular:
		if p.hand == LeftHanded {
			return "circular-left"
		}
		return "circular-right"
	case PolElliptical:
		return "elliptical"
	default:
		return "unpolarized"
	}
}

// ApplyJones transforms the state by m and returns the new state together
// with the fraction of intensity that survives. Unpolarized light stays
// unpolarized and keeps the average transmission of m.
func (p Polarization) ApplyJones(m JonesMatrix) (Polarization, Real) {
	if p.kind == PolUnpolarized {
		f := 0.5 * (sqAbs(m[0][0]) + sqAbs(m[0][1]) + sqAbs(m[1][0]) + sqAbs(m[1][1]))
		return p, f
	}
	ex, ey := m.apply(p.ex, p.ey)
	f := sqAbs(ex) + sqAbs(ey)
	if f <= 0 {
		return Linear(p.angle), 0
	}
	return FromJones(ex, ey), f
}

// Project passes the state through an ideal linear polarizer along axis.
// The returned fraction is Malus's law (½ for unpolarized light).
func (p Polarization) Project(axis Real) (Polarization, Real) {
	if p.kind == PolUnpolarized {
		return Linear(axis), 0.5
	}
	a := complex(math.Cos(axis), 0)
	b := complex(math.Sin(axis), 0)
	amp := a*p.ex + b*p.ey
	return Linear(axis), sqAbs(amp)
}

// JonesMatrix is a 2x2 complex transfer matrix acting on (Ex, Ey).
type JonesMatrix [2][2]complex128

func (m JonesMatrix) apply(ex, ey complex128) (complex128, complex128) {
	return m[0][0]*ex + m[0][1]*ey, m[1][0]*ex + m[1][1]*ey
}

// Mul returns m·n (n acts first).
func (m JonesMatrix) Mul(n JonesMatrix) JonesMatrix {
	var r JonesMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

// JonesRotation rotates the field by rho radians.
func JonesRotation(rho Real) JonesMatrix {
	c, s := complex(math.Cos(rho), 0), complex(math.Sin(rho), 0)
	return JonesMatrix{{c, -s}, {s, c}}
}

// JonesRetarder delays the slow axis by retardance radians relative to the
// fast axis at angle fast.
func JonesRetarder(fast, retardance Real) JonesMatrix {
	d := JonesMatrix{{1, 0}, {0, cmplx.Exp(complex(0, retardance))}}
	return JonesRotation(fast).Mul(d).Mul(JonesRotation(-fast))
}

// JonesPolarizer is an ideal linear polarizer along axis.
func JonesPolarizer(axis Real) JonesMatrix {
	c, s := math.Cos(axis), math.Sin(axis)
	return JonesMatrix{
		{complex(c*c, 0), complex(c*s, 0)},
		{complex(c*s, 0), complex(s*s, 0)},
	}
}

func sqAbs(z complex128) Real { return real(z)*real(z) + imag(z)*imag(z) }

// wrapAxis maps an axis angle into (-π/2, π/2]; axes are undirected.
func wrapAxis(a Real) Real {
	if !isFinite(a) {
		return 0
	}
	a = math.Mod(a, math.Pi)
	if a <= -math.Pi/2 {
		a += math.Pi
	} else if a > math.Pi/2 {
		a -= math.Pi
	}
	return a
}
