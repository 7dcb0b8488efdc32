package optics

import (
	"math"
	"strings"
)

// TerminationReason explains why a ray stopped.
type TerminationReason string

const (
	ReasonNone           TerminationReason = ""
	ReasonZeroDirection  TerminationReason = "zero_direction"
	ReasonNaN            TerminationReason = "nan_value"
	ReasonMaxBounces     TerminationReason = "max_bounces"
	ReasonLowIntensity   TerminationReason = "low_intensity"
	ReasonNoIntersection TerminationReason = "no_intersection"
	ReasonInteracted     TerminationReason = "interacted" // consumed by an element that spawned children
	ReasonNotCoupled     TerminationReason = "not_coupled"
)

const absorbedPrefix = "absorbed_"

// Absorbed returns the reason for full absorption by an element kind.
func Absorbed(kind string) TerminationReason { return TerminationReason(absorbedPrefix + kind) }

func (r TerminationReason) IsAbsorbed() bool { return strings.HasPrefix(string(r), absorbedPrefix) }

// GaussianBeam describes the beam profile carried along a ray.
type GaussianBeam struct {
	Waist         Real
	RayleighRange Real
}

// RayParams are the inputs of NewRay.
type RayParams struct {
	Origin       Point2
	Direction    Vector2
	WavelengthNM Real
	Intensity    Real
	Phase        Real
	Polarization Polarization
	SourceID     string
	MediumIndex  Real // 0 means vacuum/air (1)
	BeamDiameter Real
	Gaussian     *GaussianBeam
	IgnoreDecay  bool
}

// Ray is one light path segment in flight. Geometry, intensity and history
// are private so that a terminated ray stays inert.
type Ray struct {
	ID           int // pass-local sequence number, assigned by the tracer
	ParentID     int // -1 for rays emitted by a source
	SourceID     string
	WavelengthNM Real
	Bounces      int
	MediumIndex  Real
	BeamDiameter Real
	Gaussian     *GaussianBeam
	IgnoreDecay  bool
	OrderLabel   string // diffraction order tag, e.g. "m=+1"
	AbsorbedBy   string // element id for absorbed_* reasons
	PathLength   Real

	origin       Point2
	direction    Vector2
	intensity    Real
	phase        Real
	polarization Polarization
	history      []Point2
	terminated   bool
	reason       TerminationReason
}

// NewRay validates p and builds a ray whose history starts at its origin.
// A degenerate direction does not fail: the ray is returned already
// terminated with zero_direction (or nan_value).
func NewRay(p RayParams) (*Ray, error) {
	if !p.Origin.finite() {
		return nil, &RayError{Field: "origin", Err: ErrNonFinite}
	}
	if err := checkScalars(p.WavelengthNM, p.Intensity, p.Phase); err != nil {
		return nil, err
	}
	medium := p.MediumIndex
	if medium == 0 {
		medium = 1
	}
	if !(medium >= 1) || !isFinite(medium) {
		return nil, &RayError{Field: "medium", Err: ErrInvalidMedium}
	}
	r := &Ray{
		ParentID:     -1,
		SourceID:     p.SourceID,
		WavelengthNM: p.WavelengthNM,
		MediumIndex:  medium,
		BeamDiameter: p.BeamDiameter,
		Gaussian:     p.Gaussian,
		IgnoreDecay:  p.IgnoreDecay,
		origin:       p.Origin,
		intensity:    p.Intensity,
		phase:        wrapPhase(p.Phase),
		polarization: p.Polarization,
		history:      []Point2{p.Origin},
	}
	r.setDirection(p.Direction)
	return r, nil
}

func checkScalars(wavelength, intensity, phase Real) error {
	if math.IsNaN(wavelength) || !(wavelength > 0) || math.IsInf(wavelength, 0) {
		return &RayError{Field: "wavelength", Err: ErrInvalidWavelength}
	}
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return &RayError{Field: "intensity", Err: ErrNonFinite}
	}
	if intensity < 0 {
		return &RayError{Field: "intensity", Err: ErrNegativeIntensity}
	}
	if !isFinite(phase) {
		return &RayError{Field: "phase", Err: ErrNonFinite}
	}
	return nil
}

func (r *Ray) setDirection(d Vector2) {
	if d.hasNaN() {
		r.direction = Vector2{}
		r.Terminate(ReasonNaN)
		return
	}
	n, ok := d.Norm()
	if !ok {
		r.direction = Vector2{}
		r.Terminate(ReasonZeroDirection)
		return
	}
	r.direction = n
}

// Spawn builds a child continuing from point at in direction dir. The child
// inherits the parent's history plus at, and starts BumpShift along dir so
// it does not re-hit the surface it leaves. The parent is left untouched.
func (r *Ray) Spawn(at Point2, dir Vector2, intensity Real) (*Ray, error) {
	if !at.finite() {
		return nil, &RayError{Field: "origin", Err: ErrNonFinite}
	}
	if err := checkScalars(r.WavelengthNM, intensity, r.phase); err != nil {
		return nil, err
	}
	hist := make([]Point2, len(r.history), len(r.history)+2)
	copy(hist, r.history)
	c := &Ray{
		ParentID:     r.ID,
		SourceID:     r.SourceID,
		WavelengthNM: r.WavelengthNM,
		Bounces:      r.Bounces + 1,
		MediumIndex:  r.MediumIndex,
		BeamDiameter: r.BeamDiameter,
		Gaussian:     r.Gaussian,
		IgnoreDecay:  r.IgnoreDecay,
		OrderLabel:   r.OrderLabel,
		PathLength:   r.PathLength,
		intensity:    intensity,
		phase:        r.phase,
		polarization: r.polarization,
		history:      hist,
	}
	c.AppendPoint(at)
	c.setDirection(dir)
	c.origin = at.Add(c.direction.Mul(BumpShift))
	return c, nil
}

// moveTo relocates the origin of a live child (used by elements that carry
// the ray through their volume) and records the point.
func (r *Ray) moveTo(p Point2) {
	if r.terminated {
		return
	}
	r.AppendPoint(p)
	r.origin = p.Add(r.direction.Mul(BumpShift))
}

// AppendPoint records p in the history. Points closer than HistoryEpsilon to
// the previous one, or containing NaN, are ignored.
func (r *Ray) AppendPoint(p Point2) bool {
	if r.terminated || p.hasNaN() {
		return false
	}
	if n := len(r.history); n > 0 {
		d := r.history[n-1].DistanceTo(p)
		if !(d > HistoryEpsilon) {
			return false
		}
		r.PathLength += d
	}
	r.history = append(r.history, p)
	return true
}

// Terminate makes the ray inert. The first reason sticks.
func (r *Ray) Terminate(reason TerminationReason) {
	if r.terminated {
		return
	}
	r.terminated = true
	r.reason = reason
}

func (r *Ray) SetIntensity(x Real) {
	if r.terminated {
		return
	}
	if x < 0 {
		x = 0
	}
	r.intensity = x
}

func (r *Ray) ScaleIntensity(f Real) { r.SetIntensity(r.intensity * f) }

// AddPhase adds a discrete phase jump at an interaction, such as the π of a
// mirror reflection. Propagation along a segment adds no phase.
func (r *Ray) AddPhase(dp Real) {
	if r.terminated {
		return
	}
	r.phase = wrapPhase(r.phase + dp)
}

func (r *Ray) SetPolarization(p Polarization) {
	if r.terminated {
		return
	}
	r.polarization = p
}

func (r *Ray) Origin() Point2              { return r.origin }
func (r *Ray) Direction() Vector2          { return r.direction }
func (r *Ray) Intensity() Real             { return r.intensity }
func (r *Ray) Phase() Real                 { return r.phase }
func (r *Ray) Polarization() Polarization  { return r.polarization }
func (r *Ray) Terminated() bool            { return r.terminated }
func (r *Ray) Reason() TerminationReason   { return r.reason }
func (r *Ray) HistoryLen() int             { return len(r.history) }
func (r *Ray) Last() Point2                { return r.history[len(r.history)-1] }

// History returns a copy of the visited points.
func (r *Ray) History() []Point2 {
	out := make([]Point2, len(r.history))
	copy(out, r.history)
	return out
}

// hasNaN reports any NaN in the ray's mutable state.
func (r *Ray) hasNaN() bool {
	return r.origin.hasNaN() || r.direction.hasNaN() || math.IsNaN(r.intensity) || math.IsNaN(r.phase)
}
