package optics

import (
	"errors"
	"fmt"
	"math"
)

// Emission is the ray budget shared by all sources.
type Emission struct {
	NumRays        int
	TotalIntensity Real
	WavelengthNM   Real
	Polarization   Polarization
	Disabled       bool
	IgnoreDecay    bool
	BeamDiameter   Real
	Gaussian       *GaussianBeam
}

func (e Emission) validate() error {
	if e.NumRays < 1 {
		return fmt.Errorf("source needs at least one ray, got %d", e.NumRays)
	}
	if !(e.TotalIntensity >= 0) || !isFinite(e.TotalIntensity) {
		return fmt.Errorf("total intensity must be finite and >= 0, got %.6g", e.TotalIntensity)
	}
	if !(e.WavelengthNM > 0) || !isFinite(e.WavelengthNM) {
		return errors.New("wavelength must be > 0")
	}
	return nil
}

func (e Emission) params(sourceID string, o Point2, d Vector2) RayParams {
	return RayParams{
		Origin:       o,
		Direction:    d,
		WavelengthNM: e.WavelengthNM,
		Intensity:    e.TotalIntensity / Real(e.NumRays),
		Polarization: e.Polarization,
		SourceID:     sourceID,
		BeamDiameter: e.BeamDiameter,
		Gaussian:     e.Gaussian,
		IgnoreDecay:  e.IgnoreDecay,
	}
}

// emitter implements the passive half of Source: light sources are
// transparent to other rays.
type emitter struct {
	base
	Emission
}

func (s *emitter) Intersect(Point2, Vector2) []Hit { return nil }

func (s *emitter) Interact(r *Ray, _ Hit, p *Pass) []*Ray { return p.absorb(s, r) }

func (s *emitter) Bounds() Rect { return rectOf(s.pose.Position) }

func (s *emitter) emit(p *Pass, origins []Point2, dirs []Vector2) []*Ray {
	if s.Disabled {
		return nil
	}
	out := make([]*Ray, 0, len(origins))
	for i := range origins {
		r, err := NewRay(s.params(s.id, origins[i], dirs[i]))
		if err != nil {
			p.Logger.Warn("source ray dropped", "source", s.id, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out
}

// PointSource emits NumRays rays evenly over the full circle, the first one
// along its orientation.
type PointSource struct {
	emitter
}

func NewPointSource(id string, pose Pose, em Emission) (*PointSource, error) {
	if err := em.validate(); err != nil {
		return nil, err
	}
	s := &PointSource{emitter{base: newBase(id, "point_source", pose), Emission: em}}
	DebugLog("Created point source %+v", s)
	return s, nil
}

func (s *PointSource) GenerateRays(p *Pass) []*Ray {
	n := s.NumRays
	origins := make([]Point2, n)
	dirs := make([]Vector2, n)
	for k := 0; k < n; k++ {
		origins[k] = s.pose.Position
		dirs[k] = FromAngle(s.pose.Angle + 2*math.Pi*Real(k)/Real(n))
	}
	return s.emit(p, origins, dirs)
}

// FanSource emits NumRays rays spread evenly over Spread radians centred on
// its orientation.
type FanSource struct {
	emitter
	Spread Real
}

func NewFanSource(id string, pose Pose, spread Real, em Emission) (*FanSource, error) {
	if err := em.validate(); err != nil {
		return nil, err
	}
	if spread < 0 || spread > 2*math.Pi {
		return nil, errors.New("spread must be in [0, 2π]")
	}
	return &FanSource{emitter: emitter{base: newBase(id, "fan_source", pose), Emission: em}, Spread: spread}, nil
}

func (s *FanSource) GenerateRays(p *Pass) []*Ray {
	n := s.NumRays
	origins := make([]Point2, n)
	dirs := make([]Vector2, n)
	for k := 0; k < n; k++ {
		a := s.pose.Angle
		if n > 1 {
			a += -s.Spread/2 + s.Spread*Real(k)/Real(n-1)
		}
		origins[k] = s.pose.Position
		dirs[k] = FromAngle(a)
	}
	return s.emit(p, origins, dirs)
}

// LineSource emits NumRays parallel rays along its orientation, spaced
// evenly over a segment of the given length across the beam.
type LineSource struct {
	emitter
	length Real
	ends   segment
}

func NewLineSource(id string, pose Pose, length Real, em Emission) (*LineSource, error) {
	if err := em.validate(); err != nil {
		return nil, err
	}
	if length < 0 || !isFinite(length) {
		return nil, errors.New("length must be >= 0")
	}
	s := &LineSource{emitter: emitter{base: newBase(id, "line_source", pose), Emission: em}, length: length}
	s.rebuild = s.update
	s.update()
	return s, nil
}

// NewLaser is a single-ray line source carrying a Gaussian beam profile.
// Scene units are millimetres: waist is in mm and the Rayleigh range
// π·w0²/λ comes out in mm.
func NewLaser(id string, pose Pose, wavelengthNM, power, waist Real) (*LineSource, error) {
	if waist <= 0 {
		return nil, errors.New("laser waist must be > 0")
	}
	lambdaMM := wavelengthNM * 1e-6
	em := Emission{
		NumRays:        1,
		TotalIntensity: power,
		WavelengthNM:   wavelengthNM,
		Polarization:   Linear(0),
		BeamDiameter:   2 * waist,
		Gaussian:       &GaussianBeam{Waist: waist, RayleighRange: math.Pi * waist * waist / lambdaMM},
	}
	s, err := NewLineSource(id, pose, 0, em)
	if err != nil {
		return nil, err
	}
	s.kind = "laser"
	return s, nil
}

func (s *LineSource) update() { s.ends = newSegment(s.f, s.length/2) }

func (s *LineSource) Length() Real { return s.length }

func (s *LineSource) SetLength(l Real) {
	s.length = l
	s.update()
}

func (s *LineSource) Bounds() Rect { return s.ends.bounds() }

func (s *LineSource) GenerateRays(p *Pass) []*Ray {
	n := s.NumRays
	origins := make([]Point2, n)
	dirs := make([]Vector2, n)
	dir := s.f.axis()
	for k := 0; k < n; k++ {
		t := 0.5
		if n > 1 {
			t = Real(k) / Real(n-1)
		}
		origins[k] = s.ends.A.Lerp(s.ends.B, t)
		dirs[k] = dir
	}
	return s.emit(p, origins, dirs)
}
