package optics

import (
	"fmt"
	"math"
)

// thinElement is a flat optic of a given aperture. Its face runs along the
// local y axis and faces local +x; rays cross it in either direction.
type thinElement struct {
	base
	aperture Real
	face     segment
}

func newThinElement(id, kind string, pose Pose, aperture Real) (thinElement, error) {
	if !(aperture > 0) || !isFinite(aperture) {
		return thinElement{}, fmt.Errorf("%s aperture must be > 0, got %.6g", kind, aperture)
	}
	t := thinElement{base: newBase(id, kind, pose), aperture: aperture}
	t.face = newSegment(t.f, aperture/2)
	return t, nil
}

// SetPose moves the element and refreshes its face.
func (t *thinElement) SetPose(p Pose) {
	t.base.SetPose(p)
	t.face = newSegment(t.f, t.aperture/2)
}

func (t *thinElement) Aperture() Real { return t.aperture }

func (t *thinElement) SetAperture(a Real) {
	t.aperture = a
	t.face = newSegment(t.f, a/2)
}

func (t *thinElement) Bounds() Rect { return t.face.bounds() }

func (t *thinElement) Intersect(o Point2, d Vector2) []Hit { return t.face.hit(o, d, 0) }

// apparentAxis expresses an element's transverse axis in the frame of a ray
// travelling along d: rays going against the element axis see it mirrored.
func (t *thinElement) apparentAxis(axis Real, d Vector2) Real {
	if d.Dot(t.f.axis()) < 0 {
		return -axis
	}
	return axis
}

// extinct is the transmission below which a polarization element blocks
// the ray outright.
const extinct = 1e-12

// PolarizerType selects the polarizer model.
type PolarizerType uint8

const (
	AbsorptivePolarizer PolarizerType = iota
	GlanPolarizer
	WireGridPolarizer
)

func (pt PolarizerType) kind() string {
	switch pt {
	case GlanPolarizer:
		return "glan_polarizer"
	case WireGridPolarizer:
		return "wire_grid_polarizer"
	default:
		return "polarizer"
	}
}

// Polarizer transmits the component along Axis (Malus's law). A finite
// ExtinctionRatio leaks 1/ER of the orthogonal component; the wire-grid type
// reflects that component instead of absorbing it.
type Polarizer struct {
	thinElement
	Type            PolarizerType
	Axis            Real
	ExtinctionRatio Real // 0 = ideal
}

func NewPolarizer(id string, pose Pose, aperture, axis Real, typ PolarizerType) (*Polarizer, error) {
	t, err := newThinElement(id, typ.kind(), pose, aperture)
	if err != nil {
		return nil, err
	}
	p := &Polarizer{thinElement: t, Type: typ, Axis: axis}
	switch typ {
	case GlanPolarizer:
		p.ExtinctionRatio = 1e5
	case WireGridPolarizer:
		p.ExtinctionRatio = 1e3
	}
	return p, nil
}

func (pz *Polarizer) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	d := r.Direction()
	axis := pz.apparentAxis(pz.Axis, d)
	in := r.Intensity()
	_, pass := r.Polarization().Project(axis)
	_, block := r.Polarization().Project(axis + math.Pi/2)
	T := pass
	if pz.ExtinctionRatio > 0 {
		T += block / pz.ExtinctionRatio
	}

	var out []*Ray
	if I := in * T; !p.faint(r, I) {
		if c := p.spawn(pz, r, h.Point, d, I); c != nil {
			c.SetPolarization(Linear(axis))
			out = append(out, c)
		}
	}
	if pz.Type == WireGridPolarizer {
		if I := in * block; !p.faint(r, I) {
			if c := p.spawn(pz, r, h.Point, reflect(d, h.Normal), I); c != nil {
				c.SetPolarization(Linear(axis + math.Pi/2))
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		if T < extinct {
			return p.absorb(pz, r)
		}
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	return p.finish(r, out)
}

// BeamSplitter transmits T and reflects R of the incident intensity; the rest
// is lost. A polarizing splitter transmits the component along Axis and
// reflects the orthogonal one.
type BeamSplitter struct {
	thinElement
	Reflectance   Real
	Transmittance Real
	Polarizing    bool
	Axis          Real
}

func NewBeamSplitter(id string, pose Pose, aperture, reflectance, transmittance Real) (*BeamSplitter, error) {
	if !(reflectance >= 0 && reflectance <= 1 && transmittance >= 0 && transmittance <= 1) {
		return nil, fmt.Errorf("R and T must be in [0,1], got %.6g, %.6g", reflectance, transmittance)
	}
	if reflectance+transmittance > 1+1e-12 {
		return nil, fmt.Errorf("R + T must be <= 1, got %.6g", reflectance+transmittance)
	}
	t, err := newThinElement(id, "beam_splitter", pose, aperture)
	if err != nil {
		return nil, err
	}
	return &BeamSplitter{thinElement: t, Reflectance: reflectance, Transmittance: transmittance}, nil
}

// NewPolarizingBeamSplitter transmits p (along axis) and reflects s.
func NewPolarizingBeamSplitter(id string, pose Pose, aperture, axis Real) (*BeamSplitter, error) {
	b, err := NewBeamSplitter(id, pose, aperture, 1, 0)
	if err != nil {
		return nil, err
	}
	b.kind = "polarizing_beam_splitter"
	b.Polarizing = true
	b.Transmittance = 1
	b.Axis = axis
	return b, nil
}

func (b *BeamSplitter) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	d := r.Direction()
	in := r.Intensity()
	tI, rI := in*b.Transmittance, in*b.Reflectance
	tPol, rPol := r.Polarization(), r.Polarization()
	if b.Polarizing {
		axis := b.apparentAxis(b.Axis, d)
		var ft, fr Real
		tPol, ft = r.Polarization().Project(axis)
		rPol, fr = r.Polarization().Project(axis + math.Pi/2)
		tI, rI = tI*ft, rI*fr
	}

	var out []*Ray
	if !p.faint(r, tI) {
		if c := p.spawn(b, r, h.Point, d, tI); c != nil {
			c.SetPolarization(tPol)
			out = append(out, c)
		}
	}
	if !p.faint(r, rI) {
		if c := p.spawn(b, r, h.Point, reflect(d, h.Normal), rI); c != nil {
			c.SetPolarization(rPol)
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	return p.finish(r, out)
}

// WavePlate retards the slow axis by Retardance relative to FastAxis.
type WavePlate struct {
	thinElement
	FastAxis   Real
	Retardance Real
}

func NewWavePlate(id string, pose Pose, aperture, fastAxis, retardance Real) (*WavePlate, error) {
	t, err := newThinElement(id, "wave_plate", pose, aperture)
	if err != nil {
		return nil, err
	}
	return &WavePlate{thinElement: t, FastAxis: fastAxis, Retardance: retardance}, nil
}

func NewHalfWavePlate(id string, pose Pose, aperture, fastAxis Real) (*WavePlate, error) {
	w, err := NewWavePlate(id, pose, aperture, fastAxis, math.Pi)
	if w != nil {
		w.kind = "half_wave_plate"
	}
	return w, err
}

func NewQuarterWavePlate(id string, pose Pose, aperture, fastAxis Real) (*WavePlate, error) {
	w, err := NewWavePlate(id, pose, aperture, fastAxis, math.Pi/2)
	if w != nil {
		w.kind = "quarter_wave_plate"
	}
	return w, err
}

func (w *WavePlate) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	d := r.Direction()
	m := JonesRetarder(w.apparentAxis(w.FastAxis, d), w.Retardance)
	pol, f := r.Polarization().ApplyJones(m)
	return transmitJones(w, r, h, p, pol, f)
}

// transmitJones emits the single transmitted child of a Jones element.
func transmitJones(e Element, r *Ray, h Hit, p *Pass, pol Polarization, f Real) []*Ray {
	I := r.Intensity() * f
	if f < extinct || p.faint(r, I) {
		if f < extinct {
			return p.absorb(e, r)
		}
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	c := p.spawn(e, r, h.Point, r.Direction(), I)
	if c != nil {
		c.SetPolarization(pol)
	}
	return p.finish(r, children(c))
}
