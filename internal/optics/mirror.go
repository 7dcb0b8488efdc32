package optics

import (
	"fmt"
	"math"
)

// mirrorCoating is the reflective surface shared by every mirror.
type mirrorCoating struct {
	Reflectivity      Real
	PhaseOnReflection Real
}

func (c mirrorCoating) validate() error {
	if !(c.Reflectivity >= 0 && c.Reflectivity <= 1) {
		return fmt.Errorf("reflectivity must be in [0,1], got %.6g", c.Reflectivity)
	}
	return nil
}

// reflectOff reflects r about the hit normal, scaling by the reflectivity.
func (c mirrorCoating) reflectOff(e Element, r *Ray, h Hit, p *Pass) []*Ray {
	if c.Reflectivity <= 0 {
		return p.absorb(e, r)
	}
	out := r.Intensity() * c.Reflectivity
	if p.faint(r, out) {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	child := p.spawn(e, r, h.Point, reflect(r.Direction(), h.Normal), out)
	if child != nil {
		child.AddPhase(c.PhaseOnReflection)
	}
	return p.finish(r, children(child))
}

func children(cs ...*Ray) []*Ray {
	out := make([]*Ray, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// PlaneMirror is a flat two-sided mirror of the given length, lying across
// its local x axis.
type PlaneMirror struct {
	base
	mirrorCoating
	length Real
	face   segment
}

func NewPlaneMirror(id string, pose Pose, length, reflectivity Real) (*PlaneMirror, error) {
	if !(length > 0) {
		return nil, fmt.Errorf("mirror length must be > 0, got %.6g", length)
	}
	m := &PlaneMirror{
		base:          newBase(id, "plane_mirror", pose),
		mirrorCoating: mirrorCoating{Reflectivity: reflectivity, PhaseOnReflection: math.Pi},
		length:        length,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.rebuild = m.update
	m.update()
	return m, nil
}

func (m *PlaneMirror) update() { m.face = newSegment(m.f, m.length/2) }

func (m *PlaneMirror) SetLength(l Real) {
	m.length = l
	m.update()
}

func (m *PlaneMirror) Bounds() Rect { return m.face.bounds() }

func (m *PlaneMirror) Intersect(o Point2, d Vector2) []Hit { return m.face.hit(o, d, 0) }

func (m *PlaneMirror) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	return m.reflectOff(m, r, h, p)
}

// SphericalMirror is a circular arc with its vertex at the pose position.
// A positive radius of curvature puts the centre on the local +x side
// (concave towards +x).
type SphericalMirror struct {
	base
	mirrorCoating
	radius   Real
	aperture Real
	centre   Point2
}

func NewSphericalMirror(id string, pose Pose, radius, aperture, reflectivity Real) (*SphericalMirror, error) {
	if radius == 0 || !isFinite(radius) {
		return nil, fmt.Errorf("radius of curvature must be non-zero, got %.6g", radius)
	}
	if !(aperture > 0) || aperture >= 2*math.Abs(radius) {
		return nil, fmt.Errorf("aperture must be in (0, 2|R|), got %.6g", aperture)
	}
	m := &SphericalMirror{
		base:          newBase(id, "spherical_mirror", pose),
		mirrorCoating: mirrorCoating{Reflectivity: reflectivity, PhaseOnReflection: math.Pi},
		radius:        radius,
		aperture:      aperture,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.rebuild = m.update
	m.update()
	return m, nil
}

func (m *SphericalMirror) update() { m.centre = m.f.toWorld(Point2{m.radius, 0}) }

// FocalLength is R/2.
func (m *SphericalMirror) FocalLength() Real { return m.radius / 2 }

func (m *SphericalMirror) Bounds() Rect {
	h := m.aperture / 2
	sag := math.Abs(m.radius) - math.Sqrt(m.radius*m.radius-h*h)
	if m.radius < 0 {
		sag = -sag
	}
	return rectOf(
		m.f.toWorld(Point2{0, 0}),
		m.f.toWorld(Point2{sag, -h}),
		m.f.toWorld(Point2{sag, h}),
	)
}

func (m *SphericalMirror) Intersect(o Point2, d Vector2) []Hit {
	t1, t2, ok := intersectCircle(o, d, m.centre, math.Abs(m.radius))
	if !ok {
		return nil
	}
	var hits []Hit
	for _, t := range [2]Real{t1, t2} {
		if t <= HitEpsilon {
			continue
		}
		P := o.Add(d.Mul(t))
		L := m.f.toLocal(P)
		// keep the cap around the vertex only
		if math.Abs(L.Y) > m.aperture/2 || (L.X-m.radius)*math.Copysign(1, m.radius) > 0 {
			continue
		}
		n, _ := P.Sub(m.centre).Norm()
		hits = append(hits, newHit(o, d, t, n, 0))
	}
	return hits
}

func (m *SphericalMirror) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	return m.reflectOff(m, r, h, p)
}

// ParabolicMirror follows x = y²/(4F) in local coordinates, vertex at the
// pose position and focus at (F, 0).
type ParabolicMirror struct {
	base
	mirrorCoating
	focal    Real
	aperture Real
}

func NewParabolicMirror(id string, pose Pose, focal, aperture, reflectivity Real) (*ParabolicMirror, error) {
	if focal == 0 || !isFinite(focal) {
		return nil, fmt.Errorf("focal length must be non-zero, got %.6g", focal)
	}
	if !(aperture > 0) {
		return nil, fmt.Errorf("aperture must be > 0, got %.6g", aperture)
	}
	m := &ParabolicMirror{
		base:          newBase(id, "parabolic_mirror", pose),
		mirrorCoating: mirrorCoating{Reflectivity: reflectivity, PhaseOnReflection: math.Pi},
		focal:         focal,
		aperture:      aperture,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ParabolicMirror) Focus() Point2 { return m.f.toWorld(Point2{m.focal, 0}) }

func (m *ParabolicMirror) Bounds() Rect {
	h := m.aperture / 2
	x := h * h / (4 * m.focal)
	return rectOf(m.f.toWorld(Point2{0, 0}), m.f.toWorld(Point2{x, -h}), m.f.toWorld(Point2{x, h}))
}

func (m *ParabolicMirror) Intersect(o Point2, d Vector2) []Hit {
	lo := m.f.toLocal(o)
	ld := m.f.dirToLocal(d)
	F4 := 4 * m.focal
	a := ld.Y * ld.Y
	b := 2*lo.Y*ld.Y - F4*ld.X
	c := lo.Y*lo.Y - F4*lo.X

	var roots []Real
	if math.Abs(a) < parallelEps {
		if math.Abs(b) < parallelEps {
			return nil
		}
		roots = append(roots, -c/b)
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-b-sq)/(2*a), (-b+sq)/(2*a))
	}
	var hits []Hit
	for _, t := range roots {
		if t <= HitEpsilon {
			continue
		}
		y := lo.Y + t*ld.Y
		if math.Abs(y) > m.aperture/2 {
			continue
		}
		n, ok := m.f.dirToWorld(Vector2{-F4, 2 * y}).Norm()
		if !ok {
			continue
		}
		hits = append(hits, newHit(o, d, t, n, 0))
	}
	return hits
}

func (m *ParabolicMirror) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	return m.reflectOff(m, r, h, p)
}
