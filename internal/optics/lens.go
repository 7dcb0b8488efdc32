package optics

import (
	"fmt"
	"math"
)

// ThinLens bends rays with the paraxial ray-transfer map u' = u - h/f, where
// h is the hit height along the lens and u the slope to its axis. This is an
// approximation: the lens has no thickness and no aberrations.
type ThinLens struct {
	base
	Focal         Real // negative diverges
	Transmittance Real
	aperture      Real
	face          segment
}

func NewThinLens(id string, pose Pose, focal, aperture Real) (*ThinLens, error) {
	if focal == 0 || !isFinite(focal) {
		return nil, fmt.Errorf("focal length must be non-zero, got %.6g", focal)
	}
	if !(aperture > 0) {
		return nil, fmt.Errorf("aperture must be > 0, got %.6g", aperture)
	}
	l := &ThinLens{base: newBase(id, "thin_lens", pose), Focal: focal, Transmittance: 1, aperture: aperture}
	l.rebuild = l.update
	l.update()
	return l, nil
}

func (l *ThinLens) update() { l.face = newSegment(l.f, l.aperture/2) }

func (l *ThinLens) FocalPoints() (front, back Point2) {
	return l.f.toWorld(Point2{-l.Focal, 0}), l.f.toWorld(Point2{l.Focal, 0})
}

func (l *ThinLens) Bounds() Rect { return l.face.bounds() }

func (l *ThinLens) Intersect(o Point2, d Vector2) []Hit { return l.face.hit(o, d, 0) }

func (l *ThinLens) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	ld := l.f.dirToLocal(r.Direction())
	if math.Abs(ld.X) < parallelEps {
		// grazing along the lens plane: nothing to focus
		child := p.spawn(l, r, h.Point, r.Direction(), r.Intensity()*l.Transmittance)
		return p.finish(r, children(child))
	}
	s := math.Copysign(1, ld.X)
	y := l.f.toLocal(h.Point).Y
	u := ld.Y/math.Abs(ld.X) - y/l.Focal
	out, _ := Vector2{s, u}.Norm()
	I := r.Intensity() * l.Transmittance
	if p.faint(r, I) {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	child := p.spawn(l, r, h.Point, l.f.dirToWorld(out), I)
	return p.finish(r, children(child))
}

// conicSurface is x = vertex + z(y) with z(y) = c·y²/(1 + √(1-(1+k)c²y²)).
type conicSurface struct {
	vertex Real
	c      Real // curvature 1/R, 0 for flat
	k      Real // conic constant, 0 for a circle
}

func (s conicSurface) sag(y Real) (Real, bool) {
	if s.c == 0 {
		return 0, true
	}
	q := 1 - (1+s.k)*s.c*s.c*y*y
	if q < 0 {
		return 0, false
	}
	return s.c * y * y / (1 + math.Sqrt(q)), true
}

// intersect solves c(y² + (1+k)z²) - 2z = 0 along the local ray.
func (s conicSurface) intersect(lo Point2, ld Vector2, halfAperture Real) []Real {
	zo := lo.X - s.vertex
	k1 := 1 + s.k
	a := s.c * (ld.Y*ld.Y + k1*ld.X*ld.X)
	b := 2*s.c*(lo.Y*ld.Y+k1*zo*ld.X) - 2*ld.X
	cc := s.c*(lo.Y*lo.Y+k1*zo*zo) - 2*zo

	var roots []Real
	if math.Abs(a) < parallelEps {
		if math.Abs(b) < parallelEps {
			return nil
		}
		roots = append(roots, -cc/b)
	} else {
		disc := b*b - 4*a*cc
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-b-sq)/(2*a), (-b+sq)/(2*a))
	}
	var out []Real
	for _, t := range roots {
		if t <= HitEpsilon {
			continue
		}
		y := lo.Y + t*ld.Y
		if math.Abs(y) > halfAperture {
			continue
		}
		// reject the far sheet of the conic
		z, ok := s.sag(y)
		if !ok || math.Abs(zo+t*ld.X-z) > 1e-6*(1+math.Abs(z)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// gradient of c(y² + (1+k)z²) - 2z; its x component is negative near the vertex.
func (s conicSurface) gradient(y, z Real) Vector2 {
	return Vector2{2*s.c*(1+s.k)*z - 2, 2 * s.c * y}
}

// ThickLens refracts exactly at two conic faces separated by Thickness.
// Surface 0 is the front face (local -x side), surface 1 the back face,
// surfaces 2 and 3 the flat rims at local y = +aperture/2 and -aperture/2.
type ThickLens struct {
	base
	Glass        Dispersion
	AmbientIndex Real
	r1, r2       Real // radii of curvature, 0 = flat
	k1, k2       Real // conic constants
	thickness    Real
	aperture     Real
	front, back  conicSurface
}

func newThickLens(id, kind string, pose Pose, r1, r2, k1, k2, thickness, aperture Real, glass Dispersion) (*ThickLens, error) {
	if !(thickness > 0) || !(aperture > 0) {
		return nil, fmt.Errorf("thickness and aperture must be > 0, got %.6g, %.6g", thickness, aperture)
	}
	if glass == nil {
		glass = GlassBK7
	}
	l := &ThickLens{
		base:         newBase(id, kind, pose),
		Glass:        glass,
		AmbientIndex: 1,
		r1:           r1, r2: r2, k1: k1, k2: k2,
		thickness: thickness,
		aperture:  aperture,
	}
	l.update()
	if _, ok := l.front.sag(aperture / 2); !ok {
		return nil, fmt.Errorf("front surface cannot span aperture %.6g", aperture)
	}
	if _, ok := l.back.sag(aperture / 2); !ok {
		return nil, fmt.Errorf("back surface cannot span aperture %.6g", aperture)
	}
	return l, nil
}

// NewCylindricalLens builds a lens with circular faces (in 2D a cylindrical
// lens section). Biconvex is r1 > 0, r2 < 0.
func NewCylindricalLens(id string, pose Pose, r1, r2, thickness, aperture Real, glass Dispersion) (*ThickLens, error) {
	return newThickLens(id, "cylindrical_lens", pose, r1, r2, 0, 0, thickness, aperture, glass)
}

// NewAsphericLens builds a lens with conic faces.
func NewAsphericLens(id string, pose Pose, r1, k1, r2, k2, thickness, aperture Real, glass Dispersion) (*ThickLens, error) {
	return newThickLens(id, "aspheric_lens", pose, r1, r2, k1, k2, thickness, aperture, glass)
}

func curvature(r Real) Real {
	if r == 0 {
		return 0
	}
	return 1 / r
}

func (l *ThickLens) update() {
	l.front = conicSurface{vertex: -l.thickness / 2, c: curvature(l.r1), k: l.k1}
	l.back = conicSurface{vertex: l.thickness / 2, c: curvature(l.r2), k: l.k2}
}

// FocalLength uses the lensmaker's equation at wavelength λ.
func (l *ThickLens) FocalLength(wavelengthNM Real) Real {
	n := l.Glass.Index(wavelengthNM) / l.AmbientIndex
	c1, c2 := curvature(l.r1), curvature(l.r2)
	p := (n - 1) * (c1 - c2 + (n-1)*l.thickness*c1*c2/n)
	if p == 0 {
		return math.Inf(1)
	}
	return 1 / p
}

// rim returns the edge joining the face edges at local y = side·aperture/2.
// ok is false when the faces meet in a knife edge.
func (l *ThickLens) rim(side Real) (a, b Point2, ok bool) {
	h := side * l.aperture / 2
	z1, _ := l.front.sag(h)
	z2, _ := l.back.sag(h)
	a = Point2{l.front.vertex + z1, h}
	b = Point2{l.back.vertex + z2, h}
	return a, b, b.X-a.X > parallelEps
}

func (l *ThickLens) Bounds() Rect {
	h := l.aperture / 2
	z1, _ := l.front.sag(h)
	z2, _ := l.back.sag(h)
	return rectOf(
		l.f.toWorld(Point2{l.front.vertex, 0}), l.f.toWorld(Point2{l.back.vertex, 0}),
		l.f.toWorld(Point2{l.front.vertex + z1, -h}), l.f.toWorld(Point2{l.front.vertex + z1, h}),
		l.f.toWorld(Point2{l.back.vertex + z2, -h}), l.f.toWorld(Point2{l.back.vertex + z2, h}),
	)
}

func (l *ThickLens) Intersect(o Point2, d Vector2) []Hit {
	lo := l.f.toLocal(o)
	ld := l.f.dirToLocal(d)
	var hits []Hit
	for id, s := range [2]conicSurface{l.front, l.back} {
		for _, t := range s.intersect(lo, ld, l.aperture/2) {
			y := lo.Y + t*ld.Y
			z := lo.X + t*ld.X - s.vertex
			g, ok := s.gradient(y, z).Norm()
			if !ok {
				continue
			}
			outward := g
			if id == 1 {
				outward = g.Neg()
			}
			ow := l.f.dirToWorld(outward)
			h := newHit(o, d, t, ow, id)
			h.Entering = ow.Dot(d) < 0
			hits = append(hits, h)
		}
	}
	for i, side := range [2]Real{1, -1} {
		a, b, ok := l.rim(side)
		if !ok {
			continue
		}
		t, _, ok := intersectSegment(lo, ld, a, b)
		if !ok {
			continue
		}
		ow := l.f.dirToWorld(Vector2{0, side})
		h := newHit(o, d, t, ow, 2+i)
		h.Entering = ow.Dot(d) < 0
		hits = append(hits, h)
	}
	return hits
}

func (l *ThickLens) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	return refractSurface(l, r, h, p, l.Glass.Index(r.WavelengthNM), l.AmbientIndex)
}
