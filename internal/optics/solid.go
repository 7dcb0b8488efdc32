package optics

import (
	"fmt"
	"math"
)

// Solid is a convex dielectric polygon: prisms and blocks. Every face
// refracts with the wavelength-dependent index of Glass.
type Solid struct {
	base
	Glass        Dispersion
	AmbientIndex Real
	local        []Point2 // vertices in local coordinates
	poly         convexPoly
}

func newSolid(id, kind string, pose Pose, local []Point2, glass Dispersion) *Solid {
	if glass == nil {
		glass = GlassBK7
	}
	s := &Solid{base: newBase(id, kind, pose), Glass: glass, AmbientIndex: 1, local: local}
	s.rebuild = s.update
	s.update()
	return s
}

func (s *Solid) update() {
	w := make([]Point2, len(s.local))
	for i, v := range s.local {
		w[i] = s.f.toWorld(v)
	}
	s.poly = newConvexPoly(w)
}

// NewPrism builds an isosceles prism with its apex on local +y. apex is the
// apex angle in radians and height the apex-to-base distance.
func NewPrism(id string, pose Pose, apex, height Real, glass Dispersion) (*Solid, error) {
	if !(apex > 0 && apex < math.Pi) {
		return nil, fmt.Errorf("apex angle must be in (0, π), got %.6g", apex)
	}
	if !(height > 0) {
		return nil, fmt.Errorf("prism height must be > 0, got %.6g", height)
	}
	b := height * math.Tan(apex/2)
	return newSolid(id, "prism", pose, []Point2{
		{0, height / 2}, {-b, -height / 2}, {b, -height / 2},
	}, glass), nil
}

// NewDielectricBlock builds a width x height rectangular slab.
func NewDielectricBlock(id string, pose Pose, width, height Real, glass Dispersion) (*Solid, error) {
	if !(width > 0 && height > 0) {
		return nil, fmt.Errorf("block size must be > 0, got %.6g x %.6g", width, height)
	}
	w, h := width/2, height/2
	return newSolid(id, "dielectric_block", pose, []Point2{{-w, -h}, {w, -h}, {w, h}, {-w, h}}, glass), nil
}

func (s *Solid) Bounds() Rect { return s.poly.bounds() }

// Contains reports whether p is inside the solid.
func (s *Solid) Contains(p Point2) bool { return s.poly.contains(p) }

func (s *Solid) Intersect(o Point2, d Vector2) []Hit {
	return polyHits(&s.poly, o, d)
}

func polyHits(cp *convexPoly, o Point2, d Vector2) []Hit {
	ph := cp.intersect(o, d)
	hits := make([]Hit, 0, len(ph))
	for _, c := range ph {
		h := newHit(o, d, c.t, cp.U[c.edge], c.edge)
		h.Entering = c.entering
		hits = append(hits, h)
	}
	return hits
}

func (s *Solid) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	return refractSurface(s, r, h, p, s.Glass.Index(r.WavelengthNM), s.AmbientIndex)
}
