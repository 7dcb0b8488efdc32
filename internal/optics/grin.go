package optics

import (
	"fmt"
	"math"
)

// grinSamples is how many interior points are recorded along the curved path.
const grinSamples = 16

// GRINLens is a slab with radial index n(r) = n0(1 - g²r²/2) between faces
// at local x = ±length/2. Rays follow the analytic sinusoidal path.
type GRINLens struct {
	base
	N0           Real
	Gradient     Real // g, 1/scene unit
	AmbientIndex Real
	length       Real
	height       Real
	poly         convexPoly
}

func NewGRINLens(id string, pose Pose, length, height, n0, gradient Real) (*GRINLens, error) {
	if !(length > 0 && height > 0) {
		return nil, fmt.Errorf("GRIN size must be > 0, got %.6g x %.6g", length, height)
	}
	if !(n0 >= 1) || gradient < 0 {
		return nil, fmt.Errorf("GRIN needs n0 >= 1 and g >= 0, got %.6g, %.6g", n0, gradient)
	}
	g := &GRINLens{base: newBase(id, "grin_lens", pose), N0: n0, Gradient: gradient, AmbientIndex: 1, length: length, height: height}
	g.rebuild = g.update
	g.update()
	return g, nil
}

func (g *GRINLens) update() {
	w, h := g.length/2, g.height/2
	g.poly = newConvexPoly([]Point2{
		g.f.toWorld(Point2{-w, -h}), g.f.toWorld(Point2{w, -h}),
		g.f.toWorld(Point2{w, h}), g.f.toWorld(Point2{-w, h}),
	})
}

// Pitch is the fraction of a full sinusoidal period completed over the length.
func (g *GRINLens) Pitch() Real { return g.Gradient * g.length / (2 * math.Pi) }

func (g *GRINLens) Bounds() Rect { return g.poly.bounds() }

func (g *GRINLens) Intersect(o Point2, d Vector2) []Hit { return polyHits(&g.poly, o, d) }

// transfer applies the GRIN ABCD matrix over distance z.
func (g *GRINLens) transfer(y, u, z Real) (Real, Real) {
	if g.Gradient == 0 {
		return y + u*z, u
	}
	gz := g.Gradient * z
	c, s := math.Cos(gz), math.Sin(gz)
	return y*c + u*s/g.Gradient, -g.Gradient*y*s + u*c
}

func (g *GRINLens) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	ld := g.f.dirToLocal(r.Direction())
	entry := g.f.toLocal(h.Point)
	onFace := math.Abs(math.Abs(entry.X)-g.length/2) < 1e-6*(1+g.length)
	if !h.Entering || !onFace || math.Abs(ld.X) < parallelEps {
		return p.absorb(g, r)
	}
	s := math.Copysign(1, ld.X)

	// entry refraction at the axial index
	faceN := Vector2{-s, 0}
	in, ok := refract(ld, faceN, r.MediumIndex/g.N0)
	if !ok {
		return p.absorb(g, r)
	}
	u0 := in.Y / math.Abs(in.X)
	y1, u1 := g.transfer(entry.Y, u0, g.length)
	if math.Abs(y1) > g.height/2 {
		// leaves through the side wall
		return p.absorb(g, r)
	}
	inside, _ := Vector2{s, u1}.Norm()
	out, ok := refract(inside, Vector2{-s, 0}, g.N0/g.AmbientIndex)
	if !ok {
		return p.absorb(g, r)
	}

	child := p.spawn(g, r, h.Point, g.f.dirToWorld(out), r.Intensity())
	if child == nil {
		return p.finish(r, nil)
	}
	for i := 1; i <= grinSamples; i++ {
		z := g.length * Real(i) / grinSamples
		y, _ := g.transfer(entry.Y, u0, z)
		child.moveTo(g.f.toWorld(Point2{entry.X + s*z, y}))
	}
	child.MediumIndex = g.AmbientIndex
	return p.finish(r, children(child))
}
