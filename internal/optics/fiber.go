package optics

import (
	"fmt"
	"math"
)

// Fiber is a straight step-index fiber between faces at local x = ±Length/2
// with a core of CoreDiameter. Rays outside the acceptance cone are not
// coupled; coupled rays are guided to the opposite face.
type Fiber struct {
	base
	CoreIndex     Real
	CladdingIndex Real
	LossDBPerUnit Real
	length        Real
	core          Real
	poly          convexPoly
}

// fiber polygon edges, in construction order
const (
	fiberWallLow = iota
	fiberFaceHigh
	fiberWallHigh
	fiberFaceLow
)

func NewFiber(id string, pose Pose, length, coreDiameter, coreIndex, claddingIndex Real) (*Fiber, error) {
	if !(length > 0 && coreDiameter > 0) {
		return nil, fmt.Errorf("fiber size must be > 0, got %.6g x %.6g", length, coreDiameter)
	}
	if !(coreIndex > claddingIndex && claddingIndex >= 1) {
		return nil, fmt.Errorf("fiber needs core index > cladding index >= 1, got %.6g, %.6g", coreIndex, claddingIndex)
	}
	f := &Fiber{base: newBase(id, "fiber", pose), CoreIndex: coreIndex, CladdingIndex: claddingIndex, length: length, core: coreDiameter}
	f.rebuild = f.update
	f.update()
	return f, nil
}

func (f *Fiber) update() {
	w, h := f.length/2, f.core/2
	// counter-clockwise so edge i keeps index i
	f.poly = newConvexPoly([]Point2{
		f.f.toWorld(Point2{-w, -h}), f.f.toWorld(Point2{w, -h}),
		f.f.toWorld(Point2{w, h}), f.f.toWorld(Point2{-w, h}),
	})
}

// NA is the numerical aperture √(n_core² - n_clad²).
func (f *Fiber) NA() Real {
	return math.Sqrt(f.CoreIndex*f.CoreIndex - f.CladdingIndex*f.CladdingIndex)
}

func (f *Fiber) Bounds() Rect { return f.poly.bounds() }

func (f *Fiber) Intersect(o Point2, d Vector2) []Hit { return polyHits(&f.poly, o, d) }

func (f *Fiber) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	if !h.Entering || (h.SurfaceID != fiberFaceLow && h.SurfaceID != fiberFaceHigh) {
		return p.absorb(f, r)
	}
	ld := f.f.dirToLocal(r.Direction())
	if math.Abs(ld.X) < parallelEps {
		r.Terminate(ReasonNotCoupled)
		return nil
	}
	s := math.Copysign(1, ld.X)
	n0 := r.MediumIndex
	sinExt := math.Abs(ld.Y)
	if n0*sinExt > f.NA() {
		DebugLog("ray %d not coupled into %s: n0·sinθ=%.6g NA=%.6g", r.ID, f.id, n0*sinExt, f.NA())
		r.Terminate(ReasonNotCoupled)
		return nil
	}
	sinIn := n0 * sinExt / f.CoreIndex
	cosIn := math.Sqrt(1 - sinIn*sinIn)
	m := math.Copysign(sinIn/cosIn, ld.Y)

	entry := f.f.toLocal(h.Point)
	half := f.core / 2
	var bounces []Point2
	x, y, remaining := entry.X, entry.Y, f.length
	for remaining > 0 && len(bounces) < fiberMaxBouncePoints && m != 0 {
		wall := half
		if m < 0 {
			wall = -half
		}
		dx := (wall - y) / m
		if dx >= remaining {
			break
		}
		x += s * dx
		y = wall
		m = -m
		remaining -= dx
		bounces = append(bounces, f.f.toWorld(Point2{x, y}))
	}

	// exit position by folding the unfolded straight path into the core
	slope := math.Copysign(sinIn/cosIn, ld.Y)
	D := f.core
	u := math.Mod(entry.Y+half+slope*f.length, 2*D)
	if u < 0 {
		u += 2 * D
	}
	exitY, dirSign := u-half, math.Copysign(1, ld.Y)
	if u > D {
		exitY, dirSign = 2*D-u-half, -dirSign
	}
	exit := f.f.toWorld(Point2{s * f.length / 2, exitY})
	cosExt := math.Sqrt(1 - sinExt*sinExt)
	dir := f.f.dirToWorld(Vector2{s * cosExt, dirSign * sinExt})

	path := f.length / cosIn
	I := r.Intensity() * math.Pow(10, -f.LossDBPerUnit*path/10)
	if p.faint(r, I) {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	child := p.spawn(f, r, h.Point, dir, I)
	if child == nil {
		return p.finish(r, nil)
	}
	for _, b := range bounces {
		child.moveTo(b)
	}
	child.moveTo(exit)
	return p.finish(r, children(child))
}
