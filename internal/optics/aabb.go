package optics

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point2
}

// emptyRect is the identity for Union.
func emptyRect() Rect {
	return Rect{Min: Point2{math.Inf(1), math.Inf(1)}, Max: Point2{math.Inf(-1), math.Inf(-1)}}
}

// rectOf returns the smallest box containing all points.
func rectOf(pts ...Point2) Rect {
	r := emptyRect()
	for _, p := range pts {
		r = r.AddPoint(p)
	}
	return r
}

func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

func (r Rect) AddPoint(p Point2) Rect {
	return Rect{
		Min: Point2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Point2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both boxes.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return r.AddPoint(o.Min).AddPoint(o.Max)
}

// Expand grows the box by m on every side.
func (r Rect) Expand(m Real) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Min: Point2{r.Min.X - m, r.Min.Y - m}, Max: Point2{r.Max.X + m, r.Max.Y + m}}
}

func (r Rect) Diagonal() Real {
	if r.IsEmpty() {
		return 0
	}
	return r.Min.DistanceTo(r.Max)
}

func (r Rect) Contains(p Point2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

type rayRecips struct {
	invX, invY Real
	parX, parY bool // parallel flags (|D| < eps)
}

func newRayRecips(d Vector2) rayRecips {
	rr := rayRecips{parX: math.Abs(d.X) < parallelEps, parY: math.Abs(d.Y) < parallelEps}
	if !rr.parX {
		rr.invX = 1 / d.X
	}
	if !rr.parY {
		rr.invY = 1 / d.Y
	}
	return rr
}

// rayRect is the slab test; it reports whether the ray can reach the box
// and the entry distance (negative when the origin is inside).
func rayRect(o Point2, r Rect, rr rayRecips) (bool, Real) {
	if r.IsEmpty() {
		return false, 0
	}
	tmin, tmax := -1e300, 1e300

	// X
	if !rr.parX {
		t1 := (r.Min.X - o.X) * rr.invX
		t2 := (r.Max.X - o.X) * rr.invX
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if o.X < r.Min.X || o.X > r.Max.X {
		return false, 0
	}

	// Y
	if !rr.parY {
		t1 := (r.Min.Y - o.Y) * rr.invY
		t2 := (r.Max.Y - o.Y) * rr.invY
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if o.Y < r.Min.Y || o.Y > r.Max.Y {
		return false, 0
	}

	if tmax < 0 || tmin > tmax {
		return false, 0
	}
	return true, tmin
}
