package optics

// Hit is one forward intersection between a ray and an element surface.
// Normal is unit and oriented against the incoming ray.
type Hit struct {
	Distance  Real
	Point     Point2
	Normal    Vector2
	SurfaceID int
	Entering  bool // crossing from outside to inside (multi-surface solids)
}

func newHit(o Point2, d Vector2, t Real, n Vector2, surface int) Hit {
	return Hit{
		Distance:  t,
		Point:     o.Add(d.Mul(t)),
		Normal:    orientAgainst(n, d),
		SurfaceID: surface,
	}
}

// nearest returns the hit with the smallest distance; first wins on ties.
func nearest(hits []Hit) (Hit, bool) {
	best, ok := Hit{}, false
	for _, h := range hits {
		if h.Distance <= HitEpsilon || !isFinite(h.Distance) {
			continue
		}
		if !ok || h.Distance < best.Distance {
			best, ok = h, true
		}
	}
	return best, ok
}
