package optics

import "math"

// Refraction with side awareness.
// Contract: eta must be n1/n2 for the *current* interface and N must point
// against I (I·N ≤ 0). Both must be unit. ok is false on total internal
// reflection.
func refract(I, N Vector2, eta Real) (Vector2, bool) {
	cosi := -I.Dot(N)
	// Numeric clamp to [0,1] to avoid tiny negatives/overs.
	cosi = clamp01(cosi)
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Vector2{}, false // total internal reflection
	}
	T := I.Mul(eta).Add(N.Mul(eta*cosi - math.Sqrt(k)))
	return T, true
}

// intersectSegment returns the distance along d at which the ray crosses
// the segment a-b, and the segment parameter s in [0,1].
func intersectSegment(o Point2, d Vector2, a, b Point2) (t, s Real, ok bool) {
	e := b.Sub(a)
	denom := d.Cross(e)
	if math.Abs(denom) < parallelEps {
		return 0, 0, false
	}
	w := a.Sub(o)
	t = w.Cross(e) / denom
	s = w.Cross(d) / denom
	if s < 0 || s > 1 || t <= HitEpsilon {
		return 0, 0, false
	}
	return t, s, true
}

// segmentNormal is the unit normal of a-b, oriented against d.
func segmentNormal(a, b Point2, d Vector2) Vector2 {
	n, _ := b.Sub(a).Perp().Norm()
	return orientAgainst(n, d)
}

// intersectCircle returns both roots of |o + t·d - c| = r for unit d,
// nearest first.
func intersectCircle(o Point2, d Vector2, c Point2, r Real) (t1, t2 Real, ok bool) {
	oc := o.Sub(c)
	b := oc.Dot(d)
	cc := oc.Dot(oc) - r*r
	disc := b*b - cc
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return -b - sq, -b + sq, true
}

// orientAgainst flips n so that n·d ≤ 0.
func orientAgainst(n, d Vector2) Vector2 {
	if n.Dot(d) > 0 {
		return n.Neg()
	}
	return n
}

// convexPoly is a convex polygon expressed as the intersection of half-planes
// U[i]·x <= D[i] with unit outward normals U.
type convexPoly struct {
	Vertices []Point2 // counter-clockwise, world space
	U        []Vector2
	D        []Real
}

func newConvexPoly(vertices []Point2) convexPoly {
	cp := convexPoly{Vertices: vertices}
	// force counter-clockwise winding so that edge.Perp() points inward
	area := 0.0
	for i := range vertices {
		a, b := vertices[i], vertices[(i+1)%len(vertices)]
		area += a.X*b.Y - b.X*a.Y
	}
	if area < 0 {
		rev := make([]Point2, len(vertices))
		for i := range vertices {
			rev[i] = vertices[len(vertices)-1-i]
		}
		cp.Vertices = rev
	}
	n := len(cp.Vertices)
	cp.U = make([]Vector2, n)
	cp.D = make([]Real, n)
	for i := 0; i < n; i++ {
		a, b := cp.Vertices[i], cp.Vertices[(i+1)%n]
		in, _ := b.Sub(a).Perp().Norm()
		out := in.Neg()
		cp.U[i] = out
		cp.D[i] = out.X*a.X + out.Y*a.Y
	}
	return cp
}

func (cp *convexPoly) contains(p Point2) bool {
	for i := range cp.U {
		if cp.U[i].X*p.X+cp.U[i].Y*p.Y > cp.D[i]+1e-9 {
			return false
		}
	}
	return true
}

func (cp *convexPoly) bounds() Rect { return rectOf(cp.Vertices...) }

// polyHit is a single crossing of a convex polygon boundary.
type polyHit struct {
	t        Real
	edge     int
	entering bool
}

// intersect by half-plane clipping. It returns the entry crossing (when the
// origin is outside) and the exit crossing, both with t > HitEpsilon.
func (cp *convexPoly) intersect(o Point2, d Vector2) []polyHit {
	tEnter := -1e300
	tExit := 1e300
	enterIdx := -1
	exitIdx := -1

	for i := range cp.U {
		n := cp.U[i]
		nO := n.X*o.X + n.Y*o.Y
		nD := n.X*d.X + n.Y*d.Y
		rhs := cp.D[i] - nO

		if math.Abs(nD) < parallelEps {
			if rhs < -1e-12 {
				return nil
			}
			continue
		}
		t := rhs / nD
		if nD > 0 {
			if t < tExit {
				tExit = t
				exitIdx = i
			}
		} else {
			if t > tEnter {
				tEnter = t
				enterIdx = i
			}
		}
	}

	if tEnter > tExit || exitIdx < 0 {
		return nil
	}
	var hits []polyHit
	if enterIdx >= 0 && tEnter > HitEpsilon {
		hits = append(hits, polyHit{t: tEnter, edge: enterIdx, entering: true})
	}
	if tExit > HitEpsilon {
		hits = append(hits, polyHit{t: tExit, edge: exitIdx, entering: false})
	}
	return hits
}
