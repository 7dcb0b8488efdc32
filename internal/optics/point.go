package optics

import "math"

// Point2 represents a position in the plane.
type Point2 struct {
	X, Y Real
}

// Add lets you translate a Point2 by a Vector2.
func (p Point2) Add(v Vector2) Point2 { return Point2{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from q to p.
func (p Point2) Sub(q Point2) Vector2 { return Vector2{p.X - q.X, p.Y - q.Y} }

func (p Point2) DistanceTo(q Point2) Real { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates between p (t=0) and q (t=1).
func (p Point2) Lerp(q Point2, t Real) Point2 {
	return Point2{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

func (p Point2) hasNaN() bool { return math.IsNaN(p.X) || math.IsNaN(p.Y) }

func (p Point2) finite() bool { return isFinite(p.X) && isFinite(p.Y) }
