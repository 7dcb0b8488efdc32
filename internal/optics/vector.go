package optics

import "math"

// Vector2 represents a direction (not a position) in the plane.
type Vector2 struct {
	X, Y Real
}

// Vector functions
func (a Vector2) Add(b Vector2) Vector2 { return Vector2{a.X + b.X, a.Y + b.Y} }
func (a Vector2) Sub(b Vector2) Vector2 { return Vector2{a.X - b.X, a.Y - b.Y} }
func (v Vector2) Mul(s Real) Vector2    { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Neg() Vector2          { return Vector2{-v.X, -v.Y} }

// Dot returns the dot product between two 2D vectors.
func (a Vector2) Dot(b Vector2) Real { return a.X*b.X + a.Y*b.Y }

// Cross returns the z component of the 3D cross product a × b.
func (a Vector2) Cross(b Vector2) Real { return a.X*b.Y - a.Y*b.X }

// Len returns the Euclidean length of the vector.
func (v Vector2) Len() Real   { return math.Hypot(v.X, v.Y) }
func (v Vector2) LenSq() Real { return v.Dot(v) }

// Norm returns a unit-length version of the vector.
// ok is false when the length is below NormEpsilon or not finite; the
// returned vector is then the zero vector, never NaN.
func (v Vector2) Norm() (Vector2, bool) {
	l := v.Len()
	if !isFinite(l) || l < NormEpsilon {
		return Vector2{}, false
	}
	return Vector2{v.X / l, v.Y / l}, true
}

// Rotate rotates the vector counter-clockwise by angle radians.
func (v Vector2) Rotate(angle Real) Vector2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vector2{c*v.X - s*v.Y, s*v.X + c*v.Y}
}

// Perp returns the vector rotated by +90°.
func (v Vector2) Perp() Vector2 { return Vector2{-v.Y, v.X} }

// Angle returns the polar angle of the vector in (-π, π].
func (v Vector2) Angle() Real { return math.Atan2(v.Y, v.X) }

func (v Vector2) hasNaN() bool { return math.IsNaN(v.X) || math.IsNaN(v.Y) }

// FromAngle returns the unit vector at the given polar angle.
func FromAngle(angle Real) Vector2 { return Vector2{math.Cos(angle), math.Sin(angle)} }

// reflect mirrors d about a surface with unit normal n: d - 2(d·n)n.
func reflect(d, n Vector2) Vector2 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}
