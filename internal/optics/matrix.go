package optics

import "math"

// Mat2 is a 2x2 real matrix, row-major.
type Mat2 struct {
	M [2][2]Real
}

func I2() Mat2 { return Mat2{M: [2][2]Real{{1, 0}, {0, 1}}} }

// Rot2 returns the counter-clockwise rotation by a radians.
func Rot2(a Real) Mat2 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat2{M: [2][2]Real{{c, -s}, {s, c}}}
}

func (A Mat2) Mul(B Mat2) Mat2 {
	var C Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			C.M[i][j] = A.M[i][0]*B.M[0][j] + A.M[i][1]*B.M[1][j]
		}
	}
	return C
}

func (A Mat2) T() Mat2 {
	return Mat2{M: [2][2]Real{{A.M[0][0], A.M[1][0]}, {A.M[0][1], A.M[1][1]}}}
}

func (A Mat2) MulVec(v Vector2) Vector2 {
	return Vector2{A.M[0][0]*v.X + A.M[0][1]*v.Y, A.M[1][0]*v.X + A.M[1][1]*v.Y}
}
