package geom

import "math"

// Vec3 is a 3D vector of float64 components.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * d.
func (v Vec3) Scale(d float64) Vec3 {
	return Vec3{v.X * d, v.Y * d, v.Z * d}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Mat33 is a 3x3 matrix in row-major order.
type Mat33 [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat33 {
	return Mat33{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Multiply returns the matrix-vector product m * p.
func (m Mat33) Multiply(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}

// LeftMultiply returns the vector-matrix product p^T * m, i.e. the
// transpose applied to p.
func (m Mat33) LeftMultiply(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p.X + m[1][0]*p.Y + m[2][0]*p.Z,
		m[0][1]*p.X + m[1][1]*p.Y + m[2][1]*p.Z,
		m[0][2]*p.X + m[1][2]*p.Y + m[2][2]*p.Z,
	}
}

// Mul returns the matrix product m * b.
func (m Mat33) Mul(b Mat33) Mat33 {
	var r Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*b[0][j] + m[i][1]*b[1][j] + m[i][2]*b[2][j]
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Mat33) Transpose() Mat33 {
	return Mat33{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Determinant returns the determinant of m.
func (m Mat33) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[2][1]*m[1][2]) +
		m[0][1]*(m[1][2]*m[2][0]-m[2][2]*m[1][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[2][0]*m[1][1])
}

// Inverse returns the inverse of m. The caller must ensure m is not
// singular.
func (m Mat33) Inverse() Mat33 {
	invDet := 1.0 / m.Determinant()
	var inv Mat33
	inv[0][0] = invDet * (m[1][1]*m[2][2] - m[2][1]*m[1][2])
	inv[0][1] = invDet * (m[0][2]*m[2][1] - m[0][1]*m[2][2])
	inv[0][2] = invDet * (m[0][1]*m[1][2] - m[0][2]*m[1][1])
	inv[1][0] = invDet * (m[1][2]*m[2][0] - m[1][0]*m[2][2])
	inv[1][1] = invDet * (m[0][0]*m[2][2] - m[0][2]*m[2][0])
	inv[1][2] = invDet * (m[1][0]*m[0][2] - m[0][0]*m[1][2])
	inv[2][0] = invDet * (m[1][0]*m[2][1] - m[2][0]*m[1][1])
	inv[2][1] = invDet * (m[2][0]*m[0][1] - m[0][0]*m[2][1])
	inv[2][2] = invDet * (m[0][0]*m[1][1] - m[1][0]*m[0][1])
	return inv
}

// SMat33 is a symmetric 3x3 matrix, stored as its six independent
// elements. It is used for the anisotropic scaling tensor.
type SMat33 struct {
	U11, U22, U33, U12, U13, U23 float64
}

// AllZero reports whether every element is zero.
func (s SMat33) AllZero() bool {
	return s.U11 == 0 && s.U22 == 0 && s.U33 == 0 &&
		s.U12 == 0 && s.U13 == 0 && s.U23 == 0
}

// Mat33 returns the full matrix form.
func (s SMat33) Mat33() Mat33 {
	return Mat33{
		{s.U11, s.U12, s.U13},
		{s.U12, s.U22, s.U23},
		{s.U13, s.U23, s.U33},
	}
}

// RUR returns the quadratic form r^T * U * r.
func (s SMat33) RUR(r Vec3) float64 {
	return r.X*r.X*s.U11 + r.Y*r.Y*s.U22 + r.Z*r.Z*s.U33 +
		2*(r.X*r.Y*s.U12+r.X*r.Z*s.U13+r.Y*r.Z*s.U23)
}

// Add returns s + o.
func (s SMat33) Add(o SMat33) SMat33 {
	return SMat33{
		U11: s.U11 + o.U11, U22: s.U22 + o.U22, U33: s.U33 + o.U33,
		U12: s.U12 + o.U12, U13: s.U13 + o.U13, U23: s.U23 + o.U23,
	}
}

// Scaled returns s with every element multiplied by d.
func (s SMat33) Scaled(d float64) SMat33 {
	return SMat33{
		U11: s.U11 * d, U22: s.U22 * d, U33: s.U33 * d,
		U12: s.U12 * d, U13: s.U13 * d, U23: s.U23 * d,
	}
}
