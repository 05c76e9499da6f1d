package geom

import (
	"math"

	"github.com/xtalgo/xtalgo/hkl"
)

// UnitCell holds crystal unit-cell parameters together with the
// derived orthogonalization and fractionalization matrices.
//
// The zero value means "no cell"; use NewUnitCell to construct one.
type UnitCell struct {
	A, B, C            float64 // axis lengths [A]
	Alpha, Beta, Gamma float64 // angles [deg]
	Orth               Mat33   // fractional -> orthogonal
	Frac               Mat33   // orthogonal -> fractional
	Volume             float64
}

// NewUnitCell creates a unit cell from its six parameters and
// precomputes the transformation matrices.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) UnitCell {
	u := UnitCell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
	cosA := cosDeg(alpha)
	cosB := cosDeg(beta)
	cosG := cosDeg(gamma)
	sinG := sinDeg(gamma)
	// volume factor sqrt(1 - cos^2 terms + 2 cos products)
	v := math.Sqrt(1 - cosA*cosA - cosB*cosB - cosG*cosG + 2*cosA*cosB*cosG)
	u.Volume = a * b * c * v
	u.Orth = Mat33{
		{a, b * cosG, c * cosB},
		{0, b * sinG, c * (cosA - cosB*cosG) / sinG},
		{0, 0, c * v / sinG},
	}
	u.Frac = u.Orth.Inverse()
	return u
}

// IsSet reports whether the cell has been initialized with real
// parameters.
func (u *UnitCell) IsSet() bool {
	return u.A > 0 && u.B > 0 && u.C > 0
}

// ScatteringVector returns the reciprocal-space vector s of a Miller
// index, obtained by left-multiplying the fractionalization matrix.
func (u *UnitCell) ScatteringVector(m hkl.Miller) Vec3 {
	return u.Frac.LeftMultiply(Vec3{float64(m[0]), float64(m[1]), float64(m[2])})
}

// OneOverDSq returns 1/d^2 for the given Miller index.
func (u *UnitCell) OneOverDSq(m hkl.Miller) float64 {
	return u.ScatteringVector(m).LengthSq()
}

// D returns the resolution d of the given Miller index. It is +Inf
// for (0,0,0).
func (u *UnitCell) D(m hkl.Miller) float64 {
	return 1 / math.Sqrt(u.OneOverDSq(m))
}

func cosDeg(deg float64) float64 {
	// exact values at the right angles common in cell parameters
	switch deg {
	case 90:
		return 0
	case 180:
		return -1
	}
	return math.Cos(deg * math.Pi / 180)
}

func sinDeg(deg float64) float64 {
	if deg == 90 {
		return 1
	}
	return math.Sin(deg * math.Pi / 180)
}
