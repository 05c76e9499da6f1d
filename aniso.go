package xtalgo

import (
	"math"

	"github.com/xtalgo/xtalgo/geom"
	"github.com/xtalgo/xtalgo/hkl"
)

// AnisoScaling is an anisotropic scaling correction defined by a
// symmetric tensor B. The zero tensor means no correction.
type AnisoScaling struct {
	B geom.SMat33
}

// OK reports whether a correction is present.
func (a AnisoScaling) OK() bool {
	return !a.B.AllZero()
}

// Scale returns the multiplicative correction exp(0.5 * s^T B s) for
// a reflection, where s is its reciprocal-space scattering vector in
// the given cell. It is a pure function of (index, cell, tensor).
func (a AnisoScaling) Scale(m hkl.Miller, cell *geom.UnitCell) float64 {
	s := cell.ScatteringVector(m)
	return math.Exp(0.5 * a.B.RUR(s))
}

// ApplyAnisoScaling multiplies every value and sigma by the
// correction factor of its index. Value and uncertainty scale
// identically. When to apply the correction relative to merging is
// pipeline policy; the records are simply rewritten in place. It is a
// no-op when no tensor is set.
func (iv *Intensities) ApplyAnisoScaling() {
	if !iv.AnisoB.OK() || !iv.Cell.IsSet() {
		return
	}
	for i := range iv.Data {
		r := &iv.Data[i]
		scale := iv.AnisoB.Scale(r.HKL, &iv.Cell)
		r.Value *= scale
		r.Sigma *= scale
	}
}
