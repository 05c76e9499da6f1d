package xtalgo

import (
	"fmt"

	"github.com/xtalgo/xtalgo/hkl"
)

// Sign designates the Friedel branch of an observation.
type Sign int8

const (
	// SignMinus marks the I(-) branch of a Friedel pair.
	SignMinus Sign = -1
	// SignNone marks a mean or unmerged (non-anomalous) observation.
	SignNone Sign = 0
	// SignPlus marks the I(+) branch of a Friedel pair.
	SignPlus Sign = 1
)

func (s Sign) String() string {
	switch s {
	case SignMinus:
		return "-"
	case SignPlus:
		return "+"
	default:
		return ""
	}
}

// Refl is a single observation, or a single merged reflection after
// MergeInPlace.
type Refl struct {
	// HKL is the Miller index, raw or ASU-reduced depending on the
	// pipeline stage.
	HKL hkl.Miller
	// Sign is the Friedel branch; SignNone for mean or unmerged data.
	Sign Sign
	// Isym is an audit code identifying the symmetry operation that
	// produced the raw index from the canonical one, for unmerged
	// data only. It is never used as a merge key and is discarded by
	// merging.
	Isym int8
	// NObs is the number of raw observations folded into this record;
	// 1 for still-unmerged records.
	NObs int32
	// Value is the intensity estimate.
	Value float64
	// Sigma is the one-sigma uncertainty of Value; always > 0 for
	// records admitted by the ingestion filter.
	Sigma float64
}

// Compare orders records by (hkl, sign) lexicographically.
func (r Refl) Compare(o Refl) int {
	if c := r.HKL.Compare(o.HKL); c != 0 {
		return c
	}
	return int(r.Sign) - int(o.Sign)
}

// sameKey reports whether two records belong to the same merge run.
func sameKey(a, b Refl) bool {
	return a.HKL == b.HKL && a.Sign == b.Sign
}

// IntensityLabel returns the conventional column label of a merged
// record: "<I>", "I(+)" or "I(-)".
func (r Refl) IntensityLabel() string {
	switch r.Sign {
	case SignPlus:
		return "I(+)"
	case SignMinus:
		return "I(-)"
	default:
		return "<I>"
	}
}

// HKLLabel returns a human-readable label like "I(+) (1 2 3)".
func (r Refl) HKLLabel() string {
	return fmt.Sprintf("%s (%d %d %d)", r.IntensityLabel(), r.HKL[0], r.HKL[1], r.HKL[2])
}
