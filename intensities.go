package xtalgo

import (
	"math"
	"slices"

	"github.com/xtalgo/xtalgo/geom"
	"github.com/xtalgo/xtalgo/hkl"
	"github.com/xtalgo/xtalgo/symmetry"
)

// Intensities is an ordered collection of reflection observations for
// one dataset, together with the dataset-level attributes needed to
// interpret them.
//
// A collection is populated by one adapter, optionally filtered and
// ASU-reduced in place, merged at most once, and then consumed by the
// statistics functions or an output adapter. It owns its records
// outright.
type Intensities struct {
	// Data is the record slice; insertion order until Sort.
	Data []Refl
	// SpaceGroup may be nil ("none"); any operation requiring
	// symmetry reduction then fails with ErrNoSpaceGroup.
	SpaceGroup *symmetry.Group
	// Cell is the unit cell; the zero value means "not set".
	Cell geom.UnitCell
	// CellRMSD holds optional per-parameter RMSDs of the cell, in the
	// order a, b, c, alpha, beta, gamma.
	CellRMSD [6]float64
	// Wavelength is the radiation wavelength in Angstroms.
	Wavelength float64
	// Type tags the content; set by the adapter as a hint and updated
	// by MergeInPlace.
	Type DataType
	// IsymOps lists the symmetry operations the Isym audit codes
	// refer to; populated when indices are switched to the ASU.
	IsymOps []symmetry.Op
	// AnisoB is the anisotropic scaling correction; the zero tensor
	// means no correction.
	AnisoB AnisoScaling

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty collection.
func New(optFns ...Option) *Intensities {
	o := applyOptions(optFns)
	return &Intensities{
		SpaceGroup: o.spacegroup,
		Cell:       o.cell,
		Wavelength: o.wavelength,
		Type:       o.hint,
		logger:     o.logger,
		metrics:    o.metrics,
	}
}

// Len returns the number of records.
func (iv *Intensities) Len() int {
	return len(iv.Data)
}

// SetSpaceGroup sets the space group; nil means "none".
func (iv *Intensities) SetSpaceGroup(g *symmetry.Group) {
	iv.SpaceGroup = g
}

// SetUnitCell sets the unit cell and optional per-parameter RMSDs.
func (iv *Intensities) SetUnitCell(cell geom.UnitCell, rmsd [6]float64) {
	iv.Cell = cell
	iv.CellRMSD = rmsd
}

// SetDataTypeHint records what the adapter claims the data to be.
func (iv *Intensities) SetDataTypeHint(t DataType) {
	iv.Type = t
}

// SpacegroupStr returns the space-group name, or "none".
func (iv *Intensities) SpacegroupStr() string {
	if iv.SpaceGroup == nil {
		return "none"
	}
	return iv.SpaceGroup.Name
}

// AddIfValid appends one raw observation after the validity filter:
// records with a NaN value or a non-positive sigma are dropped
// silently. Some formats mark rejected observations with negative
// sigma; sigma 0.0 is rare but equally unusable.
func (iv *Intensities) AddIfValid(h hkl.Miller, sign Sign, isym int8, value, sigma float64) {
	ok := !math.IsNaN(value) && sigma > 0
	if iv.metrics != nil {
		iv.metrics.RecordIngest(ok)
	}
	if !ok {
		return
	}
	iv.Data = append(iv.Data, Refl{HKL: h, Sign: sign, Isym: isym, NObs: 1, Value: value, Sigma: sigma})
}

// Sort orders the records by (hkl, sign). Sorted order is a
// precondition for merging, merging statistics and correlation.
func (iv *Intensities) Sort() {
	slices.SortFunc(iv.Data, Refl.Compare)
}

// IsSorted reports whether the records are in (hkl, sign) order.
func (iv *Intensities) IsSorted() bool {
	return slices.IsSortedFunc(iv.Data, Refl.Compare)
}

// RemoveSystematicAbsences removes reflections forbidden by the space
// group. It is a no-op when no space group is set.
func (iv *Intensities) RemoveSystematicAbsences() {
	if iv.SpaceGroup == nil {
		return
	}
	before := len(iv.Data)
	iv.Data = slices.DeleteFunc(iv.Data, func(r Refl) bool {
		return iv.SpaceGroup.IsSystematicallyAbsent(r.HKL)
	})
	if removed := before - len(iv.Data); removed > 0 && iv.logger != nil {
		iv.logger.LogFilter("systematic_absences", removed, len(iv.Data))
	}
}

// SwitchToASUIndices rewrites every index to its asymmetric-unit
// representative in place and records the reducing operation in the
// Isym audit field. Friedel signs are assigned from the reduction
// branch when the collection is typed anomalous.
func (iv *Intensities) SwitchToASUIndices() error {
	return iv.switchToASU(iv.Type == TypeAnomalous)
}

// switchToASU performs the index rewrite; when anomalous is true,
// records still carrying SignNone take their sign from the reduction
// branch. Signs already assigned by an adapter are never overwritten.
func (iv *Intensities) switchToASU(anomalous bool) error {
	g := iv.SpaceGroup
	if g == nil {
		return ErrNoSpaceGroup
	}
	for i := range iv.Data {
		r := &iv.Data[i]
		red, positive, opIdx := g.ReduceToASUWithOp(r.HKL)
		r.HKL = red
		// MTZ-style audit code: 2n-1 for the positive branch of the
		// n-th operation, 2n for its Friedel mate.
		code := 2 * (opIdx + 1)
		if positive {
			code--
		}
		r.Isym = int8(min(code, math.MaxInt8))
		if anomalous && r.Sign == SignNone {
			if positive {
				r.Sign = SignPlus
			} else {
				r.Sign = SignMinus
			}
		}
	}
	iv.IsymOps = g.Ops()
	return nil
}

// ResolutionRange returns (dMax, dMin) over the collection, ignoring
// the (0,0,0) index. It returns zeros when the cell is not set or the
// collection is empty.
func (iv *Intensities) ResolutionRange() (dMax, dMin float64) {
	if !iv.Cell.IsSet() {
		return 0, 0
	}
	lo, hi := math.Inf(1), 0.0
	for i := range iv.Data {
		invD2 := iv.Cell.OneOverDSq(iv.Data[i].HKL)
		if invD2 == 0 {
			continue
		}
		lo = math.Min(lo, invD2)
		hi = math.Max(hi, invD2)
	}
	if hi == 0 {
		return 0, 0
	}
	return 1 / math.Sqrt(lo), 1 / math.Sqrt(hi)
}

// Clone returns a deep copy of the collection sharing no state with
// the original.
func (iv *Intensities) Clone() *Intensities {
	cp := *iv
	cp.Data = slices.Clone(iv.Data)
	cp.IsymOps = slices.Clone(iv.IsymOps)
	return &cp
}
