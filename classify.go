package xtalgo

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/xtalgo/xtalgo/hkl"
	"github.com/xtalgo/xtalgo/symmetry"
)

// DataProxy is the column-only view the classifier scans: a sequence
// of Miller indices under a space group. It allows plugging in a full
// Intensities collection as well as lighter-weight index-only views
// of the same data.
type DataProxy interface {
	Size() int
	HKL(i int) hkl.Miller
	SpaceGroup() *symmetry.Group
}

// MillerProxy adapts a bare index slice to DataProxy.
type MillerProxy struct {
	Millers []hkl.Miller
	Group   *symmetry.Group
}

func (p MillerProxy) Size() int                   { return len(p.Millers) }
func (p MillerProxy) HKL(i int) hkl.Miller        { return p.Millers[i] }
func (p MillerProxy) SpaceGroup() *symmetry.Group { return p.Group }

// intensitiesProxy adapts an Intensities collection to DataProxy.
type intensitiesProxy struct {
	iv *Intensities
}

func (p intensitiesProxy) Size() int                   { return len(p.iv.Data) }
func (p intensitiesProxy) HKL(i int) hkl.Miller        { return p.iv.Data[i].HKL }
func (p intensitiesProxy) SpaceGroup() *symmetry.Group { return p.iv.SpaceGroup }

// DataProxy returns a read-only index view of the collection for the
// classifier.
func (iv *Intensities) DataProxy() DataProxy {
	return intensitiesProxy{iv: iv}
}

// CheckDataType classifies the collection under its space group.
func (iv *Intensities) CheckDataType() (DataType, int) {
	return CheckDataTypeUnderSymmetry(iv.DataProxy())
}

// CheckDataTypeUnderSymmetry scans the indices once and decides
// whether they represent unmerged observations, merged means, or an
// anomalous Friedel-pair split. It returns the verdict and the number
// of distinct ASU indices seen.
//
// For each index the ASU representative and Friedel branch are
// derived; a branch seen twice for one representative proves the data
// is unmerged, a repeat on the opposite branch indicates an anomalous
// split, and under a centrosymmetric group any repeat at all means
// unmerged. The verdict is independent of input order. Without a
// space group the result is (TypeUnknown, 0).
func CheckDataTypeUnderSymmetry(proxy DataProxy) (DataType, int) {
	g := proxy.SpaceGroup()
	if g == nil {
		return TypeUnknown, 0
	}
	centric := g.IsCentrosymmetric()
	// One membership bitmap per Friedel branch, keyed by the packed
	// ASU index.
	plusSeen := roaring64.New()
	minusSeen := roaring64.New()
	distinct := 0
	verdict := TypeMean
	for i := 0; i < proxy.Size(); i++ {
		red, positive := g.ReduceToASU(proxy.HKL(i))
		key := red.Key()
		branch, other := plusSeen, minusSeen
		if !positive {
			branch, other = minusSeen, plusSeen
		}
		if !branch.Contains(key) && !other.Contains(key) {
			branch.Add(key)
			distinct++
			continue
		}
		if verdict == TypeUnmerged {
			continue
		}
		if centric || branch.Contains(key) {
			verdict = TypeUnmerged
		} else {
			branch.Add(key)
			verdict = TypeAnomalous
		}
	}
	return verdict, distinct
}
