package xtalgo

import (
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtalgo/xtalgo/hkl"
)

// Binner routes reflections to resolution shells. Implementations are
// external collaborators; the engine only uses the shell index to
// route accumulators.
type Binner interface {
	// ShellOf returns the shell index of a reflection, in [0, Size()).
	ShellOf(m hkl.Miller) int
	// Size returns the number of shells.
	Size() int
}

// MergingR accumulates the merging R-statistics of one resolution
// shell (or of a whole dataset). The derived ratios are computed on
// read, so partial accumulators combine by field-wise addition via
// AddOther before the ratios are taken.
type MergingR struct {
	AllRefl      int     // contributing raw observations
	UniqueRefl   int     // unique merged reflections
	RMergeNum    float64 // numerator of R-merge
	RMeasNum     float64 // numerator of R-meas
	RPimNum      float64 // numerator of R-pim
	IntensitySum float64 // shared denominator
}

// RMerge returns sum|Ii - <I>| / sum(Ii).
func (m *MergingR) RMerge() float64 { return m.RMergeNum / m.IntensitySum }

// RMeas returns the redundancy-independent R-factor, with each run's
// contribution scaled by sqrt(n/(n-1)).
func (m *MergingR) RMeas() float64 { return m.RMeasNum / m.IntensitySum }

// RPim returns the precision-indicating R-factor, with each run's
// contribution scaled by 1/sqrt(n-1).
func (m *MergingR) RPim() float64 { return m.RPimNum / m.IntensitySum }

// Add folds in one merge run: rMergeNum is the run's sum of absolute
// deviations from its mean (must be 0 for nobs == 1), nobs its length
// and intensitySum its sum of intensities.
func (m *MergingR) Add(rMergeNum float64, nobs int, intensitySum float64) {
	m.AllRefl += nobs
	m.UniqueRefl++
	if nobs > 1 {
		m.RMergeNum += rMergeNum
		t := rMergeNum / math.Sqrt(float64(nobs-1))
		m.RPimNum += t
		m.RMeasNum += math.Sqrt(float64(nobs)) * t
	}
	m.IntensitySum += intensitySum
}

// AddOther combines two accumulators field-wise. The operation is
// associative and commutative, so shards may be combined in any
// order.
func (m *MergingR) AddOther(o MergingR) {
	m.AllRefl += o.AllRefl
	m.UniqueRefl += o.UniqueRefl
	m.RMergeNum += o.RMergeNum
	m.RMeasNum += o.RMeasNum
	m.RPimNum += o.RPimNum
	m.IntensitySum += o.IntensitySum
}

// CalculateMergingRs computes per-shell merging R-statistics from the
// same (hkl, sign) run partition the merge engine uses. The
// collection must be sorted and still unmerged (post-merge data
// yields only singleton runs and therefore zero numerators).
//
// A nil binner yields a single overall accumulator.
func (iv *Intensities) CalculateMergingRs(binner Binner) ([]MergingR, error) {
	start := time.Now()
	if !iv.IsSorted() {
		return nil, ErrUnsorted
	}
	rs := newShells(binner)
	accumulateRuns(iv.Data, binner, rs)
	if iv.metrics != nil {
		iv.metrics.RecordStatistics(len(rs), time.Since(start))
	}
	return rs, nil
}

// CalculateMergingRsParallel is CalculateMergingRs with the run
// partition sharded across workers; each shard produces partial
// accumulators that are field-summed, so the result is identical to
// the serial computation up to floating-point addition order.
// workers <= 0 means GOMAXPROCS.
func (iv *Intensities) CalculateMergingRsParallel(binner Binner, workers int) ([]MergingR, error) {
	start := time.Now()
	if !iv.IsSorted() {
		return nil, ErrUnsorted
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bounds := chunkAtRunBoundaries(iv.Data, workers)
	partials := make([][]MergingR, len(bounds)-1)
	var g errgroup.Group
	for w := 0; w < len(bounds)-1; w++ {
		w := w
		g.Go(func() error {
			rs := newShells(binner)
			accumulateRuns(iv.Data[bounds[w]:bounds[w+1]], binner, rs)
			partials[w] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rs := newShells(binner)
	for _, part := range partials {
		for i := range part {
			rs[i].AddOther(part[i])
		}
	}
	if iv.metrics != nil {
		iv.metrics.RecordStatistics(len(rs), time.Since(start))
	}
	return rs, nil
}

func newShells(binner Binner) []MergingR {
	if binner == nil {
		return make([]MergingR, 1)
	}
	return make([]MergingR, binner.Size())
}

// accumulateRuns folds every maximal (hkl, sign) run of the sorted
// slice into the shell accumulators.
func accumulateRuns(data []Refl, binner Binner, rs []MergingR) {
	for i := 0; i < len(data); {
		j := i + 1
		sum := data[i].Value
		for j < len(data) && sameKey(data[j], data[i]) {
			sum += data[j].Value
			j++
		}
		n := j - i
		var sumDev float64
		if n > 1 {
			mean := sum / float64(n)
			for k := i; k < j; k++ {
				sumDev += math.Abs(data[k].Value - mean)
			}
		}
		shell := 0
		if binner != nil {
			shell = binner.ShellOf(data[i].HKL)
		}
		rs[shell].Add(sumDev, n, sum)
		i = j
	}
}

// chunkAtRunBoundaries returns len <= workers+1 cut points into data
// such that no (hkl, sign) run is split across chunks.
func chunkAtRunBoundaries(data []Refl, workers int) []int {
	bounds := []int{0}
	for w := 1; w < workers; w++ {
		cut := w * len(data) / workers
		for cut > bounds[len(bounds)-1] && cut < len(data) && sameKey(data[cut], data[cut-1]) {
			cut++
		}
		if cut > bounds[len(bounds)-1] && cut < len(data) {
			bounds = append(bounds, cut)
		}
	}
	return append(bounds, len(data))
}

// Correlation accumulates a Pearson correlation between paired
// observations. The zero value is ready to use.
type Correlation struct {
	N            int
	MeanX, MeanY float64
	SumXX        float64
	SumYY        float64
	SumXY        float64
}

// Add folds in one (x, y) pair.
func (c *Correlation) Add(x, y float64) {
	c.N++
	weight := float64(c.N-1) / float64(c.N)
	dx := x - c.MeanX
	dy := y - c.MeanY
	c.SumXX += weight * dx * dx
	c.SumYY += weight * dy * dy
	c.SumXY += weight * dx * dy
	c.MeanX += dx / float64(c.N)
	c.MeanY += dy / float64(c.N)
}

// Coefficient returns the Pearson correlation coefficient; NaN when
// fewer than 2 pairs were added or either side has zero variance.
func (c *Correlation) Coefficient() float64 {
	return c.SumXY / math.Sqrt(c.SumXX*c.SumYY)
}

// CalculateCorrelation computes the correlation of intensities over
// the (hkl, sign) intersection of two already-merged collections,
// e.g. two halves of a redundant dataset. Both collections must be
// sorted; the intersection is taken by a sorted merge-join and
// reflections present in only one collection are excluded.
//
// An intersection smaller than 2 leaves the coefficient undefined and
// is reported as ErrDegenerateStats alongside the partial result.
func (iv *Intensities) CalculateCorrelation(other *Intensities) (Correlation, error) {
	var c Correlation
	if !iv.IsSorted() || !other.IsSorted() {
		return c, ErrUnsorted
	}
	a, b := iv.Data, other.Data
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch cmp := a[i].Compare(b[j]); {
		case cmp < 0:
			i++
		case cmp > 0:
			j++
		default:
			c.Add(a[i].Value, b[j].Value)
			i++
			j++
		}
	}
	if c.N < 2 {
		return c, ErrDegenerateStats
	}
	return c, nil
}
