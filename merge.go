package xtalgo

import (
	"math"
	"time"
)

// PrepareForMerging classifies the collection, resolves the requested
// output type against the classifier's verdict, rewrites indices into
// the asymmetric unit (assigning Friedel signs for an anomalous
// target, collapsing them to SignNone for a mean target) and sorts by
// (hkl, sign). It returns the resolved concrete output type.
//
// A data-type hint claiming merged content (mean or anomalous) while
// the classifier proves the data unmerged is reported as
// *ErrTypeMismatch; the engine never silently merges the wrong way.
func (iv *Intensities) PrepareForMerging(requested DataType) (DataType, error) {
	g := iv.SpaceGroup
	if g == nil {
		return TypeUnknown, ErrNoSpaceGroup
	}
	detected, _ := iv.CheckDataType()
	if (iv.Type == TypeMean || iv.Type == TypeAnomalous) && detected == TypeUnmerged {
		return TypeUnknown, &ErrTypeMismatch{Requested: iv.Type, Detected: detected}
	}
	target, err := resolveDataType(requested, detected, g.IsCentrosymmetric())
	if err != nil {
		return TypeUnknown, err
	}
	switch target {
	case TypeMean:
		// Requesting a mean merge of sign-split data requires the
		// signs to be collapsed first, so that plus/minus runs of one
		// index combine; the run aggregation itself never infers this.
		for i := range iv.Data {
			iv.Data[i].Sign = SignNone
		}
		if err := iv.switchToASU(false); err != nil {
			return TypeUnknown, err
		}
	case TypeAnomalous:
		// Sign-less observations take their sign from the reduction
		// branch so that the Friedel split survives the run
		// aggregation; signs the adapter already supplied are kept.
		if err := iv.switchToASU(true); err != nil {
			return TypeUnknown, err
		}
	case TypeUnmerged:
		if err := iv.switchToASU(false); err != nil {
			return TypeUnknown, err
		}
	}
	iv.Sort()
	return target, nil
}

// MergeInPlace reduces the collection to the requested output type.
// Preference tags (TypeMergedMA, TypeMergedAM, TypeUAM) are resolved
// against the classifier's verdict; a TypeUnmerged result leaves the
// observations unaggregated (ASU-reduced and sorted only).
//
// Merging replaces the record slice; Isym audit codes and per-raw
// metadata do not survive. Calling MergeInPlace twice is semantically
// a no-op but resets every redundancy to 1.
func (iv *Intensities) MergeInPlace(requested DataType) error {
	start := time.Now()
	observations := len(iv.Data)
	target, err := iv.PrepareForMerging(requested)
	if err != nil {
		if iv.logger != nil {
			iv.logger.LogMerge(requested, observations, 0, err)
		}
		return err
	}
	if target == TypeUnmerged {
		iv.Type = TypeUnmerged
	} else {
		iv.Data = mergeRuns(iv.Data)
		iv.Type = target
	}
	if iv.metrics != nil {
		iv.metrics.RecordMerge(observations, len(iv.Data), time.Since(start))
	}
	if iv.logger != nil {
		iv.logger.LogMerge(target, observations, len(iv.Data), nil)
	}
	return nil
}

// Merge is like MergeInPlace but aggregates into a new collection,
// leaving the receiver untouched so it can still feed the merging
// statistics.
func (iv *Intensities) Merge(requested DataType) (*Intensities, error) {
	merged := iv.Clone()
	if err := merged.MergeInPlace(requested); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeRuns aggregates maximal runs of records sharing one
// (hkl, sign) key. The input must be sorted; the output reuses the
// input's backing array and preserves key order.
//
// The merged value is the equal-weight mean of the run. The merged
// sigma is the standard error of the mean from the measurement
// sigmas, raised to the scatter-based standard error when the run
// disagrees more than its sigmas explain; a run of one passes its
// sigma through unchanged.
func mergeRuns(data []Refl) []Refl {
	out := 0
	for i := 0; i < len(data); {
		j := i + 1
		sum := data[i].Value
		sigmaSq := data[i].Sigma * data[i].Sigma
		for j < len(data) && sameKey(data[j], data[i]) {
			sum += data[j].Value
			sigmaSq += data[j].Sigma * data[j].Sigma
			j++
		}
		n := j - i
		mean := sum / float64(n)
		sigma := math.Sqrt(sigmaSq) / float64(n)
		if n > 1 {
			var devSq float64
			for k := i; k < j; k++ {
				d := data[k].Value - mean
				devSq += d * d
			}
			if scatter := math.Sqrt(devSq / float64(n*(n-1))); scatter > sigma {
				sigma = scatter
			}
		}
		data[out] = Refl{
			HKL:   data[i].HKL,
			Sign:  data[i].Sign,
			NObs:  int32(n),
			Value: mean,
			Sigma: sigma,
		}
		out++
		i = j
	}
	return data[:out]
}
