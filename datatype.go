package xtalgo

import "fmt"

// DataType classifies the content of a reflection collection, or
// requests a particular output shape from MergeInPlace.
type DataType int

const (
	// TypeUnknown means the content has not been determined.
	TypeUnknown DataType = iota
	// TypeUnmerged means multiple observations per unique reflection.
	TypeUnmerged
	// TypeMean means one merged mean intensity per unique reflection.
	TypeMean
	// TypeAnomalous means merged intensities split into Friedel
	// branches I(+)/I(-).
	TypeAnomalous

	// TypeMergedMA requests mean if available, otherwise anomalous.
	TypeMergedMA
	// TypeMergedAM requests anomalous if available, otherwise mean.
	TypeMergedAM
	// TypeUAM requests unmerged if available, otherwise TypeMergedAM.
	TypeUAM
)

func (t DataType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeUnmerged:
		return "unmerged"
	case TypeMean:
		return "mean"
	case TypeAnomalous:
		return "anomalous"
	case TypeMergedMA:
		return "mean-or-anomalous"
	case TypeMergedAM:
		return "anomalous-or-mean"
	case TypeUAM:
		return "unmerged-or-merged"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// Label returns the conventional intensity column label for the type:
// "I" for unmerged, "<I>" for mean, "I+/I-" for anomalous and "n/a"
// otherwise.
func (t DataType) Label() string {
	switch t {
	case TypeUnmerged:
		return "I"
	case TypeMean:
		return "<I>"
	case TypeAnomalous:
		return "I+/I-"
	default:
		return "n/a"
	}
}

// isConcrete reports whether t names actual content rather than a
// preference request.
func (t DataType) isConcrete() bool {
	return t == TypeUnmerged || t == TypeMean || t == TypeAnomalous
}

// resolveDataType turns a requested type (possibly a preference tag)
// into the concrete output type, given the classifier's verdict and
// whether the space group is centrosymmetric. This is the explicit
// decision table behind the "request a type, get the best available"
// API.
func resolveDataType(requested, detected DataType, centric bool) (DataType, error) {
	switch requested {
	case TypeMean:
		return TypeMean, nil
	case TypeAnomalous:
		// A centrosymmetric group has no Friedel split to preserve.
		if centric {
			return TypeMean, nil
		}
		return TypeAnomalous, nil
	case TypeUnmerged:
		if detected != TypeUnmerged {
			return TypeUnknown, &ErrTypeMismatch{Requested: requested, Detected: detected}
		}
		return TypeUnmerged, nil
	case TypeMergedMA:
		return TypeMean, nil
	case TypeMergedAM:
		if centric || detected == TypeMean {
			return TypeMean, nil
		}
		return TypeAnomalous, nil
	case TypeUAM:
		if detected == TypeUnmerged {
			return TypeUnmerged, nil
		}
		return resolveDataType(TypeMergedAM, detected, centric)
	case TypeUnknown:
		// No preference: deliver what the data already is, defaulting
		// to mean for unclassifiable content.
		if detected.isConcrete() {
			return detected, nil
		}
		return TypeMean, nil
	default:
		return TypeUnknown, fmt.Errorf("invalid requested data type %s", requested)
	}
}
