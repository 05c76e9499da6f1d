package xtalgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSpaceGroup is returned when an operation requiring
	// symmetry reduction is called on a collection without a space
	// group.
	ErrNoSpaceGroup = errors.New("no space group set")

	// ErrUnsorted is returned when an operation requires the
	// collection to be sorted by (hkl, sign) and it is not.
	ErrUnsorted = errors.New("collection is not sorted by (hkl, sign)")

	// ErrDegenerateStats is returned when a correlation is requested
	// over fewer than 2 shared reflections; the coefficient is
	// undefined in that case.
	ErrDegenerateStats = errors.New("fewer than 2 shared reflections")
)

// ErrTypeMismatch indicates that the requested or hinted data type is
// inconsistent with what the classifier detected, e.g. data hinted as
// merged means while repeated same-branch observations prove it is
// unmerged.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrTypeMismatch struct {
	Requested DataType
	Detected  DataType
	cause     error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("data type mismatch: requested %s, detected %s", e.Requested, e.Detected)
}

func (e *ErrTypeMismatch) Unwrap() error { return e.cause }
