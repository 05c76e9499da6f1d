// Package xtalgo reduces raw X-ray diffraction reflection
// measurements into merged intensity estimates.
//
// The core of the library is the Intensities collection: observations
// ingested from format adapters are validated, reduced to canonical
// asymmetric-unit indices under the crystal's space group, merged into
// mean or anomalous (Friedel pair) intensities with propagated
// uncertainties, and judged with the standard merging statistics
// (R-merge, R-meas, R-pim) and half-dataset correlation.
//
// # Quick Start
//
//	sg, _ := symmetry.FromTriplets("x,y,z;-x,y+1/2,-z")
//	iv := xtalgo.New(
//	    xtalgo.WithSpaceGroup(sg),
//	    xtalgo.WithUnitCell(geom.NewUnitCell(40, 50, 60, 90, 90, 90)),
//	)
//
//	// Adapter boundary: invalid records (NaN, sigma <= 0) are dropped.
//	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 81.2, 1.9)
//	iv.AddIfValid(hkl.New(-1, -2, -3), xtalgo.SignNone, 0, 79.8, 2.1)
//
//	iv.RemoveSystematicAbsences()
//	if err := iv.MergeInPlace(xtalgo.TypeMean); err != nil {
//	    // handle error
//	}
//
// # Pipeline
//
// The intended flow is: adapter -> AddIfValid -> (optional)
// RemoveSystematicAbsences -> MergeInPlace, which internally
// classifies the data under symmetry, resolves the requested output
// type against the classifier's verdict, rewrites indices into the
// asymmetric unit, sorts by (hkl, sign) and aggregates runs.
// CalculateMergingRs must be called on the prepared (sorted, not yet
// merged) collection; use Merge instead of MergeInPlace to keep the
// pre-merge data around for statistics.
//
// # Key Properties
//
//   - All operations are pure in-memory transformations; the engine
//     performs no I/O and is single-threaded by design.
//   - MergingR accumulators combine by field-wise addition, so
//     statistics may be sharded and recombined (see
//     CalculateMergingRsParallel).
//   - ASU reduction is deterministic and independent of input order.
//
// Subpackages: hkl (Miller indices), geom (3D linear algebra, unit
// cell), symmetry (space-group operations), codec (binary snapshot
// encoding of a collection).
package xtalgo
