// Package geom provides the minimal 3D linear algebra used by xtalgo:
// vectors, 3x3 matrices, symmetric tensors and the unit cell with its
// orthogonalization/fractionalization matrices.
//
// Angles are in degrees, lengths in Angstroms. The reciprocal-space
// scattering vector of a Miller index is obtained by left-multiplying
// the fractionalization matrix, so 1/d^2 is its squared length.
package geom
