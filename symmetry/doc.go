// Package symmetry implements the space-group algebra the merging
// core depends on: symmetry operations with exact integer arithmetic,
// group closure from generators, centrosymmetry and systematic-absence
// tests, and reduction of Miller indices to a canonical
// asymmetric-unit representative.
//
// Operations are written and parsed in the conventional triplet
// notation, e.g. "-x,y+1/2,-z". Rotation parts are plain integer
// matrices; translations are stored in 24ths of a cell edge, which is
// exact for every crystallographic space group.
//
// The asymmetric-unit representative of an index is the lexicographic
// maximum of its orbit under all group operations and their Friedel
// mates. The reduction is a pure function: equivalent indices always
// map to the same representative, reducing a representative again is
// the identity, and for centrosymmetric groups the positive branch is
// reported unconditionally.
package symmetry
