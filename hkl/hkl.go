// Package hkl provides the Miller index type shared by all xtalgo packages.
package hkl

import "fmt"

// Miller is an integer triple (h, k, l) identifying a reflection.
type Miller [3]int

// New creates a Miller index from its three components.
func New(h, k, l int) Miller {
	return Miller{h, k, l}
}

// Neg returns the Friedel mate (-h, -k, -l).
func (m Miller) Neg() Miller {
	return Miller{-m[0], -m[1], -m[2]}
}

// IsZero reports whether all three components are zero.
func (m Miller) IsZero() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0
}

// Compare orders indices lexicographically by (h, k, l).
// It returns -1, 0 or +1.
func (m Miller) Compare(o Miller) int {
	for i := 0; i < 3; i++ {
		if m[i] != o[i] {
			if m[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether m sorts before o.
func (m Miller) Less(o Miller) bool {
	return m.Compare(o) < 0
}

// KeyRange bounds the component magnitude supported by Key.
const KeyRange = 1 << 20

// Key packs the index into a uint64 suitable for bitmap membership
// tracking. Each component occupies 21 bits with a bias of KeyRange,
// so components must be in [-KeyRange, KeyRange).
func (m Miller) Key() uint64 {
	const mask = 1<<21 - 1
	return (uint64(uint32(m[0]+KeyRange))&mask)<<42 |
		(uint64(uint32(m[1]+KeyRange))&mask)<<21 |
		uint64(uint32(m[2]+KeyRange))&mask
}

// String returns the index in "(h k l)" form.
func (m Miller) String() string {
	return fmt.Sprintf("(%d %d %d)", m[0], m[1], m[2])
}
