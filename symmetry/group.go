package symmetry

import (
	"errors"
	"strings"

	"github.com/xtalgo/xtalgo/hkl"
)

// maxOps bounds group closure; no crystallographic space group has
// more than 192 operations.
const maxOps = 192

// ErrUnclosedGroup is returned when the generators do not close into
// a finite group within the crystallographic bound.
var ErrUnclosedGroup = errors.New("symmetry: generators do not close into a space group")

// Group is a finite set of symmetry operations, closed under
// composition. The identity is always the first operation.
type Group struct {
	Name string
	ops  []Op
}

// P1 returns the trivial group containing only the identity.
func P1() *Group {
	return &Group{Name: "P 1", ops: []Op{IdentityOp()}}
}

// New builds a group as the closure of the given generators. The
// identity does not need to be listed.
func New(name string, gens ...Op) (*Group, error) {
	seen := map[Op]bool{IdentityOp(): true}
	ops := []Op{IdentityOp()}
	queue := append([]Op(nil), gens...)
	for len(queue) > 0 {
		op := queue[0]
		queue = queue[1:]
		if seen[op] {
			continue
		}
		seen[op] = true
		ops = append(ops, op)
		if len(ops) > maxOps {
			return nil, ErrUnclosedGroup
		}
		for _, a := range ops {
			queue = append(queue, a.Mul(op), op.Mul(a))
		}
	}
	return &Group{Name: name, ops: ops}, nil
}

// FromTriplets builds a group from ";"-separated generator triplets,
// e.g. "x,y,z;-x,y+1/2,-z". The name of the group is the input string.
func FromTriplets(triplets string) (*Group, error) {
	var gens []Op
	for _, t := range strings.Split(triplets, ";") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		op, err := ParseOp(t)
		if err != nil {
			return nil, err
		}
		gens = append(gens, op)
	}
	return New(triplets, gens...)
}

// Ops returns the full operation list. The slice must not be modified.
func (g *Group) Ops() []Op {
	return g.ops
}

// Len returns the number of operations in the group.
func (g *Group) Len() int {
	return len(g.ops)
}

// Triplets returns the full operation list in triplet notation,
// ";"-separated. FromTriplets of the result reconstructs the group.
func (g *Group) Triplets() string {
	parts := make([]string, len(g.ops))
	for i, op := range g.ops {
		parts[i] = op.Triplet()
	}
	return strings.Join(parts, ";")
}

// IsCentrosymmetric reports whether the group contains an inversion
// center, i.e. any operation with rotation part -I.
func (g *Group) IsCentrosymmetric() bool {
	for _, op := range g.ops {
		if op.RotIsInversion() {
			return true
		}
	}
	return false
}

// IsSystematicallyAbsent reports whether the reflection is forbidden
// by the group: some operation maps the index onto itself with a
// non-zero phase shift.
func (g *Group) IsSystematicallyAbsent(m hkl.Miller) bool {
	for _, op := range g.ops {
		if op.ApplyToHKL(m) == [3]int(m) && op.PhaseUnits(m) != 0 {
			return true
		}
	}
	return false
}

// ReduceToASU maps a Miller index to its asymmetric-unit
// representative: the lexicographic maximum over the orbit of the
// index under all operations and their Friedel mates. The second
// result reports whether the representative is reached without
// negation (the positive Friedel branch); ties prefer the positive
// branch, so centrosymmetric groups always report true.
func (g *Group) ReduceToASU(m hkl.Miller) (hkl.Miller, bool) {
	red, positive, _ := g.ReduceToASUWithOp(m)
	return red, positive
}

// ReduceToASUWithOp is ReduceToASU returning additionally the index
// of the operation that produced the representative, for encoding the
// symmetry audit code of unmerged records.
func (g *Group) ReduceToASUWithOp(m hkl.Miller) (red hkl.Miller, positive bool, opIndex int) {
	red = m
	positive = true
	opIndex = 0
	for i, op := range g.ops {
		cand := hkl.Miller(op.ApplyToHKL(m))
		if betterRep(cand, true, red, positive) {
			red, positive, opIndex = cand, true, i
		}
		neg := cand.Neg()
		if betterRep(neg, false, red, positive) {
			red, positive, opIndex = neg, false, i
		}
	}
	return red, positive, opIndex
}

// betterRep reports whether candidate (c, cPos) should replace the
// current best (b, bPos): strictly larger index wins, an equal index
// wins only when it upgrades the branch to positive.
func betterRep(c hkl.Miller, cPos bool, b hkl.Miller, bPos bool) bool {
	switch c.Compare(b) {
	case 1:
		return true
	case 0:
		return cPos && !bPos
	}
	return false
}
