package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtalgo/xtalgo/hkl"
)

func TestGroupClosure(t *testing.T) {
	tests := []struct {
		name     string
		triplets string
		len      int
		centric  bool
	}{
		{"P1", "x,y,z", 1, false},
		{"P-1", "-x,-y,-z", 2, true},
		{"P2", "-x,y,-z", 2, false},
		{"P21", "-x,y+1/2,-z", 2, false},
		{"P212121", "-x+1/2,-y,z+1/2;-x,y+1/2,-z+1/2", 4, false},
		{"P2/m", "-x,y,-z;-x,-y,-z", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromTriplets(tt.triplets)
			require.NoError(t, err)
			assert.Equal(t, tt.len, g.Len())
			assert.Equal(t, tt.centric, g.IsCentrosymmetric())
			assert.True(t, g.Ops()[0].IsIdentity(), "identity must come first")

			// closure: composing any two operations stays inside
			for _, a := range g.Ops() {
				for _, b := range g.Ops() {
					assert.Contains(t, g.Ops(), a.Mul(b))
				}
			}
		})
	}

	t.Run("Unclosed", func(t *testing.T) {
		_, err := FromTriplets("x+y,y,z")
		assert.ErrorIs(t, err, ErrUnclosedGroup)
	})

	t.Run("BadTriplet", func(t *testing.T) {
		_, err := FromTriplets("-x,q,-z")
		assert.Error(t, err)
	})
}

func TestP1(t *testing.T) {
	g := P1()
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, "P 1", g.Name)
	assert.False(t, g.IsCentrosymmetric())
}

func TestTripletsRoundTrip(t *testing.T) {
	g, err := FromTriplets("-x+1/2,-y,z+1/2;-x,y+1/2,-z+1/2")
	require.NoError(t, err)

	g2, err := FromTriplets(g.Triplets())
	require.NoError(t, err)
	assert.Equal(t, g.Len(), g2.Len())
	assert.ElementsMatch(t, g.Ops(), g2.Ops())
}

func TestIsSystematicallyAbsent(t *testing.T) {
	g, err := FromTriplets("-x,y+1/2,-z")
	require.NoError(t, err)

	tests := []struct {
		m      hkl.Miller
		absent bool
	}{
		{hkl.New(0, 1, 0), true},  // 0k0 with odd k forbidden by the screw axis
		{hkl.New(0, 3, 0), true},
		{hkl.New(0, 2, 0), false},
		{hkl.New(1, 0, 0), false},
		{hkl.New(0, 0, 1), false},
		{hkl.New(1, 1, 1), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.absent, g.IsSystematicallyAbsent(tt.m), "index %v", tt.m)
	}
}

func TestReduceToASU(t *testing.T) {
	t.Run("P1", func(t *testing.T) {
		g := P1()

		red, positive := g.ReduceToASU(hkl.New(1, -2, 3))
		assert.Equal(t, hkl.New(1, -2, 3), red)
		assert.True(t, positive)

		red, positive = g.ReduceToASU(hkl.New(-1, 2, -3))
		assert.Equal(t, hkl.New(1, -2, 3), red)
		assert.False(t, positive)
	})

	t.Run("Centrosymmetric", func(t *testing.T) {
		g, err := FromTriplets("-x,-y,-z")
		require.NoError(t, err)

		// ties prefer the positive branch, so both Friedel mates
		// report positive
		for _, m := range []hkl.Miller{hkl.New(1, 2, 3), hkl.New(-1, -2, -3)} {
			red, positive := g.ReduceToASU(m)
			assert.Equal(t, hkl.New(1, 2, 3), red)
			assert.True(t, positive)
		}
	})

	t.Run("OrbitConstancy", func(t *testing.T) {
		groups := []string{"x,y,z", "-x,y,-z", "-x,y+1/2,-z", "-x,-y,-z", "-x+1/2,-y,z+1/2;-x,y+1/2,-z+1/2"}
		samples := []hkl.Miller{hkl.New(1, 2, 3), hkl.New(-4, 0, 2), hkl.New(0, 5, -1), hkl.New(2, -2, 2)}

		for _, triplets := range groups {
			g, err := FromTriplets(triplets)
			require.NoError(t, err)
			for _, m := range samples {
				want, _ := g.ReduceToASU(m)
				for _, op := range g.Ops() {
					equiv := hkl.Miller(op.ApplyToHKL(m))
					got, _ := g.ReduceToASU(equiv)
					assert.Equal(t, want, got, "group %q, index %v, op %q", triplets, m, op.Triplet())
					got, _ = g.ReduceToASU(equiv.Neg())
					assert.Equal(t, want, got, "group %q, index %v, op %q (mate)", triplets, m, op.Triplet())
				}
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		g, err := FromTriplets("-x,y+1/2,-z")
		require.NoError(t, err)
		for _, m := range []hkl.Miller{hkl.New(1, 2, 3), hkl.New(-1, -2, -3), hkl.New(-3, 1, 0)} {
			red, _ := g.ReduceToASU(m)
			again, positive := g.ReduceToASU(red)
			assert.Equal(t, red, again)
			assert.True(t, positive, "a representative reduces to itself on the positive branch")
		}
	})
}

func TestReduceToASUWithOp(t *testing.T) {
	g, err := FromTriplets("-x,y,-z")
	require.NoError(t, err)

	// reached by the second operation without negation
	red, positive, opIdx := g.ReduceToASUWithOp(hkl.New(-1, 2, -3))
	assert.Equal(t, hkl.New(1, 2, 3), red)
	assert.True(t, positive)
	assert.Equal(t, 1, opIdx)

	// reached by negating the identity image
	red, positive, opIdx = g.ReduceToASUWithOp(hkl.New(-1, -2, -3))
	assert.Equal(t, hkl.New(1, 2, 3), red)
	assert.False(t, positive)
	assert.Equal(t, 0, opIdx)
}
