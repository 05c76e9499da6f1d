package xtalgo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtalgo/xtalgo/geom"
	"github.com/xtalgo/xtalgo/hkl"
)

func TestAddIfValid(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		sigma    float64
		accepted bool
	}{
		{"Valid", 10.0, 0.5, true},
		{"NegativeValue", -1.0, 0.5, true}, // weak reflections may go negative
		{"NaNValue", math.NaN(), 0.5, false},
		{"ZeroSigma", 10.0, 0, false},
		{"NegativeSigma", 10.0, -1, false},
		{"NaNSigma", 10.0, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &BasicMetricsCollector{}
			iv := New(WithMetricsCollector(mc))
			iv.AddIfValid(hkl.New(1, 2, 3), SignNone, 0, tt.value, tt.sigma)

			if tt.accepted {
				require.Equal(t, 1, iv.Len())
				assert.Equal(t, int32(1), iv.Data[0].NObs)
				assert.Equal(t, int64(1), mc.IngestAccepted.Load())
			} else {
				assert.Equal(t, 0, iv.Len())
				assert.Equal(t, int64(1), mc.IngestDropped.Load())
			}
		})
	}
}

func TestSort(t *testing.T) {
	iv := New()
	iv.AddIfValid(hkl.New(2, 0, 0), SignNone, 0, 1, 1)
	iv.AddIfValid(hkl.New(1, 0, 0), SignPlus, 0, 2, 1)
	iv.AddIfValid(hkl.New(1, 0, 0), SignMinus, 0, 3, 1)
	assert.False(t, iv.IsSorted())

	iv.Sort()
	require.True(t, iv.IsSorted())
	// same index: the minus branch sorts first
	assert.Equal(t, SignMinus, iv.Data[0].Sign)
	assert.Equal(t, SignPlus, iv.Data[1].Sign)
	assert.Equal(t, hkl.New(2, 0, 0), iv.Data[2].HKL)
}

func TestRemoveSystematicAbsences(t *testing.T) {
	t.Run("Screw", func(t *testing.T) {
		iv := New(WithSpaceGroup(mustGroup(t, "-x,y+1/2,-z")))
		iv.AddIfValid(hkl.New(0, 1, 0), SignNone, 0, 1, 1)
		iv.AddIfValid(hkl.New(0, 2, 0), SignNone, 0, 2, 1)
		iv.AddIfValid(hkl.New(0, 3, 0), SignNone, 0, 3, 1)
		iv.AddIfValid(hkl.New(1, 1, 1), SignNone, 0, 4, 1)

		iv.RemoveSystematicAbsences()
		require.Equal(t, 2, iv.Len())
		assert.Equal(t, hkl.New(0, 2, 0), iv.Data[0].HKL)
		assert.Equal(t, hkl.New(1, 1, 1), iv.Data[1].HKL)
	})

	t.Run("NoSpaceGroupIsNoop", func(t *testing.T) {
		iv := New()
		iv.AddIfValid(hkl.New(0, 1, 0), SignNone, 0, 1, 1)
		iv.RemoveSystematicAbsences()
		assert.Equal(t, 1, iv.Len())
	})
}

func TestSwitchToASUIndices(t *testing.T) {
	t.Run("NoSpaceGroup", func(t *testing.T) {
		iv := New()
		assert.ErrorIs(t, iv.SwitchToASUIndices(), ErrNoSpaceGroup)
	})

	t.Run("RewritesIndicesAndAuditCodes", func(t *testing.T) {
		iv := New(WithSpaceGroup(mustGroup(t, "-x,y,-z")))
		iv.AddIfValid(hkl.New(1, 2, 3), SignNone, 0, 10, 1)
		iv.AddIfValid(hkl.New(-1, 2, -3), SignNone, 0, 11, 1)

		require.NoError(t, iv.SwitchToASUIndices())
		assert.Equal(t, hkl.New(1, 2, 3), iv.Data[0].HKL)
		assert.Equal(t, int8(1), iv.Data[0].Isym) // identity, positive branch
		assert.Equal(t, hkl.New(1, 2, 3), iv.Data[1].HKL)
		assert.Equal(t, int8(3), iv.Data[1].Isym) // second op, positive branch
		assert.Len(t, iv.IsymOps, 2)
	})

	t.Run("AnomalousAssignsSigns", func(t *testing.T) {
		iv := New(WithSpaceGroup(mustGroup(t, "-x,y,-z")), WithDataTypeHint(TypeAnomalous))
		iv.AddIfValid(hkl.New(1, 2, 3), SignNone, 0, 10, 1)
		iv.AddIfValid(hkl.New(-1, -2, -3), SignNone, 0, 12, 1)

		require.NoError(t, iv.SwitchToASUIndices())
		assert.Equal(t, SignPlus, iv.Data[0].Sign)
		assert.Equal(t, SignMinus, iv.Data[1].Sign)
		assert.Equal(t, int8(2), iv.Data[1].Isym) // identity, Friedel mate
	})
}

func TestResolutionRange(t *testing.T) {
	t.Run("Orthorhombic", func(t *testing.T) {
		iv := New(WithUnitCell(geom.NewUnitCell(10, 10, 10, 90, 90, 90)))
		iv.AddIfValid(hkl.New(1, 0, 0), SignNone, 0, 1, 1)
		iv.AddIfValid(hkl.New(2, 2, 2), SignNone, 0, 2, 1)
		iv.AddIfValid(hkl.New(0, 0, 0), SignNone, 0, 3, 1) // ignored

		dMax, dMin := iv.ResolutionRange()
		assert.InDelta(t, 10.0, dMax, 1e-12)
		assert.InDelta(t, 10/math.Sqrt(12), dMin, 1e-12)
	})

	t.Run("NoCell", func(t *testing.T) {
		iv := New()
		iv.AddIfValid(hkl.New(1, 0, 0), SignNone, 0, 1, 1)
		dMax, dMin := iv.ResolutionRange()
		assert.Zero(t, dMax)
		assert.Zero(t, dMin)
	})

	t.Run("Empty", func(t *testing.T) {
		iv := New(WithUnitCell(geom.NewUnitCell(10, 10, 10, 90, 90, 90)))
		dMax, dMin := iv.ResolutionRange()
		assert.Zero(t, dMax)
		assert.Zero(t, dMin)
	})
}

func TestClone(t *testing.T) {
	iv := New(WithSpaceGroup(mustGroup(t, "-x,y,-z")), WithWavelength(0.9793))
	iv.AddIfValid(hkl.New(1, 2, 3), SignNone, 0, 10, 1)
	require.NoError(t, iv.SwitchToASUIndices())

	cp := iv.Clone()
	cp.Data[0].Value = 999
	cp.Data = append(cp.Data, Refl{HKL: hkl.New(9, 9, 9), Value: 1, Sigma: 1})

	assert.InDelta(t, 10.0, iv.Data[0].Value, 1e-12)
	assert.Equal(t, 1, iv.Len())
	assert.Equal(t, 2, cp.Len())
	assert.Equal(t, iv.Wavelength, cp.Wavelength)
	assert.Equal(t, iv.SpacegroupStr(), cp.SpacegroupStr())
}

func TestSpacegroupStr(t *testing.T) {
	iv := New()
	assert.Equal(t, "none", iv.SpacegroupStr())

	iv.SetSpaceGroup(mustGroup(t, "-x,y+1/2,-z"))
	assert.Equal(t, "-x,y+1/2,-z", iv.SpacegroupStr())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "I(+)", Refl{Sign: SignPlus}.IntensityLabel())
	assert.Equal(t, "I(-)", Refl{Sign: SignMinus}.IntensityLabel())
	assert.Equal(t, "<I>", Refl{}.IntensityLabel())
	assert.Equal(t, "I(+) (1 2 3)", Refl{HKL: hkl.New(1, 2, 3), Sign: SignPlus}.HKLLabel())

	assert.Equal(t, "+", SignPlus.String())
	assert.Equal(t, "-", SignMinus.String())
	assert.Equal(t, "", SignNone.String())
}

func TestNewOptions(t *testing.T) {
	cell := geom.NewUnitCell(78.1, 85.3, 96.8, 90, 97.2, 90)
	iv := New(
		WithSpaceGroup(mustGroup(t, "-x,y+1/2,-z")),
		WithUnitCell(cell),
		WithWavelength(0.9793),
		WithDataTypeHint(TypeUnmerged),
		WithLogger(nil),
		WithMetricsCollector(nil),
	)

	assert.Equal(t, 0.9793, iv.Wavelength)
	assert.Equal(t, TypeUnmerged, iv.Type)
	assert.True(t, iv.Cell.IsSet())
	assert.NotNil(t, iv.SpaceGroup)
}
