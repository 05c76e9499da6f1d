package xtalgo_test

import (
	"fmt"

	"github.com/xtalgo/xtalgo"
	"github.com/xtalgo/xtalgo/hkl"
	"github.com/xtalgo/xtalgo/symmetry"
)

func ExampleIntensities_MergeInPlace() {
	sg, err := symmetry.FromTriplets("-x,-y,-z")
	if err != nil {
		panic(err)
	}

	iv := xtalgo.New(xtalgo.WithSpaceGroup(sg))
	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 10.0, 0.5)
	iv.AddIfValid(hkl.New(-1, -2, -3), xtalgo.SignNone, 0, 10.2, 0.5)
	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 9.8, 0.5)

	if err := iv.MergeInPlace(xtalgo.TypeMean); err != nil {
		panic(err)
	}

	r := iv.Data[0]
	fmt.Printf("%s n=%d I=%.1f\n", r.HKLLabel(), r.NObs, r.Value)
	// Output: <I> (1 2 3) n=3 I=10.0
}

func ExampleIntensities_CalculateMergingRs() {
	iv := xtalgo.New()
	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 10.0, 0.5)
	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 10.2, 0.5)
	iv.AddIfValid(hkl.New(1, 2, 3), xtalgo.SignNone, 0, 9.8, 0.5)
	iv.AddIfValid(hkl.New(2, 0, 0), xtalgo.SignNone, 0, 5.0, 0.1)
	iv.Sort()

	rs, err := iv.CalculateMergingRs(nil)
	if err != nil {
		panic(err)
	}

	fmt.Printf("unique=%d R-merge=%.4f\n", rs[0].UniqueRefl, rs[0].RMerge())
	// Output: unique=2 R-merge=0.0114
}
