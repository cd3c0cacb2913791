// Package engine finds segment decompositions of raw tape lengths whose
// class A to class B piece count reduces to an accepted ratio.
package engine

import (
	"fmt"

	"github.com/piwi3910/TapePlanner/internal/model"
)

// Catalog bounds in tenths of a meter. The 360.0 to 361.0 gap is part of
// the catalog definition.
const (
	classAMinTenths = 3000
	classAMaxTenths = 3600
	classBMinTenths = 3610
	classBMaxTenths = 6000
)

var (
	classA = mustGenerate(classAMinTenths, classAMaxTenths)
	classB = mustGenerate(classBMinTenths, classBMaxTenths)
)

func init() {
	if classA[len(classA)-1] >= classB[0] {
		panic(fmt.Sprintf("engine: catalogs overlap: A ends at %.1f, B starts at %.1f", classA[len(classA)-1], classB[0]))
	}
}

// generateRange returns every multiple of 0.1 between lo/10 and hi/10
// inclusive, built from integers so no drift accumulates.
func generateRange(lo, hi int) []float64 {
	if hi < lo {
		return nil
	}
	out := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, float64(i)/10.0)
	}
	return out
}

// mustGenerate builds a catalog and panics if it is not strictly ascending.
func mustGenerate(lo, hi int) []float64 {
	r := generateRange(lo, hi)
	if len(r) == 0 {
		panic(fmt.Sprintf("engine: empty catalog [%d, %d]", lo, hi))
	}
	for i := 1; i < len(r); i++ {
		if r[i] <= r[i-1] {
			panic(fmt.Sprintf("engine: catalog not ascending at %d: %v <= %v", i, r[i], r[i-1]))
		}
	}
	return r
}

// ClassA returns the class A catalog, 300.0 m to 360.0 m in 0.1 m steps.
func ClassA() []float64 {
	return append([]float64(nil), classA...)
}

// ClassB returns the class B catalog, 361.0 m to 600.0 m in 0.1 m steps.
func ClassB() []float64 {
	return append([]float64(nil), classB...)
}

// Catalog returns the candidate lengths for a size class.
func Catalog(class model.SizeClass) []float64 {
	switch class {
	case model.ClassA:
		return ClassA()
	case model.ClassB:
		return ClassB()
	default:
		return nil
	}
}
