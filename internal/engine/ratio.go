package engine

import (
	"math"

	"github.com/piwi3910/TapePlanner/internal/model"
)

// AcceptedRatios lists the class A to class B ratios a plan may end with.
var AcceptedRatios = []model.Ratio{
	{A: 2, B: 1},
	{A: 5, B: 2},
	{A: 3, B: 2},
}

// SimplifyRatio reduces a pair of piece counts to lowest terms. Counts are
// scaled by 10 and truncated so one decimal digit survives. When both are
// zero the result is the undefined ratio, which is never accepted.
// Scaled counts outside the int64 range saturate at its bounds.
func SimplifyRatio(a, b float64) model.Ratio {
	sa := saturate(a * 10)
	sb := saturate(b * 10)
	if sa == 0 && sb == 0 {
		return model.Ratio{}
	}
	d := gcd(sa, sb)
	return model.Ratio{A: sa / d, B: sb / d}
}

// saturate truncates v toward zero, clamping to the int64 range. NaN maps to 0.
func saturate(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

// IsAccepted reports whether r is one of AcceptedRatios.
func IsAccepted(r model.Ratio) bool {
	if r.IsUndefined() {
		return false
	}
	for _, acc := range AcceptedRatios {
		if r == acc {
			return true
		}
	}
	return false
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
