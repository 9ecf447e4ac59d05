package curve

import (
	"math"
	"sort"
)

// LinearLogDiscount interpolates linearly in negative-log-discount (R·T)
// space and recovers the spot rate as R·T / T at evaluation time. Working in
// R·T keeps the interpolation numerically consistent with discounting.
//
// Outside the node range the bounding segment is extended linearly. A target
// of exactly zero evaluates to the first node's yield.
type LinearLogDiscount struct {
	maturities []float64
	rt         []float64 // -ln(df) at each node
}

// FitLinearLogDiscount builds the interpolant from discount factors observed
// at strictly increasing maturities.
func FitLinearLogDiscount(dfs, maturities []float64) (*LinearLogDiscount, error) {
	if err := checkNodes("FitLinearLogDiscount", dfs, maturities, 2); err != nil {
		return nil, err
	}
	if err := checkPositive("FitLinearLogDiscount", dfs); err != nil {
		return nil, err
	}

	li := &LinearLogDiscount{
		maturities: append([]float64(nil), maturities...),
		rt:         make([]float64, len(dfs)),
	}
	for i, df := range dfs {
		li.rt[i] = -math.Log(df)
	}
	return li, nil
}

// Eval returns the interpolated spot rates at the target maturities.
func (li *LinearLogDiscount) Eval(targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, t := range targets {
		if t == 0 {
			out[i] = li.shortEndYield()
			continue
		}
		out[i] = li.rtAt(t) / t
	}
	return out
}

// rtAt interpolates R·T at t, extending the bounding segment linearly when t
// falls outside the node range.
func (li *LinearLogDiscount) rtAt(t float64) float64 {
	n := len(li.maturities)
	// Segment index, clamped so that out-of-range targets reuse the
	// boundary segment's slope.
	j := sort.SearchFloat64s(li.maturities, t)
	if j > 0 {
		j--
	}
	if j > n-2 {
		j = n - 2
	}

	t0, t1 := li.maturities[j], li.maturities[j+1]
	r0, r1 := li.rt[j], li.rt[j+1]
	slope := (r1 - r0) / (t1 - t0)
	return r0 + slope*(t-t0)
}

// shortEndYield is the value reported for a zero target, where R·T/T has no
// direct meaning: the first node's yield, i.e. the first-bucket forward.
func (li *LinearLogDiscount) shortEndYield() float64 {
	if li.maturities[0] > 0 {
		return li.rt[0] / li.maturities[0]
	}
	// First node sits at zero (df = 1, R·T = 0); fall back to the slope of
	// the first segment.
	return (li.rt[1] - li.rt[0]) / (li.maturities[1] - li.maturities[0])
}
