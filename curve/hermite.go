package curve

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// dfFloor is the smallest discount factor the Hermite evaluator will take a
// logarithm of. Spline overshoot between widely spaced nodes can dip
// slightly below zero; the floor keeps the log defined.
const dfFloor = 1e-12

// HermiteLogDiscount fits a cubic Hermite spline in discount-factor space.
// The slope at each interior node is set from the average of the two
// adjacent piecewise-constant forward rates (consecutive log-discount
// differences); the two boundary nodes take the single adjacent interval
// forward. The implied forward curve is continuous but not everywhere
// differentiable.
type HermiteLogDiscount struct {
	spline      interp.PiecewiseCubic
	boundaryFwd float64 // forward over the first interval, reported at t = 0
}

// FitHermiteLogDiscount builds the interpolant from discount factors
// observed at strictly increasing maturities.
func FitHermiteLogDiscount(dfs, maturities []float64) (*HermiteLogDiscount, error) {
	if err := checkNodes("FitHermiteLogDiscount", dfs, maturities, 2); err != nil {
		return nil, err
	}
	if err := checkPositive("FitHermiteLogDiscount", dfs); err != nil {
		return nil, err
	}

	n := len(dfs)
	intervalFwd := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		intervalFwd[i] = -(math.Log(dfs[i+1]) - math.Log(dfs[i])) / (maturities[i+1] - maturities[i])
	}

	nodeFwd := make([]float64, n)
	nodeFwd[0] = intervalFwd[0]
	nodeFwd[n-1] = intervalFwd[n-2]
	for i := 1; i < n-1; i++ {
		nodeFwd[i] = 0.5 * (intervalFwd[i-1] + intervalFwd[i])
	}

	// dP/dt = -f(t)·P(t) at each node.
	slopes := make([]float64, n)
	for i := range slopes {
		slopes[i] = -nodeFwd[i] * dfs[i]
	}

	h := &HermiteLogDiscount{boundaryFwd: nodeFwd[0]}
	h.spline.FitWithDerivatives(maturities, dfs, slopes)
	return h, nil
}

// Eval returns the implied spot rates at the target maturities. The spline's
// discount factor is floored at a small positive epsilon before the log; a
// target of exactly zero returns the boundary forward rate directly.
func (h *HermiteLogDiscount) Eval(targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, t := range targets {
		if t == 0 {
			out[i] = h.boundaryFwd
			continue
		}
		df := h.spline.Predict(t)
		if df < dfFloor {
			df = dfFloor
		}
		out[i] = -math.Log(df) / t
	}
	return out
}
