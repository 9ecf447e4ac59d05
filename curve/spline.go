package curve

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// CubicSpline interpolates spot rates with a natural cubic spline. The curve
// is C² and exact at the nodes, but carries no shape constraint: widely
// spaced nodes can overshoot. Use MonotoneConvex when overshoot matters.
type CubicSpline struct {
	spline interp.NaturalCubic
}

// FitCubicSpline builds the spline from spot rates observed at strictly
// increasing maturities.
func FitCubicSpline(zeroRates, maturities []float64) (*CubicSpline, error) {
	if err := checkNodes("FitCubicSpline", zeroRates, maturities, 2); err != nil {
		return nil, err
	}

	cs := &CubicSpline{}
	if err := cs.spline.Fit(maturities, zeroRates); err != nil {
		return nil, fmt.Errorf("FitCubicSpline: %v: %w", err, ErrDomain)
	}
	return cs, nil
}

// Eval returns the interpolated spot rates at the target maturities.
func (cs *CubicSpline) Eval(targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, t := range targets {
		out[i] = cs.spline.Predict(t)
	}
	return out
}
