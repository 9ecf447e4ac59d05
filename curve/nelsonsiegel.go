package curve

import "math"

// NelsonSiegelParams are the fitted parameters of the 4-parameter
// Nelson-Siegel form
//
//	r(t) = β0 + β1·L1(t/τ) + β2·(L1(t/τ) − e^(−t/τ))
//
// with L1(x) = (1 − e^(−x))/x and L1(0) = 1.
type NelsonSiegelParams struct {
	Beta0 float64
	Beta1 float64
	Beta2 float64
	Tau   float64
}

func (p NelsonSiegelParams) value(t float64) float64 {
	x := t / p.Tau
	l := nsLoad(x)
	return p.Beta0 + p.Beta1*l + p.Beta2*(l-math.Exp(-x))
}

// nsLoad is (1 − e^(−x))/x with the analytic limit 1 at x = 0.
func nsLoad(x float64) float64 {
	if x == 0 {
		return 1
	}
	return (1 - math.Exp(-x)) / x
}

// NelsonSiegel is a fitted Nelson-Siegel curve.
type NelsonSiegel struct {
	p NelsonSiegelParams
}

// Economically plausible parameter ranges; the fit never leaves them.
var (
	nsBetaBound = boundedParam{lo: -5, hi: 20}
	nsTauBound  = boundedParam{lo: 1e-6, hi: 10}
)

// FitNelsonSiegel calibrates the Nelson-Siegel parameters to observed spot
// rates by nonlinear least squares (Nelder-Mead over logistic-bounded
// parameters). Non-convergence surfaces as ErrFitConvergence.
func FitNelsonSiegel(zeroRates, maturities []float64, opts ...FitOption) (*NelsonSiegel, error) {
	if err := checkNodes("FitNelsonSiegel", zeroRates, maturities, 4); err != nil {
		return nil, err
	}

	s := defaultFitSettings()
	for _, opt := range opts {
		opt(&s)
	}

	bounds := [4]boundedParam{nsBetaBound, nsBetaBound, nsBetaBound, nsTauBound}
	fromVec := func(u []float64) NelsonSiegelParams {
		return NelsonSiegelParams{
			Beta0: bounds[0].value(u[0]),
			Beta1: bounds[1].value(u[1]),
			Beta2: bounds[2].value(u[2]),
			Tau:   bounds[3].value(u[3]),
		}
	}

	objective := func(u []float64) float64 {
		p := fromVec(u)
		sse := 0.0
		for i, t := range maturities {
			d := p.value(t) - zeroRates[i]
			sse += d * d
		}
		return sse
	}

	last := zeroRates[len(zeroRates)-1]
	init := []float64{
		bounds[0].unbound(last),
		bounds[1].unbound(zeroRates[0] - last),
		bounds[2].unbound(1),
		bounds[3].unbound(1),
	}

	x, _, err := minimizeSSE("FitNelsonSiegel", objective, init, s)
	if err != nil {
		return nil, err
	}
	return &NelsonSiegel{p: fromVec(x)}, nil
}

// Params returns the fitted parameters.
func (ns *NelsonSiegel) Params() NelsonSiegelParams {
	return ns.p
}

// Eval returns the fitted spot rates at the target maturities.
func (ns *NelsonSiegel) Eval(targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, t := range targets {
		out[i] = ns.p.value(t)
	}
	return out
}
