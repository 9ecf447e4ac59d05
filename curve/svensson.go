package curve

import (
	"math"
	"sort"
)

// SvenssonParams are the fitted parameters of the 6-parameter Svensson
// extension of Nelson-Siegel, which adds a second hump term with its own
// decay:
//
//	r(t) = β0 + β1·L1(t/λ1) + β2·(L1(t/λ1) − e^(−t/λ1))
//	          + β3·(L1(t/λ2) − e^(−t/λ2))
//
// Lambda1 and Lambda2 are the decays in years; they are optimized in
// log-space so positivity holds by construction.
type SvenssonParams struct {
	Beta0   float64
	Beta1   float64
	Beta2   float64
	Beta3   float64
	Lambda1 float64
	Lambda2 float64
}

func (p SvenssonParams) value(t float64) float64 {
	l1 := svenssonLoad(t, p.Lambda1)
	l2 := l1 - math.Exp(-t/p.Lambda1)
	l3 := svenssonLoad(t, p.Lambda2) - math.Exp(-t/p.Lambda2)
	return p.Beta0 + p.Beta1*l1 + p.Beta2*l2 + p.Beta3*l3
}

// svenssonLoad computes (1 − e^(−x))/x for x = t/λ, switching to the Taylor
// expansion 1 − x/2 + x²/6 for small x to avoid catastrophic cancellation.
func svenssonLoad(t, lambda float64) float64 {
	x := t / lambda
	if x < 1e-6 {
		return 1 - x/2 + x*x/6
	}
	return (1 - math.Exp(-x)) / x
}

// Svensson is a fitted Svensson curve.
type Svensson struct {
	p SvenssonParams
}

var (
	svBeta0Bound = boundedParam{lo: -5, hi: 15}
	svBetaBound  = boundedParam{lo: -10, hi: 10}
	svLnLambda   = boundedParam{lo: math.Log(0.01), hi: math.Log(30)}
)

// FitSvensson calibrates the Svensson parameters to observed spot rates by
// nonlinear least squares (Nelder-Mead over logistic-bounded parameters,
// decays in log-space). Maturities are sorted ascending internally; duplicate
// maturities are rejected. Non-convergence surfaces as ErrFitConvergence.
func FitSvensson(zeroRates, maturities []float64, opts ...FitOption) (*Svensson, error) {
	if len(zeroRates) != len(maturities) {
		return nil, checkNodes("FitSvensson", zeroRates, maturities, 6)
	}

	// Sort a copy of the observations by maturity; curve_fit-style
	// optimizers are sensitive to ordering.
	idx := make([]int, len(maturities))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return maturities[idx[i]] < maturities[idx[j]] })

	ms := make([]float64, len(maturities))
	rs := make([]float64, len(zeroRates))
	for i, k := range idx {
		ms[i] = maturities[k]
		rs[i] = zeroRates[k]
	}

	if err := checkNodes("FitSvensson", rs, ms, 6); err != nil {
		return nil, err
	}

	s := defaultFitSettings()
	for _, opt := range opts {
		opt(&s)
	}

	bounds := [6]boundedParam{svBeta0Bound, svBetaBound, svBetaBound, svBetaBound, svLnLambda, svLnLambda}
	fromVec := func(u []float64) SvenssonParams {
		return SvenssonParams{
			Beta0:   bounds[0].value(u[0]),
			Beta1:   bounds[1].value(u[1]),
			Beta2:   bounds[2].value(u[2]),
			Beta3:   bounds[3].value(u[3]),
			Lambda1: math.Exp(bounds[4].value(u[4])),
			Lambda2: math.Exp(bounds[5].value(u[5])),
		}
	}

	objective := func(u []float64) float64 {
		p := fromVec(u)
		sse := 0.0
		for i, t := range ms {
			d := p.value(t) - rs[i]
			sse += d * d
		}
		return sse
	}

	// Standard starting point: long rate for the level, unit and 5y decays.
	init := []float64{
		bounds[0].unbound(rs[len(rs)-1]),
		bounds[1].unbound(-1),
		bounds[2].unbound(1),
		bounds[3].unbound(0.5),
		bounds[4].unbound(math.Log(1)),
		bounds[5].unbound(math.Log(5)),
	}

	x, _, err := minimizeSSE("FitSvensson", objective, init, s)
	if err != nil {
		return nil, err
	}
	return &Svensson{p: fromVec(x)}, nil
}

// Params returns the fitted parameters.
func (sv *Svensson) Params() SvenssonParams {
	return sv.p
}

// Eval returns the fitted spot rates at the target maturities.
func (sv *Svensson) Eval(targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, t := range targets {
		out[i] = sv.p.value(t)
	}
	return out
}
