package curve

import (
	"fmt"
	"math"
)

// Model is the contract an external regression model (Gaussian process,
// symbolic regression, ...) must satisfy to act as a curve strategy. Fit is
// called exactly once; Predict must be safe to call repeatedly afterwards.
type Model interface {
	Fit(maturities, values []float64) error
	Predict(maturities []float64) []float64
}

// External adapts a Model into an Interpolant. The observed discount factors
// are converted into the model's working space before training, and the
// model's predictions are converted into the requested return space before
// being handed back, with all conversions done under continuous compounding.
//
// Supported spaces for both tags: DomainDiscount, DomainSpot,
// DomainLogDiscount. DomainForward is rejected: pointwise forward
// predictions at arbitrary targets cannot be converted without bucket
// integration, which the fit/evaluate contract cannot express.
type External struct {
	model      Model
	domain     Domain
	returnType Domain
}

func supportedModelDomain(d Domain) bool {
	switch d {
	case DomainDiscount, DomainSpot, DomainLogDiscount:
		return true
	}
	return false
}

// FitExternal trains model on discount factors observed at strictly
// increasing maturities, expressed in the model's working domain.
func FitExternal(model Model, dfs, maturities []float64, domain, returnType Domain) (*External, error) {
	if model == nil {
		return nil, fmt.Errorf("FitExternal: nil model: %w", ErrDomain)
	}
	if err := checkNodes("FitExternal", dfs, maturities, 2); err != nil {
		return nil, err
	}
	if err := checkPositive("FitExternal", dfs); err != nil {
		return nil, err
	}
	if !supportedModelDomain(domain) {
		return nil, fmt.Errorf("FitExternal: unsupported model domain %q: %w", domain, ErrDomain)
	}
	if !supportedModelDomain(returnType) {
		return nil, fmt.Errorf("FitExternal: unsupported return type %q: %w", returnType, ErrDomain)
	}
	if domain == DomainSpot && maturities[0] <= 0 {
		return nil, fmt.Errorf("FitExternal: spot-domain training needs positive maturities, got %g: %w", maturities[0], ErrDomain)
	}

	training := make([]float64, len(dfs))
	for i, df := range dfs {
		training[i] = fromDiscount(df, maturities[i], domain)
	}

	if err := model.Fit(maturities, training); err != nil {
		return nil, fmt.Errorf("FitExternal: model fit: %v: %w", err, ErrFitConvergence)
	}

	return &External{model: model, domain: domain, returnType: returnType}, nil
}

// Eval predicts in the model's working domain and converts each value to the
// return domain. Conversions that divide by the target maturity yield NaN at
// exactly zero; discount factors are floored before any logarithm.
func (e *External) Eval(targets []float64) []float64 {
	raw := e.model.Predict(targets)
	out := make([]float64, len(targets))
	for i, v := range raw {
		out[i] = convertValue(v, targets[i], e.domain, e.returnType)
	}
	return out
}

// fromDiscount expresses a discount factor at maturity t in the given domain
// under continuous compounding.
func fromDiscount(df, t float64, d Domain) float64 {
	switch d {
	case DomainDiscount:
		return df
	case DomainLogDiscount:
		return -math.Log(df)
	case DomainSpot:
		return -math.Log(df) / t
	}
	return math.NaN()
}

// convertValue converts a single value at maturity t between two supported
// domains under continuous compounding.
func convertValue(v, t float64, from, to Domain) float64 {
	if from == to {
		return v
	}

	// Normalize to R·T.
	var rt float64
	switch from {
	case DomainDiscount:
		if v < dfFloor {
			v = dfFloor
		}
		rt = -math.Log(v)
	case DomainLogDiscount:
		rt = v
	case DomainSpot:
		rt = v * t
	default:
		return math.NaN()
	}

	switch to {
	case DomainDiscount:
		return math.Exp(-rt)
	case DomainLogDiscount:
		return rt
	case DomainSpot:
		if t == 0 {
			return math.NaN()
		}
		return rt / t
	}
	return math.NaN()
}
