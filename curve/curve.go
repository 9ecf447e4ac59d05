// Package curve fits continuous term-structure curves to discrete
// (maturity, value) observations.
//
// Every strategy follows the same contract: a Fit constructor consumes known
// values and strictly increasing maturities and returns an immutable
// Interpolant, or an error if the inputs are invalid or the fit fails. A
// fitted interpolant holds no mutable state and is safe for concurrent
// evaluation.
package curve

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/meenmo/termstruct/rates"
)

// ErrDomain reports invalid input shape or ordering. It is the same sentinel
// as rates.ErrDomain so errors.Is works across the module.
var ErrDomain = rates.ErrDomain

// ErrFitConvergence reports that a nonlinear fit failed to converge within
// its iteration bound. No interpolant is returned alongside it.
var ErrFitConvergence = errors.New("fit did not converge")

// Domain tags the value space a set of curve observations lives in.
type Domain string

const (
	// DomainDiscount marks discount factors in (0, 1].
	DomainDiscount Domain = "df"
	// DomainSpot marks annualized spot (zero) rates.
	DomainSpot Domain = "spot"
	// DomainLogDiscount marks negative log discount factors (R·T).
	DomainLogDiscount Domain = "log_df"
	// DomainForward marks bucketed forward rates. Only the rate algebra
	// consumes this tag; see FitExternal for the supported model spaces.
	DomainForward Domain = "fwd"
)

// Interpolant is a fitted curve evaluated at arbitrary target maturities.
// Implementations are immutable after fitting.
type Interpolant interface {
	Eval(targets []float64) []float64
}

// checkNodes validates a set of curve observations: aligned lengths, at
// least minPoints nodes, and strictly increasing non-negative maturities.
func checkNodes(name string, values, maturities []float64, minPoints int) error {
	if len(values) != len(maturities) {
		return fmt.Errorf("%s: got %d values for %d maturities: %w", name, len(values), len(maturities), ErrDomain)
	}
	if len(maturities) < minPoints {
		return fmt.Errorf("%s: need at least %d points, got %d: %w", name, minPoints, len(maturities), ErrDomain)
	}
	if maturities[0] < 0 {
		return fmt.Errorf("%s: negative maturity %g: %w", name, maturities[0], ErrDomain)
	}
	for i := 1; i < len(maturities); i++ {
		if maturities[i] <= maturities[i-1] {
			return fmt.Errorf("%s: maturities not strictly increasing at index %d (%g after %g): %w",
				name, i, maturities[i], maturities[i-1], ErrDomain)
		}
	}
	return nil
}

// checkPositive validates that every value is strictly positive (discount
// factor inputs before a logarithm is taken).
func checkPositive(name string, values []float64) error {
	for i, v := range values {
		if v <= 0 {
			return fmt.Errorf("%s: value %g at index %d is not positive: %w", name, v, i, ErrDomain)
		}
	}
	return nil
}

// fitSettings holds the knobs consumed by the parametric fitters.
type fitSettings struct {
	maxIter int
	tol     float64
	logger  *zap.Logger
}

func defaultFitSettings() fitSettings {
	return fitSettings{
		maxIter: 20000,
		tol:     1e-10,
		logger:  zap.NewNop(),
	}
}

// FitOption customizes a parametric fit.
type FitOption func(*fitSettings)

// WithMaxIterations bounds the optimizer's iteration count. Exceeding the
// bound surfaces as ErrFitConvergence, never as a silently poor fit.
func WithMaxIterations(n int) FitOption {
	return func(s *fitSettings) {
		if n > 0 {
			s.maxIter = n
		}
	}
}

// WithTolerance sets the objective convergence tolerance.
func WithTolerance(tol float64) FitOption {
	return func(s *fitSettings) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// WithLogger injects a logger for fit diagnostics. The default is a nop.
func WithLogger(l *zap.Logger) FitOption {
	return func(s *fitSettings) {
		if l != nil {
			s.logger = l
		}
	}
}
