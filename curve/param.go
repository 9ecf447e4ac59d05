package curve

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
)

// boundedParam maps an unconstrained optimizer coordinate into (lo, hi)
// through a logistic transform, so a derivative-free minimizer can respect
// parameter bounds without explicit constraints.
type boundedParam struct {
	lo, hi float64
}

func (b boundedParam) value(u float64) float64 {
	return b.lo + (b.hi-b.lo)/(1+math.Exp(-u))
}

// unbound maps an in-range value back to the optimizer coordinate, pulling
// boundary values slightly inside so the transform stays finite.
func (b boundedParam) unbound(x float64) float64 {
	span := b.hi - b.lo
	eps := 1e-6 * span
	if x < b.lo+eps {
		x = b.lo + eps
	}
	if x > b.hi-eps {
		x = b.hi - eps
	}
	p := (x - b.lo) / span
	return math.Log(p / (1 - p))
}

// minimizeSSE runs Nelder-Mead on the objective from the given start point.
// Hitting the iteration bound is a convergence failure, never a silently
// poor fit.
func minimizeSSE(name string, objective func([]float64) float64, init []float64, s fitSettings) ([]float64, float64, error) {
	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{
		MajorIterations: s.maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.tol,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if err != nil {
		s.logger.Warn("curve fit failed",
			zap.String("fit", name),
			zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %v: %w", name, err, ErrFitConvergence)
	}
	switch result.Status {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		s.logger.Warn("curve fit hit its iteration bound",
			zap.String("fit", name),
			zap.Stringer("status", result.Status),
			zap.Int("iterations", result.Stats.MajorIterations))
		return nil, 0, fmt.Errorf("%s: optimizer stopped with status %v: %w", name, result.Status, ErrFitConvergence)
	}

	s.logger.Debug("curve fit converged",
		zap.String("fit", name),
		zap.Float64("sse", result.F),
		zap.Int("iterations", result.Stats.MajorIterations))
	return result.X, result.F, nil
}
