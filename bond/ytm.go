package bond

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"

	"github.com/meenmo/termstruct/rates"
	"github.com/meenmo/termstruct/utils"
)

const (
	defaultYTMGuess   = 0.05
	defaultYTMTol     = 1e-12
	defaultYTMMaxIter = 500
)

// YTMParams configures the yield-to-maturity search.
type YTMParams struct {
	// Guess is the initial flat-yield guess (default 5%).
	Guess float64
	// Tol is the convergence tolerance on the squared pricing error.
	Tol float64
	// MaxIter bounds the optimizer iterations.
	MaxIter int
	// Logger receives the non-convergence notice; nop when nil.
	Logger *zap.Logger
}

func (p *YTMParams) fillDefaults() {
	if p.Guess == 0 {
		p.Guess = defaultYTMGuess
	}
	if p.Tol <= 0 {
		p.Tol = defaultYTMTol
	}
	if p.MaxIter <= 0 {
		p.MaxIter = defaultYTMMaxIter
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
}

// YTM solves for the flat rate that reproduces the observed market price by
// minimizing the squared pricing error with a derivative-free (Nelder-Mead)
// search seeded at the guess.
//
// A search that does not converge returns NaN rather than an error; callers
// must check with math.IsNaN. The diagnostic notice goes to the configured
// logger.
func (b *Bond) YTM(marketPrice float64, comp rates.Compounding, p YTMParams) float64 {
	p.fillDefaults()

	fut := b.futureFlows(b.today)
	if len(fut) == 0 {
		p.Logger.Warn("yield solve skipped: no future cash flows",
			zap.String("bond", b.terms.ID),
			zap.Time("today", b.today))
		return math.NaN()
	}

	maturities := make([]float64, len(fut))
	amounts := make([]float64, len(fut))
	for i, cf := range fut {
		maturities[i] = utils.YearFraction(b.today, cf.Date)
		amounts[i] = cf.Amount()
	}

	flat := make([]float64, len(fut))
	objective := func(x []float64) float64 {
		for i := range flat {
			flat[i] = x[0]
		}
		price, err := PriceCashflows(amounts, maturities, flat, comp)
		if err != nil || math.IsNaN(price) {
			return math.Inf(1)
		}
		d := price - marketPrice
		return d * d
	}

	settings := &optimize.Settings{
		MajorIterations: p.MaxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   p.Tol,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(optimize.Problem{Func: objective}, []float64{p.Guess}, settings, &optimize.NelderMead{})
	if err != nil {
		p.Logger.Warn("yield solve did not converge",
			zap.String("bond", b.terms.ID),
			zap.Float64("market_price", marketPrice),
			zap.Error(err))
		return math.NaN()
	}
	switch result.Status {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		p.Logger.Warn("yield solve hit its iteration bound",
			zap.String("bond", b.terms.ID),
			zap.Float64("market_price", marketPrice),
			zap.Stringer("status", result.Status),
			zap.Int("iterations", result.Stats.MajorIterations))
		return math.NaN()
	}

	return result.X[0]
}

// CalcYTM runs YTM with default parameters.
func (b *Bond) CalcYTM(marketPrice float64, comp rates.Compounding) float64 {
	return b.YTM(marketPrice, comp, YTMParams{})
}
