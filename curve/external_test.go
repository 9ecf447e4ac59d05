package curve_test

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/meenmo/termstruct/curve"
)

// linearModel is a stand-in for an external regressor (Gaussian process,
// symbolic regression): it memorizes the training pairs and predicts by
// piecewise-linear interpolation.
type linearModel struct {
	xs, ys []float64
	fitted bool
}

func (m *linearModel) Fit(maturities, values []float64) error {
	m.xs = append([]float64(nil), maturities...)
	m.ys = append([]float64(nil), values...)
	m.fitted = true
	return nil
}

func (m *linearModel) Predict(maturities []float64) []float64 {
	out := make([]float64, len(maturities))
	for i, x := range maturities {
		j := sort.SearchFloat64s(m.xs, x)
		if j > 0 {
			j--
		}
		if j > len(m.xs)-2 {
			j = len(m.xs) - 2
		}
		slope := (m.ys[j+1] - m.ys[j]) / (m.xs[j+1] - m.xs[j])
		out[i] = m.ys[j] + slope*(x-m.xs[j])
	}
	return out
}

// failingModel always refuses to train.
type failingModel struct{}

func (failingModel) Fit(_, _ []float64) error {
	return fmt.Errorf("training diverged")
}

func (failingModel) Predict(maturities []float64) []float64 {
	return make([]float64, len(maturities))
}

func TestFitExternal_LogDiscountToSpot(t *testing.T) {
	t.Parallel()

	// Flat 3% continuous curve: R·T is linear in T, so the linear stub is
	// exact and the adapter's conversions are isolated.
	maturities := []float64{1, 2, 5, 10}
	dfs := make([]float64, len(maturities))
	for i, m := range maturities {
		dfs[i] = math.Exp(-0.03 * m)
	}

	ext, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.DomainLogDiscount, curve.DomainSpot)
	if err != nil {
		t.Fatalf("FitExternal: %v", err)
	}

	got := ext.Eval([]float64{1, 3.5, 7, 10})
	for i, y := range got {
		within(t, y, 0.03, 1e-12, fmt.Sprintf("spot at target %d", i))
	}
}

func TestFitExternal_DiscountRoundTrip(t *testing.T) {
	t.Parallel()

	maturities := []float64{1, 2, 3}
	dfs := []float64{0.97, 0.94, 0.90}

	ext, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.DomainDiscount, curve.DomainDiscount)
	if err != nil {
		t.Fatalf("FitExternal: %v", err)
	}

	got := ext.Eval(maturities)
	for i := range maturities {
		within(t, got[i], dfs[i], 1e-12, "identity return domain")
	}
}

func TestFitExternal_SpotModelToLogDiscount(t *testing.T) {
	t.Parallel()

	maturities := []float64{1, 2, 4}
	dfs := make([]float64, len(maturities))
	for i, m := range maturities {
		dfs[i] = math.Exp(-0.025 * m)
	}

	ext, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.DomainSpot, curve.DomainLogDiscount)
	if err != nil {
		t.Fatalf("FitExternal: %v", err)
	}

	got := ext.Eval([]float64{2})
	within(t, got[0], 0.05, 1e-12, "log-discount at 2y")
}

func TestFitExternal_RejectsForwardTag(t *testing.T) {
	t.Parallel()

	dfs := []float64{0.97, 0.94}
	maturities := []float64{1, 2}

	if _, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.DomainForward, curve.DomainSpot); !errors.Is(err, curve.ErrDomain) {
		t.Fatalf("forward model domain: expected ErrDomain, got %v", err)
	}
	if _, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.DomainDiscount, curve.DomainForward); !errors.Is(err, curve.ErrDomain) {
		t.Fatalf("forward return type: expected ErrDomain, got %v", err)
	}
	if _, err := curve.FitExternal(&linearModel{}, dfs, maturities, curve.Domain("bogus"), curve.DomainSpot); !errors.Is(err, curve.ErrDomain) {
		t.Fatalf("unknown tag: expected ErrDomain, got %v", err)
	}
}

func TestFitExternal_ModelFailurePropagates(t *testing.T) {
	t.Parallel()

	ext, err := curve.FitExternal(failingModel{}, []float64{0.97, 0.94}, []float64{1, 2}, curve.DomainDiscount, curve.DomainSpot)
	if !errors.Is(err, curve.ErrFitConvergence) {
		t.Fatalf("expected ErrFitConvergence, got %v", err)
	}
	if ext != nil {
		t.Fatal("no interpolant may escape a failed fit")
	}
}

func TestFitExternal_NilModel(t *testing.T) {
	t.Parallel()

	if _, err := curve.FitExternal(nil, []float64{0.97, 0.94}, []float64{1, 2}, curve.DomainDiscount, curve.DomainSpot); !errors.Is(err, curve.ErrDomain) {
		t.Fatalf("expected ErrDomain for nil model, got %v", err)
	}
}
