// Package rates implements the pure conversion algebra between spot (zero)
// rates, discount factors, and forward rates under a chosen compounding
// convention. Every function is stateless, operates on aligned slices, and
// validates its inputs before any computation.
package rates

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is wrapped by every error reporting invalid input shape or
// ordering (mismatched lengths, non-increasing maturities, negative
// maturities, invalid compounding). Use errors.Is to detect it.
var ErrDomain = errors.New("invalid input domain")

// Compounding specifies how rates compound: a discrete number of periods per
// year, or continuously. The two are mutually exclusive by construction.
type Compounding struct {
	freq       int
	continuous bool
}

// Continuous returns the continuous compounding convention.
func Continuous() Compounding {
	return Compounding{continuous: true}
}

// Discrete returns a discrete compounding convention with freq periods per
// year. freq must be positive; validity is checked by the consuming
// conversion functions.
func Discrete(freq int) Compounding {
	return Compounding{freq: freq}
}

// Annual is shorthand for Discrete(1).
func Annual() Compounding {
	return Discrete(1)
}

// IsContinuous reports whether the convention compounds continuously.
func (c Compounding) IsContinuous() bool {
	return c.continuous
}

// Frequency returns the discrete periods per year. Zero for continuous.
func (c Compounding) Frequency() int {
	if c.continuous {
		return 0
	}
	return c.freq
}

func (c Compounding) String() string {
	if c.continuous {
		return "continuous"
	}
	return fmt.Sprintf("%dx/year", c.freq)
}

func (c Compounding) validate() error {
	if !c.continuous && c.freq <= 0 {
		return fmt.Errorf("compounding frequency %d is not positive: %w", c.freq, ErrDomain)
	}
	return nil
}

func checkAligned(name string, a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%s: got %d values for %d maturities: %w", name, len(a), len(b), ErrDomain)
	}
	return nil
}

// SpotToDiscount converts spot rates to discount factors.
//
// Continuous: df = exp(-r·t). Discrete: df = (1 + r/freq)^(-freq·t).
// Maturities must be non-negative.
func SpotToDiscount(spotRates, maturities []float64, comp Compounding) ([]float64, error) {
	if err := checkAligned("SpotToDiscount", spotRates, maturities); err != nil {
		return nil, err
	}
	if err := comp.validate(); err != nil {
		return nil, fmt.Errorf("SpotToDiscount: %w", err)
	}
	for _, t := range maturities {
		if t < 0 {
			return nil, fmt.Errorf("SpotToDiscount: negative maturity %g: %w", t, ErrDomain)
		}
	}

	dfs := make([]float64, len(spotRates))
	for i, r := range spotRates {
		t := maturities[i]
		if comp.continuous {
			dfs[i] = math.Exp(-r * t)
		} else {
			f := float64(comp.freq)
			dfs[i] = math.Pow(1+r/f, -f*t)
		}
	}
	return dfs, nil
}

// DiscountToSpot converts discount factors to spot rates; the exact inverse
// of SpotToDiscount for positive maturities.
//
// Continuous: r = -ln(df)/t. Discrete: r = freq·(df^(-1/(freq·t)) - 1).
// Maturities must be strictly positive (the t=0 limit is excluded; callers
// filter) and discount factors strictly positive.
func DiscountToSpot(dfs, maturities []float64, comp Compounding) ([]float64, error) {
	if err := checkAligned("DiscountToSpot", dfs, maturities); err != nil {
		return nil, err
	}
	if err := comp.validate(); err != nil {
		return nil, fmt.Errorf("DiscountToSpot: %w", err)
	}
	for i, t := range maturities {
		if t <= 0 {
			return nil, fmt.Errorf("DiscountToSpot: maturity %g is not positive: %w", t, ErrDomain)
		}
		if dfs[i] <= 0 {
			return nil, fmt.Errorf("DiscountToSpot: discount factor %g is not positive: %w", dfs[i], ErrDomain)
		}
	}

	out := make([]float64, len(dfs))
	for i, df := range dfs {
		t := maturities[i]
		if comp.continuous {
			out[i] = -math.Log(df) / t
		} else {
			f := float64(comp.freq)
			out[i] = f * (math.Pow(df, -1/(f*t)) - 1)
		}
	}
	return out, nil
}

// TransformRates converts rates from one compounding convention to another by
// round-tripping through the discount factor implied over a unit period. The
// transform is pure and invertible; it is the identity when from == to.
func TransformRates(spotRates []float64, from, to Compounding) ([]float64, error) {
	if err := from.validate(); err != nil {
		return nil, fmt.Errorf("TransformRates: from: %w", err)
	}
	if err := to.validate(); err != nil {
		return nil, fmt.Errorf("TransformRates: to: %w", err)
	}

	out := make([]float64, len(spotRates))
	if from == to {
		copy(out, spotRates)
		return out, nil
	}

	for i, r := range spotRates {
		var df float64
		if from.continuous {
			df = math.Exp(-r)
		} else {
			f := float64(from.freq)
			df = math.Pow(1+r/f, -f)
		}
		if to.continuous {
			out[i] = -math.Log(df)
		} else {
			f := float64(to.freq)
			out[i] = f * (math.Pow(df, -1/f) - 1)
		}
	}
	return out, nil
}
