package rates

import (
	"fmt"
	"math"
)

// ForwardBucket is the maturity range one forward rate applies to.
type ForwardBucket struct {
	Start float64
	End   float64
}

// Width returns the bucket's year fraction.
func (b ForwardBucket) Width() float64 {
	return b.End - b.Start
}

func checkStrictlyIncreasing(name string, maturities []float64) error {
	for i := 1; i < len(maturities); i++ {
		if maturities[i] <= maturities[i-1] {
			return fmt.Errorf("%s: maturities not strictly increasing at index %d (%g after %g): %w",
				name, i, maturities[i], maturities[i-1], ErrDomain)
		}
	}
	return nil
}

// SpotToForward converts spot rates to the forward rates over the buckets
// [0, m0], [m0, m1], ... The first forward equals the first spot rate by
// convention. Maturities must be strictly increasing with m0 > 0.
func SpotToForward(spotRates, maturities []float64, comp Compounding) ([]ForwardBucket, []float64, error) {
	if err := checkAligned("SpotToForward", spotRates, maturities); err != nil {
		return nil, nil, err
	}
	if err := comp.validate(); err != nil {
		return nil, nil, fmt.Errorf("SpotToForward: %w", err)
	}
	if len(maturities) == 0 {
		return nil, nil, fmt.Errorf("SpotToForward: no maturities: %w", ErrDomain)
	}
	if maturities[0] <= 0 {
		return nil, nil, fmt.Errorf("SpotToForward: first maturity %g is not positive: %w", maturities[0], ErrDomain)
	}
	if err := checkStrictlyIncreasing("SpotToForward", maturities); err != nil {
		return nil, nil, err
	}

	n := len(spotRates)
	buckets := make([]ForwardBucket, n)
	buckets[0] = ForwardBucket{Start: 0, End: maturities[0]}
	for i := 1; i < n; i++ {
		buckets[i] = ForwardBucket{Start: maturities[i-1], End: maturities[i]}
	}

	fwds := make([]float64, n)
	fwds[0] = spotRates[0]

	if comp.continuous {
		for i := 1; i < n; i++ {
			dt := maturities[i] - maturities[i-1]
			fwds[i] = (spotRates[i]*maturities[i] - spotRates[i-1]*maturities[i-1]) / dt
		}
		return buckets, fwds, nil
	}

	dfs, err := SpotToDiscount(spotRates, maturities, comp)
	if err != nil {
		return nil, nil, err
	}
	f := float64(comp.freq)
	for i := 1; i < n; i++ {
		ratio := dfs[i] / dfs[i-1]
		dt := maturities[i] - maturities[i-1]
		fwds[i] = f * (math.Pow(ratio, -1/(f*dt)) - 1)
	}
	return buckets, fwds, nil
}

// DiscountToForward converts discount factors to bucketed forward rates by
// composing DiscountToSpot and SpotToForward.
func DiscountToForward(dfs, maturities []float64, comp Compounding) ([]ForwardBucket, []float64, error) {
	spots, err := DiscountToSpot(dfs, maturities, comp)
	if err != nil {
		return nil, nil, err
	}
	return SpotToForward(spots, maturities, comp)
}

// ForwardToDiscount reconstructs cumulative discount factors from per-bucket
// forward rates as the running product of each bucket's implied discount
// factor over its width. It returns the bucket-end maturities and the
// cumulative discount factors.
func ForwardToDiscount(fwds []float64, buckets []ForwardBucket, comp Compounding) ([]float64, []float64, error) {
	if len(fwds) != len(buckets) {
		return nil, nil, fmt.Errorf("ForwardToDiscount: got %d forwards for %d buckets: %w", len(fwds), len(buckets), ErrDomain)
	}
	if err := comp.validate(); err != nil {
		return nil, nil, fmt.Errorf("ForwardToDiscount: %w", err)
	}

	widths := make([]float64, len(buckets))
	maturities := make([]float64, len(buckets))
	for i, b := range buckets {
		if b.Width() <= 0 {
			return nil, nil, fmt.Errorf("ForwardToDiscount: bucket %d has non-positive width %g: %w", i, b.Width(), ErrDomain)
		}
		widths[i] = b.Width()
		maturities[i] = b.End
	}

	stepDFs, err := SpotToDiscount(fwds, widths, comp)
	if err != nil {
		return nil, nil, err
	}

	dfs := make([]float64, len(stepDFs))
	running := 1.0
	for i, d := range stepDFs {
		running *= d
		dfs[i] = running
	}
	return maturities, dfs, nil
}
