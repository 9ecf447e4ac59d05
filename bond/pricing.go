package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/termstruct/rates"
	"github.com/meenmo/termstruct/utils"
)

// PriceCashflows present-values arbitrary cash flows given per-flow zero
// rates, discounting through the rate algebra.
func PriceCashflows(cashflows, maturities, zeroRates []float64, comp rates.Compounding) (float64, error) {
	if len(cashflows) != len(maturities) {
		return 0, fmt.Errorf("PriceCashflows: got %d cash flows for %d maturities: %w",
			len(cashflows), len(maturities), rates.ErrDomain)
	}

	dfs, err := rates.SpotToDiscount(zeroRates, maturities, comp)
	if err != nil {
		return 0, fmt.Errorf("PriceCashflows: %w", err)
	}

	price := 0.0
	for i, cf := range cashflows {
		price += cf * dfs[i]
	}
	return price, nil
}

// Price present-values the bond's future cash flows only, one zero rate per
// future payment.
func (b *Bond) Price(zeroRates []float64, comp rates.Compounding) (float64, error) {
	fut := b.futureFlows(b.today)
	if len(zeroRates) != len(fut) {
		return 0, fmt.Errorf("bond.Price: got %d zero rates for %d future payments: %w",
			len(zeroRates), len(fut), rates.ErrDomain)
	}

	maturities := make([]float64, len(fut))
	amounts := make([]float64, len(fut))
	for i, cf := range fut {
		maturities[i] = utils.YearFraction(b.today, cf.Date)
		amounts[i] = cf.Amount()
	}
	return PriceCashflows(amounts, maturities, zeroRates, comp)
}

// AccruedInterest returns the coupon accrued linearly between the most
// recent past coupon date and the next future one, proportional to elapsed
// days over the full period. Zero-coupon bonds accrue nothing. When today
// precedes the first coupon, the previous coupon is taken one period before
// the first coupon date.
func (b *Bond) AccruedInterest() (float64, error) {
	if b.terms.Frequency <= 0 {
		return 0, nil
	}

	var prev, next time.Time
	for _, cf := range b.schedule {
		if !cf.Date.After(b.today) {
			prev = cf.Date
		} else {
			next = cf.Date
			break
		}
	}
	if next.IsZero() {
		return 0, fmt.Errorf("AccruedInterest: no payment after valuation date %s", b.today.Format("2006-01-02"))
	}
	if prev.IsZero() {
		prev = utils.AddMonths(b.schedule[0].Date, -12/b.terms.Frequency)
	}

	periodCoupon := b.terms.FaceValue * b.terms.CouponRate / float64(b.terms.Frequency)
	return periodCoupon * utils.Days(prev, b.today) / utils.Days(prev, next), nil
}

// CleanPrice is the present value of the future cash flows net of accrued
// interest.
func (b *Bond) CleanPrice(zeroRates []float64, comp rates.Compounding) (float64, error) {
	dirty, err := b.Price(zeroRates, comp)
	if err != nil {
		return 0, err
	}
	accrued, err := b.AccruedInterest()
	if err != nil {
		return 0, err
	}
	return dirty - accrued, nil
}
