// Package bond generates payment schedules and cash flows for fixed-coupon
// bullet bonds and prices them off a zero curve via the rate algebra.
package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/termstruct/utils"
)

// Terms are the static contractual terms of a bond.
//
// Today is the valuation date and is a required input: callers in a
// reproducible context must pin it explicitly rather than rely on the wall
// clock.
type Terms struct {
	ID        string
	FaceValue float64
	// CouponRate is the annual coupon as a decimal (0.05 = 5%).
	CouponRate      float64
	FirstCouponDate time.Time
	MaturityDate    time.Time
	// Frequency is the number of coupon payments per year. Zero or negative
	// denotes a zero-coupon bond with a single accreted redemption at
	// maturity.
	Frequency int
	Today     time.Time
}

// Bond is a fixed-coupon bullet bond. The full payment schedule and cash
// flow amounts are fixed at construction; only the valuation date can change
// afterwards (SetToday), and the future-only views are recomputed from it on
// every access.
type Bond struct {
	terms    Terms
	schedule []Cashflow
	today    time.Time
}

// New validates the terms and builds the bond's full payment schedule.
func New(t Terms) (*Bond, error) {
	if t.FaceValue <= 0 {
		return nil, fmt.Errorf("bond.New: face value %g is not positive", t.FaceValue)
	}
	if t.CouponRate < 0 {
		return nil, fmt.Errorf("bond.New: coupon rate %g is negative", t.CouponRate)
	}
	if t.MaturityDate.IsZero() {
		return nil, fmt.Errorf("bond.New: maturity date is required")
	}
	if t.Today.IsZero() {
		return nil, fmt.Errorf("bond.New: valuation date (Today) is required")
	}
	if t.Frequency > 0 {
		if t.Frequency > 12 {
			return nil, fmt.Errorf("bond.New: payment frequency %d exceeds monthly", t.Frequency)
		}
		if t.FirstCouponDate.IsZero() {
			return nil, fmt.Errorf("bond.New: first coupon date is required for coupon bonds")
		}
		if t.FirstCouponDate.After(t.MaturityDate) {
			return nil, fmt.Errorf("bond.New: first coupon date %s is after maturity %s",
				t.FirstCouponDate.Format("2006-01-02"), t.MaturityDate.Format("2006-01-02"))
		}
	}

	return &Bond{
		terms:    t,
		schedule: buildSchedule(t),
		today:    t.Today,
	}, nil
}

// buildSchedule walks forward from the first coupon date in 12/Frequency
// month steps, clamping each date to the last valid day of its month, until
// reaching maturity; the maturity date itself is always the final payment.
func buildSchedule(t Terms) []Cashflow {
	if t.Frequency <= 0 {
		return []Cashflow{{
			Date:      t.MaturityDate,
			Coupon:    t.FaceValue * t.CouponRate,
			Principal: t.FaceValue,
		}}
	}

	step := 12 / t.Frequency
	coupon := t.FaceValue * t.CouponRate / float64(t.Frequency)

	var flows []Cashflow
	for d := t.FirstCouponDate; d.Before(t.MaturityDate); d = utils.AddMonths(d, step) {
		flows = append(flows, Cashflow{Date: d, Coupon: coupon})
	}
	flows = append(flows, Cashflow{
		Date:      t.MaturityDate,
		Coupon:    coupon,
		Principal: t.FaceValue,
	})
	return flows
}

// ID returns the bond's identifier.
func (b *Bond) ID() string {
	return b.terms.ID
}

// Terms returns a copy of the contractual terms as constructed.
func (b *Bond) Terms() Terms {
	return b.terms
}

// Today returns the current valuation date.
func (b *Bond) Today() time.Time {
	return b.today
}

// SetToday moves the valuation date. This is the bond's only mutation point;
// the schedule and cash flow amounts are untouched.
func (b *Bond) SetToday(today time.Time) {
	b.today = today
}

// Schedule returns the full payment schedule fixed at construction.
func (b *Bond) Schedule() []Cashflow {
	out := make([]Cashflow, len(b.schedule))
	copy(out, b.schedule)
	return out
}

// Maturity returns the year fraction from today to the maturity date.
func (b *Bond) Maturity() float64 {
	return utils.YearFraction(b.today, b.terms.MaturityDate)
}

// futureFlows returns the payments with a positive year fraction from the
// given valuation date.
func (b *Bond) futureFlows(today time.Time) []Cashflow {
	var out []Cashflow
	for _, cf := range b.schedule {
		if utils.YearFraction(today, cf.Date) > 0 {
			out = append(out, cf)
		}
	}
	return out
}

// Maturities returns the year fractions from today to each future payment.
func (b *Bond) Maturities() []float64 {
	fut := b.futureFlows(b.today)
	out := make([]float64, len(fut))
	for i, cf := range fut {
		out[i] = utils.YearFraction(b.today, cf.Date)
	}
	return out
}

// Cashflows returns the amounts of the future payments, aligned with
// Maturities.
func (b *Bond) Cashflows() []float64 {
	fut := b.futureFlows(b.today)
	out := make([]float64, len(fut))
	for i, cf := range fut {
		out[i] = cf.Amount()
	}
	return out
}
