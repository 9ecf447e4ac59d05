package bond_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/termstruct/bond"
	"github.com/meenmo/termstruct/rates"
	"github.com/meenmo/termstruct/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func within(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %.12g want %.12g (tol %g)", msg, got, want, tol)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	base := bond.Terms{
		ID:              "T-5Y",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2024, 1, 1),
		MaturityDate:    date(2028, 1, 1),
		Frequency:       1,
		Today:           date(2023, 6, 1),
	}

	cases := []struct {
		name   string
		mutate func(*bond.Terms)
	}{
		{"non-positive face", func(t *bond.Terms) { t.FaceValue = 0 }},
		{"negative coupon", func(t *bond.Terms) { t.CouponRate = -0.01 }},
		{"missing maturity", func(t *bond.Terms) { t.MaturityDate = time.Time{} }},
		{"missing today", func(t *bond.Terms) { t.Today = time.Time{} }},
		{"missing first coupon", func(t *bond.Terms) { t.FirstCouponDate = time.Time{} }},
		{"first coupon after maturity", func(t *bond.Terms) { t.FirstCouponDate = date(2029, 1, 1) }},
		{"super-monthly frequency", func(t *bond.Terms) { t.Frequency = 13 }},
	}

	for _, tc := range cases {
		terms := base
		tc.mutate(&terms)
		if _, err := bond.New(terms); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}

	if _, err := bond.New(base); err != nil {
		t.Fatalf("valid terms rejected: %v", err)
	}
}

func TestSchedule_AnnualWalk(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "T-3Y",
		FaceValue:       100,
		CouponRate:      0.04,
		FirstCouponDate: date(2024, 3, 15),
		MaturityDate:    date(2026, 3, 15),
		Frequency:       1,
		Today:           date(2023, 9, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sched := b.Schedule()
	wantDates := []time.Time{date(2024, 3, 15), date(2025, 3, 15), date(2026, 3, 15)}
	if len(sched) != len(wantDates) {
		t.Fatalf("expected %d payments, got %d", len(wantDates), len(sched))
	}
	for i, cf := range sched {
		if !cf.Date.Equal(wantDates[i]) {
			t.Fatalf("payment %d: got %s want %s", i, cf.Date.Format("2006-01-02"), wantDates[i].Format("2006-01-02"))
		}
		within(t, cf.Coupon, 4, 1e-12, "coupon amount")
	}
	within(t, sched[len(sched)-1].Principal, 100, 1e-12, "principal at maturity")
	within(t, sched[0].Principal, 0, 0, "no principal before maturity")
}

func TestSchedule_MonthEndClamp(t *testing.T) {
	t.Parallel()

	// Semiannual walk from Jan 31: each step lands on the 31st again because
	// both January and July have 31 days (EDATE semantics, no day drift).
	b, err := bond.New(bond.Terms{
		ID:              "CLAMP",
		FaceValue:       100,
		CouponRate:      0.06,
		FirstCouponDate: date(2024, 1, 31),
		MaturityDate:    date(2026, 1, 31),
		Frequency:       2,
		Today:           date(2023, 12, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var got []string
	for _, cf := range b.Schedule() {
		got = append(got, cf.Date.Format("2006-01-02"))
	}
	want := []string{"2024-01-31", "2024-07-31", "2025-01-31", "2025-07-31", "2026-01-31"}
	if len(got) != len(want) {
		t.Fatalf("expected %d payments, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("payment %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestSchedule_ZeroCoupon(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:           "ZCB",
		FaceValue:    100,
		CouponRate:   0.02,
		MaturityDate: date(2027, 6, 1),
		Frequency:    0,
		Today:        date(2025, 6, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sched := b.Schedule()
	if len(sched) != 1 {
		t.Fatalf("expected a single redemption, got %d payments", len(sched))
	}
	if !sched[0].Date.Equal(date(2027, 6, 1)) {
		t.Fatalf("redemption date: got %s", sched[0].Date.Format("2006-01-02"))
	}
	// Single accreted redemption: face plus one full coupon.
	within(t, sched[0].Amount(), 102, 1e-12, "accreted redemption")
}

func TestPrice_ZeroCouponFlatContinuous(t *testing.T) {
	t.Parallel()

	today := date(2023, 1, 1)
	b, err := bond.New(bond.Terms{
		ID:           "ZCB-2Y",
		FaceValue:    100,
		CouponRate:   0,
		MaturityDate: date(2025, 1, 1),
		Frequency:    0,
		Today:        today,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	price, err := b.Price([]float64{0.05}, rates.Continuous())
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	within(t, price, 100*math.Exp(-0.05*b.Maturity()), 1e-9, "discounted redemption")
	within(t, price, 90.48, 0.1, "two-year 5% zero")
}

func TestPrice_ParBondNearPar(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "PAR-2Y",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2024, 1, 1),
		MaturityDate:    date(2025, 1, 1),
		Frequency:       1,
		Today:           date(2023, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	flat := []float64{0.05, 0.05}
	price, err := b.Price(flat, rates.Annual())
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	within(t, price, 100, 0.05, "par bond at par yield")
}

func TestPrice_RateCountMismatch(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "T",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2024, 1, 1),
		MaturityDate:    date(2025, 1, 1),
		Frequency:       1,
		Today:           date(2023, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := b.Price([]float64{0.05}, rates.Annual()); err == nil {
		t.Fatal("expected an error for mismatched zero rate count")
	}
}

func TestSetToday_ShrinksFutureView(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "T-2Y",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2024, 1, 1),
		MaturityDate:    date(2025, 1, 1),
		Frequency:       1,
		Today:           date(2023, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := len(b.Maturities()); got != 2 {
		t.Fatalf("expected 2 future payments, got %d", got)
	}

	b.SetToday(date(2024, 6, 1))
	if got := len(b.Maturities()); got != 1 {
		t.Fatalf("after SetToday: expected 1 future payment, got %d", got)
	}
	flows := b.Cashflows()
	if len(flows) != 1 {
		t.Fatalf("after SetToday: expected 1 future cash flow, got %d", len(flows))
	}
	within(t, flows[0], 105, 1e-12, "final coupon plus principal")

	// The full schedule is unaffected by the valuation date.
	if got := len(b.Schedule()); got != 2 {
		t.Fatalf("schedule must stay fixed, got %d entries", got)
	}
}

func TestAccruedInterest_MidPeriod(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "T-2Y",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2024, 1, 1),
		MaturityDate:    date(2025, 1, 1),
		Frequency:       1,
		Today:           date(2024, 7, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	accrued, err := b.AccruedInterest()
	if err != nil {
		t.Fatalf("AccruedInterest: %v", err)
	}
	want := 5 * utils.Days(date(2024, 1, 1), date(2024, 7, 1)) / utils.Days(date(2024, 1, 1), date(2025, 1, 1))
	within(t, accrued, want, 1e-12, "mid-period accrual")

	clean, err := b.CleanPrice([]float64{0.05}, rates.Annual())
	if err != nil {
		t.Fatalf("CleanPrice: %v", err)
	}
	dirty, err := b.Price([]float64{0.05}, rates.Annual())
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	within(t, clean, dirty-accrued, 1e-12, "clean = dirty - accrued")
}

func TestAccruedInterest_BeforeFirstCoupon(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "NEW-ISSUE",
		FaceValue:       100,
		CouponRate:      0.04,
		FirstCouponDate: date(2024, 7, 1),
		MaturityDate:    date(2026, 7, 1),
		Frequency:       1,
		Today:           date(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	accrued, err := b.AccruedInterest()
	if err != nil {
		t.Fatalf("AccruedInterest: %v", err)
	}
	// Previous coupon synthesized one period before the first coupon date.
	prev := date(2023, 7, 1)
	want := 4 * utils.Days(prev, date(2024, 1, 1)) / utils.Days(prev, date(2024, 7, 1))
	within(t, accrued, want, 1e-12, "accrual before first coupon")
}

func TestAccruedInterest_ZeroCoupon(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:           "ZCB",
		FaceValue:    100,
		CouponRate:   0.03,
		MaturityDate: date(2027, 1, 1),
		Frequency:    0,
		Today:        date(2025, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	accrued, err := b.AccruedInterest()
	if err != nil {
		t.Fatalf("AccruedInterest: %v", err)
	}
	within(t, accrued, 0, 0, "zero-coupon accrual")
}

func TestAccruedInterest_Matured(t *testing.T) {
	t.Parallel()

	b, err := bond.New(bond.Terms{
		ID:              "MATURED",
		FaceValue:       100,
		CouponRate:      0.05,
		FirstCouponDate: date(2020, 1, 1),
		MaturityDate:    date(2021, 1, 1),
		Frequency:       1,
		Today:           date(2022, 1, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := b.AccruedInterest(); err == nil {
		t.Fatal("expected an error after maturity")
	}
}
