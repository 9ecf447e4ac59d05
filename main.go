package main

import (
	"fmt"
	"log"
	"time"

	"github.com/meenmo/termstruct/bond"
	"github.com/meenmo/termstruct/curve"
	"github.com/meenmo/termstruct/rates"
)

func main() {
	maturities := []float64{0.25, 0.5, 1, 2, 3, 5, 7, 10}
	zeroRates := []float64{0.0310, 0.0322, 0.0335, 0.0349, 0.0355, 0.0358, 0.0360, 0.0362}

	dfs, err := rates.SpotToDiscount(zeroRates, maturities, rates.Continuous())
	if err != nil {
		log.Fatal(err)
	}

	linear, err := curve.FitLinearLogDiscount(dfs, maturities)
	if err != nil {
		log.Fatal(err)
	}
	spline, err := curve.FitCubicSpline(zeroRates, maturities)
	if err != nil {
		log.Fatal(err)
	}
	monotone, err := curve.FitMonotoneConvex(zeroRates, maturities)
	if err != nil {
		log.Fatal(err)
	}
	hermite, err := curve.FitHermiteLogDiscount(dfs, maturities)
	if err != nil {
		log.Fatal(err)
	}
	ns, err := curve.FitNelsonSiegel(zeroRates, maturities)
	if err != nil {
		log.Fatal(err)
	}

	targets := []float64{0.75, 1.5, 4, 6, 8.5}
	fmt.Println("interpolated zero rates (%):")
	fmt.Printf("%-10s %8s %8s %8s %8s %8s\n", "maturity", "linear", "cubic", "monot", "hermite", "ns")
	linVals := linear.Eval(targets)
	cubVals := spline.Eval(targets)
	monVals := monotone.Eval(targets)
	herVals := hermite.Eval(targets)
	nsVals := ns.Eval(targets)
	for i, t := range targets {
		fmt.Printf("%-10.2f %8.4f %8.4f %8.4f %8.4f %8.4f\n",
			t, 100*linVals[i], 100*cubVals[i], 100*monVals[i], 100*herVals[i], 100*nsVals[i])
	}

	p := ns.Params()
	fmt.Printf("\nNelson-Siegel: beta0=%.4f beta1=%.4f beta2=%.4f tau=%.4f\n",
		p.Beta0, p.Beta1, p.Beta2, p.Tau)

	b, err := bond.New(bond.Terms{
		ID:              "DEMO-3.5-2030",
		FaceValue:       100,
		CouponRate:      0.035,
		FirstCouponDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		MaturityDate:    time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC),
		Frequency:       2,
		Today:           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		log.Fatal(err)
	}

	flowRates := monotone.Eval(b.Maturities())
	price, err := b.Price(flowRates, rates.Continuous())
	if err != nil {
		log.Fatal(err)
	}
	accrued, err := b.AccruedInterest()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n%s: dirty=%.4f accrued=%.4f clean=%.4f ytm=%.4f%%\n",
		b.ID(), price, accrued, price-accrued,
		100*b.CalcYTM(price, rates.Continuous()))
}
