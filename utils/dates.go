// Package utils provides the date arithmetic shared by the instrument and
// demo layers.
package utils

import "time"

// Days returns the number of calendar days from start to end.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// YearFraction returns the elapsed time from start to end in years on a
// days/365.25 basis. This is the single time basis used throughout the
// module; leg-specific day count conventions are out of scope.
func YearFraction(start, end time.Time) float64 {
	return Days(start, end) / 365.25
}

// AddMonths shifts t by the given number of months, clamping the day to the
// last valid day of the target month (EDATE semantics). Jan 31 + 1 month is
// Feb 28 (or 29), not Mar 2/3.
func AddMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
