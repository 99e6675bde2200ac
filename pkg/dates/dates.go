// Package dates provides parsing, formatting and calendar arithmetic for the
// 8-digit dates used at the application boundary.
package dates

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the wire format for dates: YYYYMMDD.
const Layout = "20060102"

// ErrInvalidDate indicates a date string that is not a valid YYYYMMDD date.
var ErrInvalidDate = errors.New("invalid date, want YYYYMMDD")

// Parse converts an 8-digit YYYYMMDD string into a civil date.
func Parse(s string) (civil.Date, error) {
	if len(s) != len(Layout) {
		return civil.Date{}, ErrInvalidDate
	}

	t, err := time.Parse(Layout, s)
	if err != nil {
		return civil.Date{}, ErrInvalidDate
	}

	return civil.DateOf(t), nil
}

// Format converts a civil date into its YYYYMMDD wire representation.
func Format(d civil.Date) string {
	return d.In(time.UTC).Format(Layout)
}

// FirstDayOfMonth returns the first calendar day of the given month.
func FirstDayOfMonth(year int, month time.Month) civil.Date {
	return civil.Date{Year: year, Month: month, Day: 1}
}

// LastDayOfMonth returns the last calendar day of the given month.
func LastDayOfMonth(year int, month time.Month) civil.Date {
	// Day 0 of the next month normalizes to the last day of this month.
	return civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return LastDayOfMonth(year, month).Day
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if isLeap(year) {
		return 366
	}

	return 365
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
