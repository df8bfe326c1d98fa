// Package core holds the domain model of the ledger: monetary values,
// calendar dates, income/expense records and the installment and
// aggregation arithmetic that operates on them.
package core

import "time"

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// FormatBR formats the date as DD/MM/YYYY for report payloads.
func (d Date) FormatBR() string {
	return d.Format("02/01/2006")
}

// Before reports whether d falls before other (calendar comparison).
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// AddCalendarMonths advances d by n whole months. The month wraps into
// the year (January + 12 stays January of the next year) and the day of
// month is preserved, clamped to the last day of the target month when
// shorter: 2025-01-31 + 1 month = 2025-02-28.
//
// time.Time.AddDate is deliberately not used here: it normalizes
// overflowing days into the next month (Jan 31 + 1 month = Mar 3).
func AddCalendarMonths(d Date, n int) Date {
	months := d.Year()*12 + (d.Month() - 1) + n
	year := months / 12
	month := months%12 + 1

	day := d.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

func lastDayOfMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
