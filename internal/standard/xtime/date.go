// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xtime provides extensions to the standard time package.
//
// Date and Clock are civil values: a calendar day and a time of day with no
// attached location. They only become instants when combined with a zone.
package xtime

import (
	"fmt"
	"time"
)

// dateLayout is the ISO 8601 calendar date layout.
const dateLayout = "2006-01-02"

// Date is a Gregorian calendar date with no time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// TimeToDate returns the Date on which t occurs in t's location.
func TimeToDate(t time.Time) Date {
	year, month, day := t.Date()
	return Date{
		Year:  year,
		Month: month,
		Day:   day,
	}
}

// ParseDate parses a string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return TimeToDate(t), nil
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsValid reports whether the date names a real calendar day.
func (d Date) IsValid() bool {
	// time.Date normalizes out-of-range fields, so a round trip only
	// survives unchanged for real days.
	return TimeToDate(d.In(time.UTC)) == d
}

// In returns the time corresponding to midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0, or +1 depending on whether d is before, equal to, or after d2.
func (d Date) Compare(d2 Date) int {
	switch {
	case d.Year != d2.Year:
		return compareInts(d.Year, d2.Year)
	case d.Month != d2.Month:
		return compareInts(int(d.Month), int(d2.Month))
	default:
		return compareInts(d.Day, d2.Day)
	}
}

// Before reports whether d occurs before d2.
func (d Date) Before(d2 Date) bool {
	return d.Compare(d2) < 0
}

// After reports whether d occurs after d2.
func (d Date) After(d2 Date) bool {
	return d.Compare(d2) > 0
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(data []byte) error {
	date, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = date
	return nil
}

func compareInts(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
