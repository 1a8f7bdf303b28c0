// Copyright 2026 Peter Edge
//
// All rights reserved.

package xtime

import (
	"fmt"
	"time"
)

const (
	// clockLayout is the ISO 8601 time-of-day layout with seconds.
	clockLayout = "15:04:05"
	// clockLayoutNoSeconds is accepted for inputs that omit zero seconds.
	clockLayoutNoSeconds = "15:04"
)

// Clock is a wall-clock time of day with second precision and no location.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// TimeToClock returns the wall-clock time of t in t's location, truncated to the second.
func TimeToClock(t time.Time) Clock {
	return Clock{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// ParseClock parses a string in HH:MM:SS format.
//
// HH:MM is also accepted and yields zero seconds.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		var shortErr error
		t, shortErr = time.Parse(clockLayoutNoSeconds, s)
		if shortErr != nil {
			return Clock{}, err
		}
	}
	return TimeToClock(t), nil
}

// String returns the clock in HH:MM:SS format.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// IsValid reports whether every field is within its range.
func (c Clock) IsValid() bool {
	return c.Hour >= 0 && c.Hour <= 23 &&
		c.Minute >= 0 && c.Minute <= 59 &&
		c.Second >= 0 && c.Second <= 59
}

// On returns the time at which the clock reads c on date d in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, loc)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(data []byte) error {
	clock, err := ParseClock(string(data))
	if err != nil {
		return err
	}
	*c = clock
	return nil
}
