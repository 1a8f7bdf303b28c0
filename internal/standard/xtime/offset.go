// Copyright 2026 Peter Edge
//
// All rights reserved.

package xtime

import "fmt"

// FormatOffset formats a UTC offset in seconds as ±HH:MM, or ±HH:MM:SS if
// the offset is not a whole number of minutes.
func FormatOffset(offsetSeconds int) string {
	sign := '+'
	if offsetSeconds < 0 {
		sign = '-'
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := offsetSeconds % 3600 / 60
	if seconds := offsetSeconds % 60; seconds != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
}
