// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickconvert converts a zone-local calendar date and wall-clock
// time into Unix epoch seconds.
//
// Wall-clock values that fall in a daylight saving transition are detected
// and resolved according to a Disambiguation policy instead of being left to
// whatever the zone database happens to return.
package epochpickconvert

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bufdev/epochpick/internal/pkg/timepb"
	"github.com/bufdev/epochpick/internal/standard/xtime"
)

var (
	// ErrInvalidInput is returned when the date or time fields are malformed or out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownZone is returned when the zone cannot be resolved by the zone database.
	ErrUnknownZone = errors.New("unknown zone")
	// ErrAmbiguousTime is returned under DisambiguationReject when the wall-clock
	// time occurs twice in the zone.
	ErrAmbiguousTime = errors.New("ambiguous local time")
	// ErrSkippedTime is returned under DisambiguationReject when the wall-clock
	// time never occurs in the zone.
	ErrSkippedTime = errors.New("skipped local time")
)

// Result is the outcome of a single conversion.
type Result struct {
	// EpochSeconds is the number of seconds since 1970-01-01T00:00:00Z.
	EpochSeconds int64 `json:"epoch_seconds"`
	// Date is the requested calendar date.
	Date xtime.Date `json:"date"`
	// Clock is the requested wall-clock time.
	Clock xtime.Clock `json:"time"`
	// Zone is the requested zone identifier.
	Zone string `json:"zone"`
	// OffsetSeconds is the zone's UTC offset at the resulting instant.
	OffsetSeconds int `json:"offset_seconds"`
	// Abbreviation is the zone abbreviation at the resulting instant (e.g., "EST").
	Abbreviation string `json:"abbreviation"`
	// UTC is the resulting instant in UTC.
	UTC time.Time `json:"utc"`
	// Skipped is true if the wall-clock time does not exist in the zone and was shifted.
	Skipped bool `json:"skipped,omitempty"`
	// Ambiguous is true if the wall-clock time occurs twice in the zone.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// String returns the decimal epoch seconds.
func (r *Result) String() string {
	return fmt.Sprintf("%d", r.EpochSeconds)
}

// ConvertOption is a functional option for Convert.
type ConvertOption func(*convertOptions)

// ConvertWithDisambiguation sets the policy for wall-clock times in a DST transition.
//
// The default is DisambiguationCompatible.
func ConvertWithDisambiguation(disambiguation Disambiguation) ConvertOption {
	return func(convertOptions *convertOptions) {
		convertOptions.disambiguation = disambiguation
	}
}

// Convert returns the epoch seconds at which the clock reads clock on date in zone.
//
// Errors wrap ErrInvalidInput, ErrUnknownZone, ErrAmbiguousTime, or ErrSkippedTime.
func Convert(date xtime.Date, clock xtime.Clock, zone string, options ...ConvertOption) (*Result, error) {
	convertOptions := newConvertOptions()
	for _, option := range options {
		option(convertOptions)
	}
	if err := validateFields(date, clock); err != nil {
		return nil, err
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	instant, resolution, err := resolve(date, clock, loc, convertOptions.disambiguation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s in %s", err, date, clock, zone)
	}
	abbreviation, offsetSeconds := instant.In(loc).Zone()
	return &Result{
		// Unix truncates to whole seconds; instant has no fractional part.
		EpochSeconds:  instant.Unix(),
		Date:          date,
		Clock:         clock,
		Zone:          zone,
		OffsetSeconds: offsetSeconds,
		Abbreviation:  abbreviation,
		UTC:           instant.UTC(),
		Skipped:       resolution == resolutionSkipped,
		Ambiguous:     resolution == resolutionAmbiguous,
	}, nil
}

// ConvertStrings parses a YYYY-MM-DD date and an HH:MM:SS time and converts them in zone.
func ConvertStrings(dateString string, clockString string, zone string, options ...ConvertOption) (*Result, error) {
	date, err := xtime.ParseDate(strings.TrimSpace(dateString))
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be in YYYY-MM-DD format: %v", ErrInvalidInput, dateString, err)
	}
	clock, err := xtime.ParseClock(strings.TrimSpace(clockString))
	if err != nil {
		return nil, fmt.Errorf("%w: time %q must be in HH:MM:SS format: %v", ErrInvalidInput, clockString, err)
	}
	return Convert(date, clock, strings.TrimSpace(zone), options...)
}

// LoadZone resolves a zone identifier such as "America/New_York".
//
// The empty string and "Local" are rejected since they do not name a zone.
func LoadZone(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}
	return loc, nil
}

// *** PRIVATE ***

type convertOptions struct {
	disambiguation Disambiguation
}

func newConvertOptions() *convertOptions {
	return &convertOptions{
		disambiguation: DisambiguationCompatible,
	}
}

func validateFields(date xtime.Date, clock xtime.Clock) error {
	// Field ranges are enforced by the proto rules.
	if _, err := timepb.DateToProto(date); err != nil {
		return fmt.Errorf("%w: date %s: %v", ErrInvalidInput, date, err)
	}
	if _, err := timepb.ClockToProto(clock); err != nil {
		return fmt.Errorf("%w: time %s: %v", ErrInvalidInput, clock, err)
	}
	// The proto rules allow day 31 in every month.
	if !date.IsValid() {
		return fmt.Errorf("%w: %s is not a calendar date", ErrInvalidInput, date)
	}
	return nil
}
