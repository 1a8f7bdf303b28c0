// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpickconvert

import (
	"fmt"
	"strings"
	"time"

	"github.com/bufdev/epochpick/internal/standard/xtime"
)

// Disambiguation selects the instant for a wall-clock time that occurs twice
// or not at all because of a UTC offset change.
type Disambiguation int

const (
	// DisambiguationCompatible picks the earlier instant for repeated times and
	// shifts skipped times forward by the length of the gap.
	DisambiguationCompatible Disambiguation = iota + 1
	// DisambiguationEarlier picks the earlier of the candidate instants.
	DisambiguationEarlier
	// DisambiguationLater picks the later of the candidate instants.
	DisambiguationLater
	// DisambiguationReject fails with ErrAmbiguousTime or ErrSkippedTime.
	DisambiguationReject
)

var (
	disambiguationToString = map[Disambiguation]string{
		DisambiguationCompatible: "compatible",
		DisambiguationEarlier:    "earlier",
		DisambiguationLater:      "later",
		DisambiguationReject:     "reject",
	}
	stringToDisambiguation = map[string]Disambiguation{
		"compatible": DisambiguationCompatible,
		"earlier":    DisambiguationEarlier,
		"later":      DisambiguationLater,
		"reject":     DisambiguationReject,
	}
)

// String implements fmt.Stringer.
func (d Disambiguation) String() string {
	if s, ok := disambiguationToString[d]; ok {
		return s
	}
	return fmt.Sprintf("%d", int(d))
}

// ParseDisambiguation parses a Disambiguation from its string form.
//
// The empty string parses to DisambiguationCompatible.
func ParseDisambiguation(s string) (Disambiguation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DisambiguationCompatible, nil
	}
	if d, ok := stringToDisambiguation[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown disambiguation %q, must be one of: compatible, earlier, later, reject", s)
}

// *** PRIVATE ***

type resolution int

const (
	resolutionExact resolution = iota
	resolutionAmbiguous
	resolutionSkipped
)

// transitionWindow bounds the search for offsets in force around a wall-clock
// time. No zone changes its offset twice within a day.
const transitionWindow = 24 * time.Hour

// resolve finds the instant at which the clock reads clock on date in loc.
//
// The fields are first read as a UTC instant. Subtracting each offset in
// force within a day on either side gives the candidate instants, and a
// candidate is valid if it renders back to the same fields in loc.
func resolve(date xtime.Date, clock xtime.Clock, loc *time.Location, disambiguation Disambiguation) (time.Time, resolution, error) {
	wall := clock.On(date, time.UTC)
	offsetBefore := offsetAt(wall.Add(-transitionWindow), loc)
	offsetAfter := offsetAt(wall.Add(transitionWindow), loc)
	var candidates []time.Time
	for _, offset := range []time.Duration{offsetBefore, offsetAfter} {
		candidate := wall.Add(-offset)
		if !rendersAs(candidate, loc, wall) {
			continue
		}
		if len(candidates) > 0 && candidates[0].Equal(candidate) {
			continue
		}
		candidates = append(candidates, candidate)
	}
	switch len(candidates) {
	case 1:
		return candidates[0], resolutionExact, nil
	case 2:
		earlier, later := candidates[0], candidates[1]
		if later.Before(earlier) {
			earlier, later = later, earlier
		}
		switch disambiguation {
		case DisambiguationLater:
			return later, resolutionAmbiguous, nil
		case DisambiguationReject:
			return time.Time{}, resolutionAmbiguous, ErrAmbiguousTime
		default:
			return earlier, resolutionAmbiguous, nil
		}
	}
	if offsetBefore == offsetAfter {
		// Both neighbours agree but neither renders back, which only happens
		// for offset changes that revert within the window.
		return clock.On(date, loc), resolutionExact, nil
	}
	switch disambiguation {
	case DisambiguationEarlier:
		return wall.Add(-offsetAfter), resolutionSkipped, nil
	case DisambiguationReject:
		return time.Time{}, resolutionSkipped, ErrSkippedTime
	default:
		return wall.Add(-offsetBefore), resolutionSkipped, nil
	}
}

func offsetAt(t time.Time, loc *time.Location) time.Duration {
	_, offsetSeconds := t.In(loc).Zone()
	return time.Duration(offsetSeconds) * time.Second
}

// rendersAs reports whether instant reads as the fields of wall in loc.
func rendersAs(instant time.Time, loc *time.Location, wall time.Time) bool {
	local := instant.In(loc)
	return xtime.TimeToDate(local) == xtime.TimeToDate(wall) &&
		xtime.TimeToClock(local) == xtime.TimeToClock(wall)
}
