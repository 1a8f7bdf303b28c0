// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpickzone

import (
	"time"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/standard/xtime"
)

// Description describes a zone at an instant.
type Description struct {
	// Zone is the zone identifier.
	Zone string `json:"zone"`
	// Abbreviation is the zone abbreviation at the instant (e.g., "EST").
	Abbreviation string `json:"abbreviation"`
	// OffsetSeconds is the UTC offset at the instant.
	OffsetSeconds int `json:"offset_seconds"`
	// Date is the local date at the instant.
	Date xtime.Date `json:"date"`
	// Clock is the local wall-clock time at the instant.
	Clock xtime.Clock `json:"time"`
}

// Describe describes zone at the instant at.
//
// Errors wrap epochpickconvert.ErrUnknownZone.
func Describe(zone string, at time.Time) (*Description, error) {
	loc, err := epochpickconvert.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	local := at.In(loc)
	abbreviation, offsetSeconds := local.Zone()
	return &Description{
		Zone:          zone,
		Abbreviation:  abbreviation,
		OffsetSeconds: offsetSeconds,
		Date:          xtime.TimeToDate(local),
		Clock:         xtime.TimeToClock(local),
	}, nil
}

// DescriptionHeaders returns the table headers for a Description.
func DescriptionHeaders() []string {
	return []string{"ZONE", "ABBREVIATION", "OFFSET", "DATE", "TIME"}
}

// DescriptionToRow returns the table row for a Description.
func DescriptionToRow(description *Description) []string {
	return []string{
		description.Zone,
		description.Abbreviation,
		xtime.FormatOffset(description.OffsetSeconds),
		description.Date.String(),
		description.Clock.String(),
	}
}
