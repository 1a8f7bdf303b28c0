// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package convert implements the "convert" command.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/epochpickcmd"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickclipboard"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/pkg/cliio"
	"github.com/bufdev/epochpick/internal/standard/xtime"
	"github.com/spf13/pflag"
)

const (
	// dateFlagName is the flag name for the calendar date.
	dateFlagName = "date"
	// timeFlagName is the flag name for the wall-clock time.
	timeFlagName = "time"
	// copyFlagName is the flag name for copying the result to the clipboard.
	copyFlagName = "copy"
)

// NewCommand returns a new convert command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Convert a date, time, and time zone to Unix epoch seconds",
		Long: `Convert a date, time, and time zone to Unix epoch seconds.

The date defaults to today and the time to now, both in the selected zone.
The zone defaults to default_zone from the configuration file, then the host zone.

Times that are skipped or repeated by a daylight saving change are resolved
with --disambiguation. The default, compatible, moves skipped times forward
by the length of the gap and picks the earlier of two repeated times.`,
		Args: appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	// Date is the calendar date in YYYY-MM-DD format. Empty means today.
	Date string
	// Time is the wall-clock time in HH:MM:SS format. Empty means now.
	Time string
	// Zone is the zone identifier. Empty means the default zone.
	Zone string
	// Disambiguation is the DST disambiguation policy. Empty means the configured policy.
	Disambiguation string
	// Format is the output format (text, table, csv, json).
	Format string
	// Copy copies the result to the clipboard.
	Copy bool
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Date, dateFlagName, "", "The date in YYYY-MM-DD format (default today)")
	flagSet.StringVar(&f.Time, timeFlagName, "", "The time in HH:MM:SS format (default now)")
	epochpickcmd.BindZoneFlag(flagSet, &f.Zone)
	epochpickcmd.BindDisambiguationFlag(flagSet, &f.Disambiguation)
	flagSet.StringVar(&f.Format, epochpickcmd.FormatFlagName, "text", "Output format (text, table, csv, json)")
	flagSet.BoolVar(&f.Copy, copyFlagName, false, "Copy the result to the clipboard")
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	runtime, err := epochpickcmd.NewRuntime(container)
	if err != nil {
		return err
	}
	disambiguation, err := runtime.Disambiguation(flags.Disambiguation)
	if err != nil {
		return err
	}
	zone := runtime.Zone(flags.Zone)
	// Fill in today and now in the selected zone.
	if flags.Date == "" || flags.Time == "" {
		loc, err := epochpickconvert.LoadZone(zone)
		if err != nil {
			return appcmd.NewInvalidArgumentError(err.Error())
		}
		now := time.Now().In(loc)
		if flags.Date == "" {
			flags.Date = xtime.TimeToDate(now).String()
		}
		if flags.Time == "" {
			flags.Time = xtime.TimeToClock(now).String()
		}
	}
	result, err := epochpickconvert.ConvertStrings(
		flags.Date,
		flags.Time,
		zone,
		epochpickconvert.ConvertWithDisambiguation(disambiguation),
	)
	if err != nil {
		if errors.Is(err, epochpickconvert.ErrInvalidInput) || errors.Is(err, epochpickconvert.ErrUnknownZone) {
			return appcmd.NewInvalidArgumentError(err.Error())
		}
		return err
	}
	container.Logger().Debug(
		"converted",
		"date", result.Date.String(),
		"time", result.Clock.String(),
		"zone", result.Zone,
		"epoch_seconds", result.EpochSeconds,
		"skipped", result.Skipped,
		"ambiguous", result.Ambiguous,
	)
	if err := writeResult(container, format, result); err != nil {
		return err
	}
	if !flags.Copy {
		return nil
	}
	// A failed copy is reported but the conversion itself succeeded.
	if err := runtime.Publisher.Publish(ctx, result.EpochSeconds); err != nil {
		if !errors.Is(err, epochpickclipboard.ErrClipboardUnavailable) {
			return err
		}
		container.Logger().Debug("copy failed", "error", err)
		_, err := fmt.Fprintln(container.Stderr(), epochpickclipboard.ManualCopyMessage(result.EpochSeconds))
		return err
	}
	_, err = fmt.Fprintln(container.Stderr(), "Copied!")
	return err
}

func writeResult(container appext.Container, format cliio.Format, result *epochpickconvert.Result) error {
	writer := container.Stdout()
	switch format {
	case cliio.FormatText:
		return cliio.WriteLines(writer, result.String())
	case cliio.FormatTable:
		return cliio.WriteTable(writer, resultHeaders(), [][]string{resultToRow(result)})
	case cliio.FormatCSV:
		return cliio.WriteCSVRecords(writer, [][]string{resultHeaders(), resultToRow(result)})
	case cliio.FormatJSON:
		return cliio.WriteJSON(writer, result)
	default:
		return appcmd.NewInvalidArgumentErrorf("unsupported format: %s", format)
	}
}

func resultHeaders() []string {
	return []string{"EPOCH_SECONDS", "DATE", "TIME", "ZONE", "ABBREVIATION", "OFFSET", "UTC", "NOTE"}
}

func resultToRow(result *epochpickconvert.Result) []string {
	var note string
	switch {
	case result.Skipped:
		note = "skipped"
	case result.Ambiguous:
		note = "ambiguous"
	}
	return []string{
		strconv.FormatInt(result.EpochSeconds, 10),
		result.Date.String(),
		result.Clock.String(),
		result.Zone,
		result.Abbreviation,
		xtime.FormatOffset(result.OffsetSeconds),
		result.UTC.Format(time.RFC3339),
		note,
	}
}
