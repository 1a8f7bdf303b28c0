// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package zoneshow implements the "zone show" command.
package zoneshow

import (
	"context"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/epochpickcmd"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/bufdev/epochpick/internal/pkg/cliio"
	"github.com/bufdev/epochpick/internal/standard/xtime"
	"github.com/spf13/pflag"
)

// NewCommand returns a new zone show command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " [zone]",
		Short: "Show the current abbreviation and UTC offset of a time zone",
		Long:  "Show the current abbreviation and UTC offset of a time zone. The zone defaults to the configured or host zone.",
		Args:  appcmd.MaximumNArgs(1),
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	// Format is the output format (text, table, csv, json).
	Format string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Format, epochpickcmd.FormatFlagName, "table", "Output format (text, table, csv, json)")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	runtime, err := epochpickcmd.NewRuntime(container)
	if err != nil {
		return err
	}
	var zone string
	if container.NumArgs() > 0 {
		zone = container.Arg(0)
	}
	description, err := epochpickzone.Describe(runtime.Zone(zone), time.Now())
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	writer := container.Stdout()
	switch format {
	case cliio.FormatText:
		return cliio.WriteLines(
			writer,
			description.Zone,
			description.Abbreviation,
			xtime.FormatOffset(description.OffsetSeconds),
		)
	case cliio.FormatTable:
		return cliio.WriteTable(writer, epochpickzone.DescriptionHeaders(), [][]string{epochpickzone.DescriptionToRow(description)})
	case cliio.FormatCSV:
		return cliio.WriteCSVRecords(writer, [][]string{epochpickzone.DescriptionHeaders(), epochpickzone.DescriptionToRow(description)})
	case cliio.FormatJSON:
		return cliio.WriteJSON(writer, description)
	default:
		return appcmd.NewInvalidArgumentErrorf("unsupported format: %s", format)
	}
}
