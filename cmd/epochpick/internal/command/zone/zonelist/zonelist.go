// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package zonelist implements the "zone list" command.
package zonelist

import (
	"context"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/epochpickcmd"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/bufdev/epochpick/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// filterFlagName is the flag name for filtering zones by substring.
const filterFlagName = "filter"

// NewCommand returns a new zone list command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "List the time zones known to this host",
		Args:  appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	// Filter keeps zones containing the substring, case-insensitively. Empty means all zones.
	Filter string
	// Format is the output format (text, table, csv, json).
	Format string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Filter, filterFlagName, "", "Only list zones containing this text (case-insensitive)")
	flagSet.StringVar(&f.Format, epochpickcmd.FormatFlagName, "text", "Output format (text, table, csv, json)")
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
	zones := runtime.Catalog.Filter(flags.Filter)
	container.Logger().Debug("zones", "source", runtime.Catalog.Source(), "count", len(zones))
	writer := container.Stdout()
	if format == cliio.FormatText {
		return cliio.WriteLines(writer, zones...)
	}
	// Other formats describe each zone as of now.
	now := time.Now()
	descriptions := make([]*epochpickzone.Description, 0, len(zones))
	for _, zone := range zones {
		description, err := epochpickzone.Describe(zone, now)
		if err != nil {
			// The catalog can list zones the zone database cannot load.
			container.Logger().Debug("skipping zone", "zone", zone, "error", err)
			continue
		}
		descriptions = append(descriptions, description)
	}
	switch format {
	case cliio.FormatTable:
		rows := make([][]string, 0, len(descriptions))
		for _, description := range descriptions {
			rows = append(rows, epochpickzone.DescriptionToRow(description))
		}
		return cliio.WriteTable(writer, epochpickzone.DescriptionHeaders(), rows)
	case cliio.FormatCSV:
		records := make([][]string, 0, len(descriptions)+1)
		records = append(records, epochpickzone.DescriptionHeaders())
		for _, description := range descriptions {
			records = append(records, epochpickzone.DescriptionToRow(description))
		}
		return cliio.WriteCSVRecords(writer, records)
	case cliio.FormatJSON:
		return cliio.WriteJSON(writer, descriptions...)
	default:
		return appcmd.NewInvalidArgumentErrorf("unsupported format: %s", format)
	}
}
