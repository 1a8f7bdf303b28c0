// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickcmd provides shared wiring for epochpick commands
// (reading config, resolving the default zone, constructing the zone catalog and clipboard).
package epochpickcmd

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickclipboard"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickconfig"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/spf13/pflag"
)

const (
	// ZoneFlagName is the flag name for the zone identifier.
	ZoneFlagName = "zone"
	// DisambiguationFlagName is the flag name for the DST disambiguation policy.
	DisambiguationFlagName = "disambiguation"
	// FormatFlagName is the flag name for the output format.
	FormatFlagName = "format"
)

// Runtime holds the dependencies shared by epochpick commands.
type Runtime struct {
	// Config is the validated configuration.
	Config *epochpickconfig.Config
	// DefaultZone is the zone used when no zone is given.
	DefaultZone string
	// Catalog is the zone catalog.
	Catalog epochpickzone.Catalog
	// Publisher is the clipboard publisher.
	Publisher epochpickclipboard.Publisher
}

// NewRuntime reads the configuration from the container's config directory and
// constructs the shared dependencies.
func NewRuntime(container appext.Container) (*Runtime, error) {
	config, err := epochpickconfig.ReadConfig(container.ConfigDirPath())
	if err != nil {
		return nil, err
	}
	logger := container.Logger()
	// The configured default zone wins over the host zone.
	defaultZone := config.DefaultZone
	if defaultZone == "" {
		defaultZone = epochpickzone.HostZone(container.Env)
	}
	logger.Debug("runtime", "default_zone", defaultZone, "disambiguation", config.Disambiguation.String())
	return &Runtime{
		Config:      config,
		DefaultZone: defaultZone,
		Catalog: epochpickzone.NewCatalog(
			epochpickzone.CatalogWithFallbackZones(config.Zones...),
			epochpickzone.CatalogWithLogger(logger),
		),
		Publisher: epochpickclipboard.NewPublisher(
			epochpickclipboard.PublisherWithCommand(config.ClipboardCommand...),
			epochpickclipboard.PublisherWithLogger(logger),
		),
	}, nil
}

// Zone returns flagValue, or the default zone if flagValue is empty.
func (r *Runtime) Zone(flagValue string) string {
	if flagValue == "" {
		return r.DefaultZone
	}
	return flagValue
}

// Disambiguation parses flagValue, or returns the configured policy if flagValue is empty.
func (r *Runtime) Disambiguation(flagValue string) (epochpickconvert.Disambiguation, error) {
	if flagValue == "" {
		return r.Config.Disambiguation, nil
	}
	disambiguation, err := epochpickconvert.ParseDisambiguation(flagValue)
	if err != nil {
		return 0, appcmd.NewInvalidArgumentError(err.Error())
	}
	return disambiguation, nil
}

// BindZoneFlag binds the zone flag.
func BindZoneFlag(flagSet *pflag.FlagSet, zone *string) {
	flagSet.StringVar(zone, ZoneFlagName, "", "The time zone, such as America/New_York (default the configured or host zone)")
}

// BindDisambiguationFlag binds the disambiguation flag.
func BindDisambiguationFlag(flagSet *pflag.FlagSet, disambiguation *string) {
	flagSet.StringVar(
		disambiguation,
		DisambiguationFlagName,
		"",
		"How to resolve times skipped or repeated by a DST change (compatible, earlier, later, reject; default the configured policy)",
	)
}
