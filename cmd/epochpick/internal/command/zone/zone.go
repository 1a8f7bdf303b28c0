// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package zone implements the "zone" command group.
package zone

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/zone/zonelist"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/zone/zoneshow"
)

// NewCommand returns a new zone command group with list and show sub-commands.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Inspect time zones",
		SubCommands: []*appcmd.Command{
			zonelist.NewCommand("list", builder),
			zoneshow.NewCommand("show", builder),
		},
	}
}
