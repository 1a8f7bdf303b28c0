// Copyright 2026 Peter Edge
//
// All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	// Conversions work without a host zone database.
	_ "time/tzdata"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/config"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/convert"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/picker"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/serve"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/command/zone"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	appcmd.Main(ctx, newRootCommand("epochpick"))
}

// newRootCommand creates the root epochpick command with all sub-commands.
func newRootCommand(name string) *appcmd.Command {
	builder := appext.NewBuilder(name)
	return &appcmd.Command{
		Use:   name,
		Short: "Convert a date, time, and time zone to Unix epoch seconds",
		Long: `Convert a date, time, and time zone to Unix epoch seconds.

Configuration is read from ~/.config/epochpick/config.yaml or config.toml
(or $EPOCHPICK_CONFIG_DIR). Run "epochpick config init" to create one.`,
		BindPersistentFlags: builder.BindRoot,
		SubCommands: []*appcmd.Command{
			convert.NewCommand("convert", builder),
			picker.NewCommand("picker", builder),
			zone.NewCommand("zone", builder),
			serve.NewCommand("serve", builder),
			config.NewCommand("config", builder),
		},
	}
}
