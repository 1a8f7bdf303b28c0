// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package serve implements the "serve" command.
package serve

import (
	"context"
	"fmt"
	"net"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/epochpickcmd"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickhttp"
	"github.com/spf13/pflag"
)

// addressFlagName is the flag name for the listen address.
const addressFlagName = "address"

// NewCommand returns a new serve command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Serve conversions over HTTP",
		Long: `Serve conversions over HTTP.

Routes:

  GET /healthz
  GET /v1/zones?filter=
  GET /v1/convert?date=YYYY-MM-DD&time=HH:MM:SS&zone=&disambiguation=

Requests without a zone use the configured or host zone.`,
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
	// Address is the listen address.
	Address string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Address, addressFlagName, "127.0.0.1:8080", "The address to listen on")
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	if flags.Address == "" {
		return appcmd.NewInvalidArgumentErrorf("--%s is required", addressFlagName)
	}
	runtime, err := epochpickcmd.NewRuntime(container)
	if err != nil {
		return err
	}
	logger := container.Logger()
	handler := epochpickhttp.NewHandler(
		runtime.DefaultZone,
		runtime.Catalog,
		epochpickhttp.HandlerWithLogger(logger),
		epochpickhttp.HandlerWithDisambiguation(runtime.Config.Disambiguation),
	)
	var listenConfig net.ListenConfig
	listener, err := listenConfig.Listen(ctx, "tcp", flags.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", flags.Address, err)
	}
	logger.Info("serving", "address", listener.Addr().String(), "default_zone", runtime.DefaultZone)
	// Serve closes the listener.
	return epochpickhttp.Serve(ctx, listener, handler)
}
