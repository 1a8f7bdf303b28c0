// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package picker implements the "picker" command.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/epochpick/cmd/epochpick/internal/epochpickcmd"
	"github.com/bufdev/epochpick/internal/epochpick/epochpicksession"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	// logLevelFlagName is the flag name for the session transcript log level.
	logLevelFlagName = "log-level"
	// prompt is the readline prompt.
	prompt = "epochpick> "
)

// NewCommand returns a new picker command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Interactively pick a date, time, and time zone and copy the Unix time",
		Long: `Interactively pick a date, time, and time zone and copy the Unix time.

The picker starts at the current time in the selected zone. Type "help" for
the list of commands. Zone names complete with tab.`,
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
	// Zone is the initial zone identifier. Empty means the default zone.
	Zone string
	// Disambiguation is the DST disambiguation policy. Empty means the configured policy.
	Disambiguation string
	// LogLevel is the level of the session transcript written to stderr.
	LogLevel string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	epochpickcmd.BindZoneFlag(flagSet, &f.Zone)
	epochpickcmd.BindDisambiguationFlag(flagSet, &f.Disambiguation)
	flagSet.StringVar(&f.LogLevel, logLevelFlagName, "warn", "Session transcript level (debug, info, warn, error, disabled)")
}

func run(ctx context.Context, container appext.Container, flags *flags) (retErr error) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(flags.LogLevel))
	if err != nil {
		return appcmd.NewInvalidArgumentErrorf("--%s: %v", logLevelFlagName, err)
	}
	runtime, err := epochpickcmd.NewRuntime(container)
	if err != nil {
		return err
	}
	disambiguation, err := runtime.Disambiguation(flags.Disambiguation)
	if err != nil {
		return err
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "close",
		AutoComplete:    newCompleter(runtime.Catalog),
		Stdin:           io.NopCloser(container.Stdin()),
		Stdout:          container.Stdout(),
		Stderr:          container.Stderr(),
	})
	if err != nil {
		return fmt.Errorf("creating readline: %w", err)
	}
	defer func() {
		retErr = errors.Join(retErr, rl.Close())
	}()
	// The transcript goes through readline so it does not clobber the prompt.
	logger := zerolog.New(
		zerolog.ConsoleWriter{
			Out:        rl.Stderr(),
			TimeFormat: time.RFC3339,
		},
	).Level(logLevel).With().Timestamp().Logger()
	session, err := epochpicksession.NewSession(
		runtime.Zone(flags.Zone),
		epochpicksession.SessionWithLogger(logger),
		epochpicksession.SessionWithPublisher(runtime.Publisher),
		epochpicksession.SessionWithCatalog(runtime.Catalog),
		epochpicksession.SessionWithDisambiguation(disambiguation),
	)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	defer session.Close()
	if _, err := fmt.Fprintf(rl.Stdout(), "%s\n\nType \"help\" for commands.\n", session.View()); err != nil {
		return err
	}
	for !session.Closed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		output, err := session.Dispatch(ctx, line)
		if err != nil {
			// Errors are shown and the picker stays open.
			if _, err := fmt.Fprintf(rl.Stderr(), "Error: %v\n", err); err != nil {
				return err
			}
			continue
		}
		if output == "" {
			continue
		}
		if _, err := fmt.Fprintln(rl.Stdout(), output); err != nil {
			return err
		}
	}
	return nil
}

func newCompleter(catalog epochpickzone.Catalog) readline.AutoCompleter {
	zones := func(string) []string {
		return catalog.Zones()
	}
	items := make([]readline.PrefixCompleterInterface, 0, len(epochpicksession.Commands))
	for _, command := range epochpicksession.Commands {
		switch command.Name {
		case "zone", "zones":
			items = append(items, readline.PcItem(command.Name, readline.PcItemDynamic(zones)))
		default:
			items = append(items, readline.PcItem(command.Name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
