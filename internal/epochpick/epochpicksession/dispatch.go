// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpicksession

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickclipboard"
)

// Commands are the commands understood by Dispatch, in help order.
var Commands = []Command{
	{Name: "date", Usage: "date YYYY-MM-DD", Short: "Set the date"},
	{Name: "time", Usage: "time HH:MM:SS", Short: "Set the time"},
	{Name: "zone", Usage: "zone NAME", Short: "Set the time zone"},
	{Name: "zones", Usage: "zones [FILTER]", Short: "List time zones, optionally filtered"},
	{Name: "now", Usage: "now", Short: "Set the date and time to now"},
	{Name: "show", Usage: "show", Short: "Show the current selection"},
	{Name: "convert", Usage: "convert", Short: "Convert to Unix time"},
	{Name: "copy", Usage: "copy", Short: "Copy the Unix time to the clipboard"},
	{Name: "help", Usage: "help", Short: "Show this help"},
	{Name: "close", Usage: "close", Short: "Close the picker"},
}

// Command describes a command understood by Dispatch.
type Command struct {
	// Name is the first word of the command.
	Name string
	// Usage is the command with its arguments.
	Usage string
	// Short is a one-line description.
	Short string
}

func (s *session) Dispatch(ctx context.Context, line string) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	name, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	argument = strings.TrimSpace(argument)
	switch strings.ToLower(name) {
	case "", "show":
		return s.View(), nil
	case "date":
		if argument == "" {
			return "", errors.New("usage: date YYYY-MM-DD")
		}
		if err := s.SetDate(argument); err != nil {
			return "", err
		}
		return fmt.Sprintf("Date: %s", s.date), nil
	case "time":
		if argument == "" {
			return "", errors.New("usage: time HH:MM:SS")
		}
		if err := s.SetClock(argument); err != nil {
			return "", err
		}
		return fmt.Sprintf("Time: %s", s.clock), nil
	case "zone":
		if argument == "" {
			return fmt.Sprintf("Time zone: %s", s.zone), nil
		}
		if err := s.SetZone(argument); err != nil {
			return "", err
		}
		return fmt.Sprintf("Time zone: %s", s.zone), nil
	case "zones":
		zones := s.catalog.Filter(argument)
		if len(zones) == 0 {
			return "", fmt.Errorf("no zones match %q", argument)
		}
		return strings.Join(zones, "\n"), nil
	case "now":
		if err := s.Now(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Date: %s\nTime: %s", s.date, s.clock), nil
	case "convert":
		result, err := s.Convert()
		if err != nil {
			return "", err
		}
		return resultText(result), nil
	case "copy":
		if err := s.Copy(ctx); err != nil {
			if errors.Is(err, epochpickclipboard.ErrClipboardUnavailable) {
				return "", errors.New(epochpickclipboard.ManualCopyMessage(s.lastResult.EpochSeconds))
			}
			return "", err
		}
		return s.CopyLabel(), nil
	case "help":
		return helpText(), nil
	case "close", "exit", "quit":
		s.Close()
		return "Closed.", nil
	default:
		return "", fmt.Errorf("unknown command %q, type \"help\" for the list of commands", name)
	}
}

func helpText() string {
	var sb strings.Builder
	width := 0
	for _, command := range Commands {
		width = max(width, len(command.Usage))
	}
	for i, command := range Commands {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%-*s  %s", width, command.Usage, command.Short)
	}
	return sb.String()
}
