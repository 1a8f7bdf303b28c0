// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickclipboard publishes epoch seconds to the host clipboard.
package epochpickclipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when the clipboard cannot be written.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Publisher writes epoch seconds to the clipboard.
type Publisher interface {
	// Publish writes the decimal form of epochSeconds to the clipboard.
	//
	// Errors wrap ErrClipboardUnavailable. Nothing is retried.
	Publish(ctx context.Context, epochSeconds int64) error
}

// PublisherOption is a functional option for configuring the Publisher.
type PublisherOption func(*publisher)

// PublisherWithCommand writes to the clipboard by running an external command
// with the text on stdin, such as ["wl-copy"] or ["xclip", "-selection", "clipboard"].
//
// An empty command keeps the system clipboard.
func PublisherWithCommand(command ...string) PublisherOption {
	return func(p *publisher) {
		if len(command) > 0 {
			p.command = command
		}
	}
}

// PublisherWithWriteFunc sets the function used to write to the system clipboard.
//
// The default is clipboard.WriteAll.
func PublisherWithWriteFunc(writeFunc func(string) error) PublisherOption {
	return func(p *publisher) {
		p.writeFunc = writeFunc
		p.system = false
	}
}

// PublisherWithLogger sets the logger.
func PublisherWithLogger(logger *slog.Logger) PublisherOption {
	return func(p *publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a new Publisher.
func NewPublisher(options ...PublisherOption) Publisher {
	p := &publisher{
		writeFunc: clipboard.WriteAll,
		system:    true,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// ManualCopyMessage returns the text shown when the clipboard write fails.
func ManualCopyMessage(epochSeconds int64) string {
	return fmt.Sprintf("Clipboard write failed, copy manually:\n%d", epochSeconds)
}

// *** PRIVATE ***

type publisher struct {
	command   []string
	writeFunc func(string) error
	system    bool
	logger    *slog.Logger
}

func (p *publisher) Publish(ctx context.Context, epochSeconds int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	text := strconv.FormatInt(epochSeconds, 10)
	if len(p.command) > 0 {
		return p.publishCommand(ctx, text)
	}
	if p.system && clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found on this system", ErrClipboardUnavailable)
	}
	if err := p.writeFunc(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	p.logger.Debug("clipboard written", "text", text)
	return nil
}

func (p *publisher) publishCommand(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if message := strings.TrimSpace(stderr.String()); message != "" {
			return fmt.Errorf("%w: %s: %w: %s", ErrClipboardUnavailable, p.command[0], err, message)
		}
		return fmt.Errorf("%w: %s: %w", ErrClipboardUnavailable, p.command[0], err)
	}
	p.logger.Debug("clipboard written", "text", text, "command", p.command[0])
	return nil
}
