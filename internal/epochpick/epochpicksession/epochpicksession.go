// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpicksession implements an interactive picker session.
//
// A Session holds the date, time, and zone a user is editing, the result of
// the last conversion, and the state of the copy indicator. Sessions are
// independent: each has its own identity and nothing is shared between them.
package epochpicksession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickclipboard"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/bufdev/epochpick/internal/standard/xtime"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// LabelCopy is the copy indicator label at rest.
	LabelCopy = "Copy"
	// LabelCopied is the copy indicator label after a successful copy.
	LabelCopied = "Copied!"
	// CopiedDuration is how long LabelCopied is shown after a successful copy.
	CopiedDuration = 1500 * time.Millisecond
)

var (
	// ErrSessionClosed is returned by operations on a closed Session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrNothingToCopy is returned by Copy before any successful conversion.
	ErrNothingToCopy = errors.New("nothing to copy, run convert first")
)

// Session is a single picker session.
//
// A Session is not safe for concurrent use.
type Session interface {
	// ID returns the unique identifier of the session.
	ID() string
	// Date returns the current date.
	Date() xtime.Date
	// Clock returns the current wall-clock time.
	Clock() xtime.Clock
	// Zone returns the current zone identifier.
	Zone() string
	// SetDate sets the date from a YYYY-MM-DD string.
	SetDate(dateString string) error
	// SetClock sets the wall-clock time from an HH:MM:SS or HH:MM string.
	SetClock(clockString string) error
	// SetZone sets the zone. Unknown zones are rejected immediately.
	SetZone(zone string) error
	// Now sets the date and time to the current time in the current zone.
	Now() error
	// Convert converts the current date, time, and zone and stores the result.
	Convert() (*epochpickconvert.Result, error)
	// LastResult returns the result of the last successful Convert, or nil.
	LastResult() *epochpickconvert.Result
	// Copy publishes the last result to the clipboard.
	//
	// Returns ErrNothingToCopy if Convert has not succeeded yet.
	Copy(ctx context.Context) error
	// CopyLabel returns LabelCopied within CopiedDuration of a successful Copy, and LabelCopy otherwise.
	CopyLabel() string
	// View renders the session state.
	View() string
	// Dispatch runs a single text command and returns the text to display.
	//
	// Errors are meant to be shown to the user.
	Dispatch(ctx context.Context, line string) (string, error)
	// Close closes the session. Further operations return ErrSessionClosed.
	Close()
	// Closed returns true if the session is closed.
	Closed() bool
}

// SessionOption is a functional option for configuring the Session.
type SessionOption func(*session)

// SessionWithNowFunc sets the function used to get the current time.
//
// The default is time.Now.
func SessionWithNowFunc(nowFunc func() time.Time) SessionOption {
	return func(s *session) {
		s.nowFunc = nowFunc
	}
}

// SessionWithLogger sets the logger.
//
// The default discards all output.
func SessionWithLogger(logger zerolog.Logger) SessionOption {
	return func(s *session) {
		s.logger = logger
	}
}

// SessionWithPublisher sets the clipboard publisher.
//
// The default is the system clipboard.
func SessionWithPublisher(publisher epochpickclipboard.Publisher) SessionOption {
	return func(s *session) {
		s.publisher = publisher
	}
}

// SessionWithCatalog sets the zone catalog used by the zones command.
func SessionWithCatalog(catalog epochpickzone.Catalog) SessionOption {
	return func(s *session) {
		s.catalog = catalog
	}
}

// SessionWithDisambiguation sets the DST disambiguation policy.
//
// The default is epochpickconvert.DisambiguationCompatible.
func SessionWithDisambiguation(disambiguation epochpickconvert.Disambiguation) SessionOption {
	return func(s *session) {
		s.disambiguation = disambiguation
	}
}

// NewSession creates a new Session in the given zone, set to the current time.
func NewSession(zone string, options ...SessionOption) (Session, error) {
	s := &session{
		id:             uuid.New().String(),
		nowFunc:        time.Now,
		logger:         zerolog.Nop(),
		disambiguation: epochpickconvert.DisambiguationCompatible,
	}
	for _, option := range options {
		option(s)
	}
	if s.publisher == nil {
		s.publisher = epochpickclipboard.NewPublisher()
	}
	if s.catalog == nil {
		s.catalog = epochpickzone.NewCatalog()
	}
	s.logger = s.logger.With().Str("session", s.id).Logger()
	if err := s.SetZone(zone); err != nil {
		return nil, err
	}
	if err := s.Now(); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("zone", s.zone).Msg("session opened")
	return s, nil
}

// *** PRIVATE ***

type session struct {
	id             string
	nowFunc        func() time.Time
	logger         zerolog.Logger
	publisher      epochpickclipboard.Publisher
	catalog        epochpickzone.Catalog
	disambiguation epochpickconvert.Disambiguation

	date        xtime.Date
	clock       xtime.Clock
	zone        string
	location    *time.Location
	lastResult  *epochpickconvert.Result
	copiedUntil time.Time
	closed      bool
}

func (s *session) ID() string {
	return s.id
}

func (s *session) Date() xtime.Date {
	return s.date
}

func (s *session) Clock() xtime.Clock {
	return s.clock
}

func (s *session) Zone() string {
	return s.zone
}

func (s *session) SetDate(dateString string) error {
	if s.closed {
		return ErrSessionClosed
	}
	date, err := xtime.ParseDate(strings.TrimSpace(dateString))
	if err != nil || !date.IsValid() {
		return fmt.Errorf("%w: date %q must be in YYYY-MM-DD format", epochpickconvert.ErrInvalidInput, dateString)
	}
	s.date = date
	return nil
}

func (s *session) SetClock(clockString string) error {
	if s.closed {
		return ErrSessionClosed
	}
	clock, err := xtime.ParseClock(strings.TrimSpace(clockString))
	if err != nil || !clock.IsValid() {
		return fmt.Errorf("%w: time %q must be in HH:MM:SS format", epochpickconvert.ErrInvalidInput, clockString)
	}
	s.clock = clock
	return nil
}

func (s *session) SetZone(zone string) error {
	if s.closed {
		return ErrSessionClosed
	}
	zone = strings.TrimSpace(zone)
	location, err := epochpickconvert.LoadZone(zone)
	if err != nil {
		return err
	}
	s.zone = zone
	s.location = location
	return nil
}

func (s *session) Now() error {
	if s.closed {
		return ErrSessionClosed
	}
	now := s.nowFunc().In(s.location)
	s.date = xtime.TimeToDate(now)
	s.clock = xtime.TimeToClock(now)
	return nil
}

func (s *session) Convert() (*epochpickconvert.Result, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	result, err := epochpickconvert.Convert(
		s.date,
		s.clock,
		s.zone,
		epochpickconvert.ConvertWithDisambiguation(s.disambiguation),
	)
	if err != nil {
		return nil, err
	}
	s.lastResult = result
	s.logger.Info().
		Str("date", result.Date.String()).
		Str("time", result.Clock.String()).
		Str("zone", result.Zone).
		Int64("epoch_seconds", result.EpochSeconds).
		Msg("converted")
	return result, nil
}

func (s *session) LastResult() *epochpickconvert.Result {
	return s.lastResult
}

func (s *session) Copy(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.lastResult == nil {
		return ErrNothingToCopy
	}
	if err := s.publisher.Publish(ctx, s.lastResult.EpochSeconds); err != nil {
		s.logger.Warn().Err(err).Msg("copy failed")
		return err
	}
	s.copiedUntil = s.nowFunc().Add(CopiedDuration)
	s.logger.Info().Int64("epoch_seconds", s.lastResult.EpochSeconds).Msg("copied")
	return nil
}

func (s *session) CopyLabel() string {
	if s.nowFunc().Before(s.copiedUntil) {
		return LabelCopied
	}
	return LabelCopy
}

func (s *session) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Date:            %s\n", s.date)
	fmt.Fprintf(&sb, "Time (HH:mm:ss): %s\n", s.clock)
	fmt.Fprintf(&sb, "Time zone:       %s\n", s.zone)
	copyLabel := s.CopyLabel()
	if s.lastResult == nil {
		copyLabel += " (disabled)"
	}
	fmt.Fprintf(&sb, "[Convert] [%s]", copyLabel)
	if s.lastResult != nil {
		fmt.Fprintf(&sb, "\n%s", resultText(s.lastResult))
	}
	return sb.String()
}

func (s *session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Debug().Msg("session closed")
}

func (s *session) Closed() bool {
	return s.closed
}

func resultText(result *epochpickconvert.Result) string {
	text := fmt.Sprintf("Unix time: %d", result.EpochSeconds)
	switch {
	case result.Skipped:
		text += fmt.Sprintf(" (%s %s does not exist in %s, shifted to %s)", result.Date, result.Clock, result.Zone, result.Abbreviation)
	case result.Ambiguous:
		text += fmt.Sprintf(" (%s %s occurs twice in %s, using %s)", result.Date, result.Clock, result.Zone, result.Abbreviation)
	}
	return text
}
