// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpicksession

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickclipboard"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/bufdev/epochpick/internal/standard/xtime"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Parallel()
	clock := newTestClock(time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC))
	session, _ := newTestSession(t, "America/New_York", clock)
	_, err := uuid.Parse(session.ID())
	require.NoError(t, err)
	require.Equal(t, xtime.Date{Year: 2024, Month: time.January, Day: 1}, session.Date())
	require.Equal(t, xtime.Clock{Hour: 7}, session.Clock())
	require.Equal(t, "America/New_York", session.Zone())
	require.Nil(t, session.LastResult())
	require.Equal(t, LabelCopy, session.CopyLabel())

	other, _ := newTestSession(t, "America/New_York", clock)
	require.NotEqual(t, session.ID(), other.ID())

	_, err = NewSession("Not/AZone")
	require.ErrorIs(t, err, epochpickconvert.ErrUnknownZone)
}

func TestSessionConvertAndCopy(t *testing.T) {
	t.Parallel()
	clock := newTestClock(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	session, written := newTestSession(t, "UTC", clock)
	ctx := context.Background()

	require.ErrorIs(t, session.Copy(ctx), ErrNothingToCopy)
	require.NoError(t, session.SetDate("2024-01-01"))
	require.NoError(t, session.SetClock("00:00:00"))
	result, err := session.Convert()
	require.NoError(t, err)
	require.Equal(t, int64(1704067200), result.EpochSeconds)
	require.Equal(t, result, session.LastResult())

	require.NoError(t, session.Copy(ctx))
	require.Equal(t, []string{"1704067200"}, *written)
	require.Equal(t, LabelCopied, session.CopyLabel())
	clock.advance(CopiedDuration - time.Millisecond)
	require.Equal(t, LabelCopied, session.CopyLabel())
	clock.advance(time.Millisecond)
	require.Equal(t, LabelCopy, session.CopyLabel())
}

func TestSessionSetErrors(t *testing.T) {
	t.Parallel()
	session, _ := newTestSession(t, "UTC", newTestClock(time.Unix(0, 0)))
	require.ErrorIs(t, session.SetDate("2024-13-01"), epochpickconvert.ErrInvalidInput)
	require.ErrorIs(t, session.SetDate("2023-02-29"), epochpickconvert.ErrInvalidInput)
	require.ErrorIs(t, session.SetClock("24:00:00"), epochpickconvert.ErrInvalidInput)
	require.ErrorIs(t, session.SetZone("Not/AZone"), epochpickconvert.ErrUnknownZone)
	// Failed sets leave the selection unchanged.
	require.Equal(t, xtime.Date{Year: 1970, Month: time.January, Day: 1}, session.Date())
	require.Equal(t, "UTC", session.Zone())
}

func TestSessionClosed(t *testing.T) {
	t.Parallel()
	session, _ := newTestSession(t, "UTC", newTestClock(time.Unix(0, 0)))
	output, err := session.Dispatch(context.Background(), "close")
	require.NoError(t, err)
	require.Equal(t, "Closed.", output)
	require.True(t, session.Closed())
	_, err = session.Dispatch(context.Background(), "show")
	require.ErrorIs(t, err, ErrSessionClosed)
	require.ErrorIs(t, session.SetZone("UTC"), ErrSessionClosed)
	_, err = session.Convert()
	require.ErrorIs(t, err, ErrSessionClosed)
	require.ErrorIs(t, session.Copy(context.Background()), ErrSessionClosed)
	session.Close()
}

func TestDispatch(t *testing.T) {
	t.Parallel()
	clock := newTestClock(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	session, written := newTestSession(t, "UTC", clock)
	ctx := context.Background()
	for _, test := range []struct {
		line string
		want string
	}{
		{line: "zone America/New_York", want: "Time zone: America/New_York"},
		{line: "date 2024-03-10", want: "Date: 2024-03-10"},
		{line: "time 02:30", want: "Time: 02:30:00"},
		{
			line: "convert",
			want: "Unix time: 1710055800 (2024-03-10 02:30:00 does not exist in America/New_York, shifted to EDT)",
		},
		{line: "copy", want: LabelCopied},
		{line: "date 2024-11-03", want: "Date: 2024-11-03"},
		{line: "TIME 01:30:00", want: "Time: 01:30:00"},
		{
			line: "convert",
			want: "Unix time: 1730611800 (2024-11-03 01:30:00 occurs twice in America/New_York, using EDT)",
		},
		{line: "  zone   UTC  ", want: "Time zone: UTC"},
		{line: "zone", want: "Time zone: UTC"},
		{line: "date 1970-01-01", want: "Date: 1970-01-01"},
		{line: "time 00:00:00", want: "Time: 00:00:00"},
		{line: "convert", want: "Unix time: 0"},
		{line: "now", want: "Date: 2024-01-01\nTime: 00:00:00"},
		{line: "zones york", want: "America/New_York"},
	} {
		output, err := session.Dispatch(ctx, test.line)
		require.NoError(t, err, test.line)
		require.Equal(t, test.want, output, test.line)
	}
	require.Equal(t, []string{"1710055800"}, *written)
	view, err := session.Dispatch(ctx, "")
	require.NoError(t, err)
	require.Equal(
		t,
		strings.Join(
			[]string{
				"Date:            2024-01-01",
				"Time (HH:mm:ss): 00:00:00",
				"Time zone:       UTC",
				"[Convert] [Copied!]",
				"Unix time: 0",
			},
			"\n",
		),
		view,
	)
	help, err := session.Dispatch(ctx, "help")
	require.NoError(t, err)
	require.Len(t, strings.Split(help, "\n"), len(Commands))
	require.Contains(t, help, "date YYYY-MM-DD")
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()
	session, _ := newTestSession(t, "UTC", newTestClock(time.Unix(0, 0)))
	ctx := context.Background()
	for _, line := range []string{
		"date",
		"date tomorrow",
		"time",
		"time 7pm",
		"zone Mars/Olympus",
		"zones auckland",
		"copy",
		"launch",
	} {
		_, err := session.Dispatch(ctx, line)
		require.Error(t, err, line)
	}
	require.False(t, session.Closed())
	view, err := session.Dispatch(ctx, "show")
	require.NoError(t, err)
	require.Contains(t, view, "[Convert] [Copy (disabled)]")
}

func TestDispatchCopyFailure(t *testing.T) {
	t.Parallel()
	session, err := NewSession(
		"UTC",
		SessionWithNowFunc(newTestClock(time.Unix(0, 0)).now),
		SessionWithCatalog(epochpickzone.NewCatalog(epochpickzone.CatalogWithRootPaths())),
		SessionWithPublisher(
			epochpickclipboard.NewPublisher(
				epochpickclipboard.PublisherWithWriteFunc(func(string) error {
					return errors.New("no display")
				}),
			),
		),
	)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = session.Dispatch(ctx, "convert")
	require.NoError(t, err)
	_, err = session.Dispatch(ctx, "copy")
	require.EqualError(t, err, epochpickclipboard.ManualCopyMessage(0))
	require.Equal(t, LabelCopy, session.CopyLabel())
}

func TestSessionLogger(t *testing.T) {
	t.Parallel()
	buffer := &bytes.Buffer{}
	session, err := NewSession(
		"UTC",
		SessionWithNowFunc(newTestClock(time.Unix(0, 0)).now),
		SessionWithLogger(zerolog.New(buffer)),
		SessionWithDisambiguation(epochpickconvert.DisambiguationReject),
	)
	require.NoError(t, err)
	_, err = session.Convert()
	require.NoError(t, err)
	require.Contains(t, buffer.String(), `"session":"`+session.ID()+`"`)
	require.Contains(t, buffer.String(), `"epoch_seconds":0`)

	require.NoError(t, session.SetZone("America/New_York"))
	require.NoError(t, session.SetDate("2024-11-03"))
	require.NoError(t, session.SetClock("01:30:00"))
	_, err = session.Convert()
	require.ErrorIs(t, err, epochpickconvert.ErrAmbiguousTime)
}

type testClock struct {
	current time.Time
}

func newTestClock(current time.Time) *testClock {
	return &testClock{current: current}
}

func (c *testClock) now() time.Time {
	return c.current
}

func (c *testClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestSession(t *testing.T, zone string, clock *testClock) (Session, *[]string) {
	t.Helper()
	written := &[]string{}
	session, err := NewSession(
		zone,
		SessionWithNowFunc(clock.now),
		SessionWithCatalog(epochpickzone.NewCatalog(epochpickzone.CatalogWithRootPaths())),
		SessionWithPublisher(
			epochpickclipboard.NewPublisher(
				epochpickclipboard.PublisherWithWriteFunc(func(text string) error {
					*written = append(*written, text)
					return nil
				}),
			),
		),
	)
	require.NoError(t, err)
	return session, written
}
