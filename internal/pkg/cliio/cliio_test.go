// Copyright 2026 Peter Edge
//
// All rights reserved.

package cliio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]Format{
		"text":   FormatText,
		"table":  FormatTable,
		"CSV":    FormatCSV,
		" json ": FormatJSON,
	} {
		format, err := ParseFormat(input)
		require.NoError(t, err, input)
		require.Equal(t, want, format, input)
	}
	_, err := ParseFormat("yaml")
	require.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()
	buffer := &bytes.Buffer{}
	require.NoError(
		t,
		WriteTable(
			buffer,
			[]string{"ZONE", "OFFSET"},
			[][]string{
				{"UTC", "+00:00"},
				{"America/New_York", "-05:00"},
			},
		),
	)
	require.Equal(
		t,
		"ZONE              OFFSET\nUTC               +00:00\nAmerica/New_York  -05:00\n",
		buffer.String(),
	)
}

func TestWriteLinesAndCSV(t *testing.T) {
	t.Parallel()
	buffer := &bytes.Buffer{}
	require.NoError(t, WriteLines(buffer, "1704067200", "0"))
	require.Equal(t, "1704067200\n0\n", buffer.String())
	buffer.Reset()
	require.NoError(t, WriteCSVRecords(buffer, [][]string{{"epoch_seconds", "zone"}, {"0", "UTC"}}))
	require.Equal(t, "epoch_seconds,zone\n0,UTC\n", buffer.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	buffer := &bytes.Buffer{}
	type value struct {
		Zone string `json:"zone"`
	}
	require.NoError(t, WriteJSON(buffer, value{Zone: "UTC"}, value{Zone: "Asia/Tokyo"}))
	require.Equal(t, "{\"zone\":\"UTC\"}\n{\"zone\":\"Asia/Tokyo\"}\n", buffer.String())
}
