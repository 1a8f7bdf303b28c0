// Copyright 2026 Peter Edge
//
// All rights reserved.

package convert

import (
	"testing"
	_ "time/tzdata"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/stretchr/testify/require"
)

func TestResultToRow(t *testing.T) {
	t.Parallel()
	result, err := epochpickconvert.ConvertStrings("2024-03-10", "02:30:00", "America/New_York")
	require.NoError(t, err)
	require.Equal(
		t,
		[]string{
			"1710055800",
			"2024-03-10",
			"02:30:00",
			"America/New_York",
			"EDT",
			"-04:00",
			"2024-03-10T07:30:00Z",
			"skipped",
		},
		resultToRow(result),
	)
	require.Len(t, resultHeaders(), len(resultToRow(result)))

	result, err = epochpickconvert.ConvertStrings("2024-01-01", "00:00:00", "UTC")
	require.NoError(t, err)
	require.Equal(t, "", resultToRow(result)[7])
}
