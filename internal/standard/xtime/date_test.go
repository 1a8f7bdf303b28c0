// Copyright 2026 Peter Edge
//
// All rights reserved.

package xtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDates(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		date     Date
		loc      *time.Location
		wantStr  string
		wantTime time.Time
	}{
		{
			date:     Date{2014, 7, 29},
			loc:      time.Local,
			wantStr:  "2014-07-29",
			wantTime: time.Date(2014, time.July, 29, 0, 0, 0, 0, time.Local),
		},
		{
			date:     TimeToDate(time.Date(2014, 8, 20, 15, 8, 43, 1, time.Local)),
			loc:      time.UTC,
			wantStr:  "2014-08-20",
			wantTime: time.Date(2014, 8, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			date:     TimeToDate(time.Date(999, time.January, 26, 0, 0, 0, 0, time.Local)),
			loc:      time.UTC,
			wantStr:  "0999-01-26",
			wantTime: time.Date(999, 1, 26, 0, 0, 0, 0, time.UTC),
		},
	} {
		if got := test.date.String(); got != test.wantStr {
			t.Errorf("%#v.String() = %q, want %q", test.date, got, test.wantStr)
		}
		if got := test.date.In(test.loc); !got.Equal(test.wantTime) {
			t.Errorf("%#v.In(%v) = %v, want %v", test.date, test.loc, got, test.wantTime)
		}
	}
}

func TestDateIsValid(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		date Date
		want bool
	}{
		{Date{2014, 7, 29}, true},
		{Date{2000, 2, 29}, true},
		{Date{2024, 2, 29}, true},
		{Date{2023, 2, 29}, false},
		{Date{1900, 2, 29}, false},
		{Date{1, 1, 1}, true},
		{Date{1, 0, 1}, false},
		{Date{1, 1, 0}, false},
		{Date{2016, 1, 32}, false},
		{Date{2016, 4, 31}, false},
		{Date{2016, 13, 1}, false},
		{Date{1, -1, 1}, false},
	} {
		if got := test.date.IsValid(); got != test.want {
			t.Errorf("%#v: got %t, want %t", test.date, got, test.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		str  string
		want Date // if empty, expect an error
	}{
		{"2016-01-02", Date{2016, 1, 2}},
		{"2016-12-31", Date{2016, 12, 31}},
		{"0003-02-04", Date{3, 2, 4}},
		{"999-01-26", Date{}},
		{"", Date{}},
		{"2016-01-02x", Date{}},
		{"2016-13-01", Date{}},
		{"2023-02-30", Date{}},
	} {
		got, err := ParseDate(test.str)
		if got != test.want {
			t.Errorf("ParseDate(%q) = %+v, want %+v", test.str, got, test.want)
		}
		if err != nil && test.want != (Date{}) {
			t.Errorf("Unexpected error %v from ParseDate(%q)", err, test.str)
		}
		if err == nil && test.want == (Date{}) {
			t.Errorf("Expected error from ParseDate(%q)", test.str)
		}
	}
}

func TestDateCompare(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		d1, d2 Date
		want   int
	}{
		{Date{2016, 12, 31}, Date{2017, 1, 1}, -1},
		{Date{2016, 1, 1}, Date{2016, 1, 1}, 0},
		{Date{2016, 12, 31}, Date{2016, 12, 30}, +1},
		{Date{2016, 2, 1}, Date{2016, 1, 31}, +1},
	} {
		if got := test.d1.Compare(test.d2); got != test.want {
			t.Errorf("%v.Compare(%v): got %d, want %d", test.d1, test.d2, got, test.want)
		}
		if got := test.d1.Before(test.d2); got != (test.want < 0) {
			t.Errorf("%v.Before(%v): got %t", test.d1, test.d2, got)
		}
		if got := test.d1.After(test.d2); got != (test.want > 0) {
			t.Errorf("%v.After(%v): got %t", test.d1, test.d2, got)
		}
	}
}

func TestDateIsZero(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		date Date
		want bool
	}{
		{Date{2000, 2, 29}, false},
		{Date{-1, 0, 0}, false},
		{Date{0, 0, 0}, true},
		{Date{}, true},
	} {
		if got := test.date.IsZero(); got != test.want {
			t.Errorf("%#v: got %t, want %t", test.date, got, test.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Date{1987, 4, 15})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `"1987-04-15"` {
		t.Errorf("got %s, want %s", got, `"1987-04-15"`)
	}
	var date Date
	if err := json.Unmarshal([]byte(`"1987-04-15"`), &date); err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(date, Date{1987, 4, 15}) {
		t.Errorf("got %#v", date)
	}
	for _, bad := range []string{"", `""`, `"bad"`, `"1987-04-15x"`,
		`19870415`,     // a JSON number
		`11987-04-15x`, // not a JSON string
	} {
		if json.Unmarshal([]byte(bad), &date) == nil {
			t.Errorf("%q, Date: got nil, want error", bad)
		}
	}
}
