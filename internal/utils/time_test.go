package utils

import "testing"

func TestTripDuration(t *testing.T) {
	cases := []struct {
		departure string
		arrival   string
		want      string
	}{
		{"08:00", "11:30", "3h 30min"},
		{"08:00", "09:00", "1h"},
		{"08:00", "08:45", "45min"},
		{"23:30", "01:00", "1h 30min"},
		{"", "11:30", ""},
		{"8am", "11:30", ""},
	}
	for _, tc := range cases {
		if got := TripDuration(tc.departure, tc.arrival); got != tc.want {
			t.Fatalf("TripDuration(%q, %q) = %q, want %q", tc.departure, tc.arrival, got, tc.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{60, "1:00"},
		{65, "1:05"},
		{9, "0:09"},
		{0, "0:00"},
		{-3, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatCountdown(tc.seconds); got != tc.want {
			t.Fatalf("FormatCountdown(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
