package schedule

import (
	"testing"

	"remindly/models"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"9:00 AM", 9, 0},
		{"09:30 am", 9, 30},
		{"9:30pm", 21, 30},
		{"12 AM", 0, 0},
		{"12 PM", 12, 0},
		{"12:45 pm", 12, 45},
		{"7A", 7, 0},
		{"7 p", 19, 0},
		{"  10:15 PM  ", 22, 15},
		{"14:05", 14, 5},
		{"0:00", 0, 0},
		{"23:59", 23, 59},
		{"9", 9, 0},
		{"18", 18, 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, models.TimeOfDay{Hour: tc.hour, Minute: tc.minute}, got)
		})
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"24:00",
		"12:60",
		"99",
		"noon",
		"9:3x PM",
		"1:00:00",
	}
	for _, in := range cases {
		t.Run("\""+in+"\"", func(t *testing.T) {
			_, err := ParseClock(in)
			assert.Error(t, err)
		})
	}
}

// Formatting to 12-hour and parsing back must return the original time for
// every minute of the day; a bare 24-hour string must parse as-is.
func TestClockRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			want := models.TimeOfDay{Hour: hour, Minute: minute}

			got, err := ParseClock(FormatClock12(want))
			assert.NoError(t, err)
			assert.Equal(t, want, got)

			got, err = ParseClock(want.String())
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}
