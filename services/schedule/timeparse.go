package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"remindly/models"
)

var (
	ErrEmptyTime   = errors.New("empty time string")
	ErrInvalidTime = errors.New("invalid time string")
	ErrOutOfRange  = errors.New("time out of range")
)

// clockRe accepts the clock forms observed in stored schedules:
// "9", "09", "9:30", "14:05", "9 AM", "9:30pm", "12 p", "7A".
// Group 1: hour, group 2: optional minutes, group 3: optional period.
var clockRe = regexp.MustCompile(`(?i)^([0-9]{1,2})(?::([0-9]{1,2}))?\s*(am|pm|a|p)?$`)

// ParseClock parses a schedule time string into a 24-hour TimeOfDay.
// A period suffix switches to 12-hour interpretation (12 AM -> 0, 12 PM -> 12);
// without one the hour is taken as already 24-hour.
func ParseClock(s string) (models.TimeOfDay, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return models.TimeOfDay{}, ErrEmptyTime
	}

	m := clockRe.FindStringSubmatch(trimmed)
	if m == nil {
		return models.TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	if period := strings.ToLower(m[3]); period != "" {
		switch period[0] {
		case 'a':
			if hour == 12 {
				hour = 0
			}
		case 'p':
			if hour < 12 {
				hour += 12
			}
		}
	}

	if hour > 23 || minute > 59 {
		return models.TimeOfDay{}, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return models.TimeOfDay{Hour: hour, Minute: minute}, nil
}

// FormatClock12 renders a TimeOfDay as "H:MM AM" / "H:MM PM".
func FormatClock12(t models.TimeOfDay) string {
	period := "AM"
	hour := t.Hour
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, period)
}
