// models/schedule.go
package models

import "fmt"

// TimeOfDay is a wall-clock slot time in 24-hour form.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the time as 24-hour HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ScheduleEntry is one canonical weekly slot: a day, a time and the task text.
// Display keeps the time string as the user originally wrote it, for messages.
type ScheduleEntry struct {
	Day     string    `json:"day"`
	Time    TimeOfDay `json:"time"`
	Text    string    `json:"text"`
	Display string    `json:"display,omitempty"`
}

// CanonicalSchedule is the normalized, format-independent weekly schedule.
// It is rebuilt from the user's raw blob on every reminder cycle and holds at
// most one entry per (day, time) slot.
type CanonicalSchedule struct {
	Entries []ScheduleEntry `json:"entries"`
}
