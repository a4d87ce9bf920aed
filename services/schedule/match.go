package schedule

import "remindly/models"

// FindDue returns the entries scheduled exactly at (day, hour, minute).
// Matching is exact: the caller decides the lookahead window, the matcher only
// answers "what is at this slot". After dedup a slot holds at most one entry.
func FindDue(s models.CanonicalSchedule, day string, hour, minute int) []models.ScheduleEntry {
	target, ok := CanonicalDay(day)
	if !ok {
		return nil
	}
	var due []models.ScheduleEntry
	for _, e := range s.Entries {
		if e.Day == target && e.Time.Hour == hour && e.Time.Minute == minute {
			due = append(due, e)
		}
	}
	return due
}
