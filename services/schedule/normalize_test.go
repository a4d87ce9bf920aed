package schedule

import (
	"testing"

	"remindly/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func entryAt(day string, hour, minute int, text string) models.ScheduleEntry {
	return models.ScheduleEntry{
		Day:  day,
		Time: models.TimeOfDay{Hour: hour, Minute: minute},
		Text: text,
	}
}

// stripDisplay drops the retained display strings so schedules built from
// different encodings of the same slots compare equal.
func stripDisplay(s models.CanonicalSchedule) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(s.Entries))
	for i, e := range s.Entries {
		e.Display = ""
		out[i] = e
	}
	return out
}

func TestNormalizeFormatInvariance(t *testing.T) {
	grid := map[string]any{
		"headers": []any{"9:00 AM", "2:30 PM"},
		"rows": []any{
			[]any{"Monday", "Standup", "Review"},
			[]any{"tuesday", "", "Gym"},
		},
	}
	records := map[string]any{
		"rows": []any{
			map[string]any{"day": "Monday", "time": "9:00 AM", "task": "Standup"},
			map[string]any{"day": "Monday", "time": "2:30 PM", "task": "Review"},
			map[string]any{"day": "tuesday", "time": "2:30 PM", "task": "Gym"},
		},
	}
	bare := []any{
		map[string]any{"Day": "MONDAY", "Time": "9:00 AM", "Text": "Standup"},
		map[string]any{"day": "Monday", "time": "2:30 PM", "Task": "Review"},
		map[string]any{"day": " Tuesday ", "time": "2:30PM", "task": " Gym "},
	}

	want := []models.ScheduleEntry{
		entryAt("Monday", 9, 0, "Standup"),
		entryAt("Monday", 14, 30, "Review"),
		entryAt("Tuesday", 14, 30, "Gym"),
	}

	for name, raw := range map[string]any{"grid": grid, "records": records, "bare": bare} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, stripDisplay(Normalize(raw)))
		})
	}
}

func TestNormalizePartialTolerance(t *testing.T) {
	raw := []any{
		map[string]any{"day": "Funday", "time": "9:00", "task": "X"},
		map[string]any{"day": "Monday", "time": "not a time", "task": "X"},
		map[string]any{"day": "Monday", "time": "9:00", "task": "   "},
		map[string]any{"time": "9:00", "task": "no day"},
		map[string]any{"day": "Monday", "task": "no time"},
		map[string]any{"day": "Friday", "time": "5:00 PM", "task": "Ship it"},
	}
	got := Normalize(raw)
	assert.Equal(t, []models.ScheduleEntry{entryAt("Friday", 17, 0, "Ship it")}, stripDisplay(got))
}

func TestNormalizeDedupLastWriterWins(t *testing.T) {
	raw := []any{
		map[string]any{"day": "Monday", "time": "9:00 AM", "task": "Old standup"},
		map[string]any{"day": "Wednesday", "time": "1:00 PM", "task": "Lunch"},
		map[string]any{"day": "Monday", "time": "9:00", "task": "New standup"},
	}
	got := stripDisplay(Normalize(raw))
	assert.Len(t, got, 2)
	assert.Contains(t, got, entryAt("Monday", 9, 0, "New standup"))
	assert.Contains(t, got, entryAt("Wednesday", 13, 0, "Lunch"))
}

func TestNormalizeGridSkipsCellsWithoutHeaders(t *testing.T) {
	raw := map[string]any{
		"headers": []any{"9:00 AM"},
		"rows": []any{
			[]any{"Monday", "Standup", "Orphan cell"},
		},
	}
	got := Normalize(raw)
	assert.Equal(t, []models.ScheduleEntry{entryAt("Monday", 9, 0, "Standup")}, stripDisplay(got))
}

func TestNormalizeUnrecognizedShapes(t *testing.T) {
	cases := map[string]any{
		"nil":            nil,
		"string":         "not a schedule",
		"number":         42,
		"empty object":   map[string]any{},
		"rows not array": map[string]any{"rows": "nope"},
		"empty array":    []any{},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Normalize(raw).Entries)
		})
	}
}

// Mongo decodes stored blobs into primitive.A / primitive.M / primitive.D, so
// normalization has to accept those shapes as well as plain JSON ones.
func TestNormalizeMongoShapes(t *testing.T) {
	raw := primitive.M{
		"rows": primitive.A{
			primitive.D{
				{Key: "day", Value: "Thursday"},
				{Key: "time", Value: "8:15 AM"},
				{Key: "task", Value: "Run"},
			},
			primitive.M{"day": "Friday", "time": "18:00", "task": "Call home"},
		},
	}
	got := stripDisplay(Normalize(raw))
	assert.Equal(t, []models.ScheduleEntry{
		entryAt("Thursday", 8, 15, "Run"),
		entryAt("Friday", 18, 0, "Call home"),
	}, got)
}

func TestNormalizeRetainsDisplayString(t *testing.T) {
	raw := []any{
		map[string]any{"day": "Monday", "time": "9:30 PM", "task": "Wind down"},
	}
	got := Normalize(raw)
	if assert.Len(t, got.Entries, 1) {
		assert.Equal(t, "9:30 PM", got.Entries[0].Display)
		assert.Equal(t, models.TimeOfDay{Hour: 21, Minute: 30}, got.Entries[0].Time)
	}
}
