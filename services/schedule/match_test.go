package schedule

import (
	"testing"

	"remindly/models"

	"github.com/stretchr/testify/assert"
)

func TestFindDueGridEndToEnd(t *testing.T) {
	raw := map[string]any{
		"headers": []any{"9:00 AM", "10:00 AM"},
		"rows": []any{
			[]any{"Monday", "Standup", "Review"},
		},
	}
	sched := Normalize(raw)

	due := FindDue(sched, "Monday", 9, 0)
	if assert.Len(t, due, 1) {
		assert.Equal(t, "Standup", due[0].Text)
		assert.Equal(t, models.TimeOfDay{Hour: 9, Minute: 0}, due[0].Time)
	}

	due = FindDue(sched, "Monday", 10, 0)
	if assert.Len(t, due, 1) {
		assert.Equal(t, "Review", due[0].Text)
	}

	assert.Empty(t, FindDue(sched, "Monday", 11, 0))
	assert.Empty(t, FindDue(sched, "Tuesday", 9, 0))
}

func TestFindDueDayHandling(t *testing.T) {
	sched := Normalize([]any{
		map[string]any{"day": "Sunday", "time": "7:00 AM", "task": "Long run"},
	})

	t.Run("case-insensitive target day", func(t *testing.T) {
		assert.Len(t, FindDue(sched, "sunday", 7, 0), 1)
	})
	t.Run("unknown target day", func(t *testing.T) {
		assert.Empty(t, FindDue(sched, "Someday", 7, 0))
	})
}

func TestFindDueAfterDedupReturnsSingleEntry(t *testing.T) {
	sched := Normalize([]any{
		map[string]any{"day": "Monday", "time": "9:00 AM", "task": "First"},
		map[string]any{"day": "Monday", "time": "09:00", "task": "Second"},
	})
	due := FindDue(sched, "Monday", 9, 0)
	if assert.Len(t, due, 1) {
		assert.Equal(t, "Second", due[0].Text)
	}
}
