package task

import (
	"encoding/json"
	"time"

	"remindly/models"

	"github.com/hibiken/asynq"
)

// TypeAdvanceReminder is the queue type for lead-time task reminders.
const TypeAdvanceReminder = "reminder:advance"

// NewAdvanceReminderTask builds the queued task that fires the advance
// reminder at the given instant.
func NewAdvanceReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	t := asynq.NewTask(TypeAdvanceReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return t, opts, nil
}
