// models/task.go
package models

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a discrete to-do item with a concrete due date, as opposed to the
// recurring weekly schedule grid.
type Task struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Text      string    `bson:"text" json:"text"`
	DueDate   time.Time `bson:"due_date" json:"dueDate"`
	Priority  string    `bson:"priority,omitempty" json:"priority,omitempty"`
	Completed bool      `bson:"completed" json:"completed"`

	// ReminderSent marks the advance (lead-time) reminder; it is flipped by the
	// queued reminder worker. OneMinuteReminderSent marks the imminent reminder
	// and is flipped by the reminder engine after a successful dispatch.
	ReminderSent          bool `bson:"reminder_sent" json:"reminderSent"`
	OneMinuteReminderSent bool `bson:"one_minute_reminder_sent" json:"oneMinuteReminderSent"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
