// models/notification.go
package models

// ReminderPayload is the queued payload for an advance task reminder,
// processed by the async reminder worker at its fire time.
type ReminderPayload struct {
	TaskID   string `json:"taskId"`
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	FireDate string `json:"fireDate"`
}
