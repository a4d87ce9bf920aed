package taskRepo

import (
	"context"
	"time"

	"remindly/models"
)

// TaskRepository defines methods for task data access.
type TaskRepository interface {
	// GetByID retrieves a task by its unique ID.
	GetByID(id string) (*models.Task, error)
	// ListByUser retrieves all tasks belonging to a user, soonest first.
	ListByUser(userID string) ([]models.Task, error)
	// Create inserts a new task record.
	Create(task *models.Task) error
	// Update modifies an existing task record.
	Update(task *models.Task) error
	// Delete removes a task record by its ID.
	Delete(id string) error
	// SetCompleted flips a task's completed flag.
	SetCompleted(id string, completed bool) error
	// FindDueTasks returns a user's incomplete tasks with a due date inside
	// [windowStart, windowEnd] that have not had their imminent reminder yet.
	FindDueTasks(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]models.Task, error)
	// MarkOneMinuteReminded records that the imminent reminder went out.
	MarkOneMinuteReminded(ctx context.Context, taskID string) error
	// MarkReminderSent records that the advance reminder went out.
	MarkReminderSent(ctx context.Context, taskID string) error
}
