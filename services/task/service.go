// Package task implements discrete to-do items with due dates and schedules
// their lead-time reminders on the async queue.
package task

import (
	"context"
	"fmt"
	"time"

	"remindly/config"
	taskRepo "remindly/database/repository/task"
	"remindly/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskService defines task operations.
type TaskService interface {
	Create(ctx context.Context, t *models.Task) error
	Update(ctx context.Context, t *models.Task) error
	GetByID(id string) (*models.Task, error)
	ListByUser(userID string) ([]models.Task, error)
	SetCompleted(id string, completed bool) error
	Delete(id string) error
}

// DefaultTaskService is the production implementation.
type DefaultTaskService struct {
	Repo  taskRepo.TaskRepository
	Queue *asynq.Client
	Log   *zap.Logger
}

func advanceLead() time.Duration {
	return time.Duration(config.AppConfig.AdvanceReminderLeadMin) * time.Minute
}

// Create stores a new task and queues its advance reminder if the lead-time
// instant is still in the future.
func (s *DefaultTaskService) Create(ctx context.Context, t *models.Task) error {
	if t.Text == "" {
		return fmt.Errorf("task text is required")
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("task due date is required")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if err := s.Repo.Create(t); err != nil {
		return err
	}
	s.scheduleAdvanceReminder(ctx, t)
	return nil
}

// Update rewrites a task. A changed due date re-queues the advance reminder;
// stale queue entries are harmless because the worker re-validates the task
// against the store at fire time.
func (s *DefaultTaskService) Update(ctx context.Context, t *models.Task) error {
	existing, err := s.Repo.GetByID(t.ID)
	if err != nil {
		return err
	}

	rescheduled := !existing.DueDate.Equal(t.DueDate)
	if rescheduled {
		// A moved task is due again from scratch.
		t.ReminderSent = false
		t.OneMinuteReminderSent = false
	}
	if err := s.Repo.Update(t); err != nil {
		return err
	}
	if rescheduled && !t.Completed {
		s.scheduleAdvanceReminder(ctx, t)
	}
	return nil
}

func (s *DefaultTaskService) scheduleAdvanceReminder(ctx context.Context, t *models.Task) {
	if s.Queue == nil {
		return
	}
	fireAt := t.DueDate.Add(-advanceLead())
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		TaskID:   t.ID,
		UserID:   t.UserID,
		Title:    "Upcoming task",
		Body:     fmt.Sprintf("%q is due at %s", t.Text, t.DueDate.Format("3:04 PM")),
		FireDate: fireAt.Format(time.RFC3339),
	}
	qt, opts, err := NewAdvanceReminderTask(payload, fireAt)
	if err != nil {
		s.Log.Error("failed to build advance reminder", zap.String("taskID", t.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, qt, opts...); err != nil {
		s.Log.Error("failed to enqueue advance reminder", zap.String("taskID", t.ID), zap.Error(err))
	}
}

// GetByID retrieves a task.
func (s *DefaultTaskService) GetByID(id string) (*models.Task, error) {
	return s.Repo.GetByID(id)
}

// ListByUser retrieves a user's tasks, soonest first.
func (s *DefaultTaskService) ListByUser(userID string) ([]models.Task, error) {
	return s.Repo.ListByUser(userID)
}

// SetCompleted flips the completed flag.
func (s *DefaultTaskService) SetCompleted(id string, completed bool) error {
	return s.Repo.SetCompleted(id, completed)
}

// Delete removes a task.
func (s *DefaultTaskService) Delete(id string) error {
	return s.Repo.Delete(id)
}
