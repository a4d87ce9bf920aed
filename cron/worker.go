package cron

import (
	"context"
	"encoding/json"
	"time"

	"remindly/config"
	taskRepo "remindly/database/repository/task"
	userRepo "remindly/database/repository/user"
	"remindly/models"
	"remindly/services/notification"
	"remindly/services/task"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewQueueClient returns an asynq client for enqueueing advance reminders.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker that fires advance task reminders
// at their scheduled instant.
func InitReminderWorker(
	users userRepo.UserRepository,
	tasks taskRepo.TaskRepository,
	notifier notification.NotificationService,
	log *zap.Logger,
) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeAdvanceReminder, handleAdvanceReminder(users, tasks, notifier, log))

	go func() {
		log.Info("starting advance reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			log.Error("advance reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				log.Fatal("advance reminder worker exhausted retries")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// handleAdvanceReminder re-validates the task against the store before
// sending: edits, completions and already-sent flags between enqueue time and
// fire time all cancel the reminder.
func handleAdvanceReminder(
	users userRepo.UserRepository,
	tasks taskRepo.TaskRepository,
	notifier notification.NotificationService,
	log *zap.Logger,
) asynq.HandlerFunc {
	return func(ctx context.Context, qt *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(qt.Payload(), &p); err != nil {
			log.Error("invalid advance reminder payload", zap.Error(err))
			return err
		}

		t, err := tasks.GetByID(p.TaskID)
		if err != nil {
			// Task deleted since enqueue; nothing to do.
			log.Debug("advance reminder task gone", zap.String("taskID", p.TaskID))
			return nil
		}
		if t.Completed || t.ReminderSent {
			return nil
		}
		// Due date moved since enqueue; the re-enqueued entry covers it.
		if fireDate, err := time.Parse(time.RFC3339, p.FireDate); err == nil {
			if !t.DueDate.Add(-time.Duration(config.AppConfig.AdvanceReminderLeadMin) * time.Minute).Equal(fireDate) {
				return nil
			}
		}

		u, err := users.GetByID(t.UserID)
		if err != nil {
			log.Warn("advance reminder user gone", zap.String("userID", t.UserID))
			return nil
		}

		if !notifier.Send(ctx, *u, p.Body) {
			log.Warn("advance reminder dispatch failed",
				zap.String("taskID", t.ID), zap.String("userID", u.ID))
			return nil
		}
		if err := tasks.MarkReminderSent(ctx, t.ID); err != nil {
			log.Error("failed to mark advance reminder sent",
				zap.String("taskID", t.ID), zap.Error(err))
		}
		return nil
	}
}
