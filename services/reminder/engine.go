// Package reminder implements the per-minute reminder cycle: it reconciles
// every eligible user's weekly schedule and due tasks against the upcoming
// minute and hands each user at most one combined notification.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"remindly/models"
	"remindly/services/schedule"

	"go.uber.org/zap"
)

// UserSource lists the users a cycle has to consider: verified, with the
// WhatsApp channel not explicitly disabled.
type UserSource interface {
	ListEligible(ctx context.Context) ([]models.User, error)
}

// TaskSource supplies discrete tasks due inside the evaluation window and
// records the imminent-reminder flag after a successful dispatch.
type TaskSource interface {
	FindDueTasks(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]models.Task, error)
	MarkOneMinuteReminded(ctx context.Context, taskID string) error
}

// NotificationSender delivers one message to one user. Retry and backoff for
// the underlying transports are the sender's concern; the engine only sees
// success or failure.
type NotificationSender interface {
	Send(ctx context.Context, user models.User, message string) bool
}

// cycleBudget bounds a whole cycle so a stalled tick cannot pile up behind
// the next one.
const cycleBudget = 55 * time.Second

// Engine drives the reminder cycle. The clock is injectable so cycles can be
// evaluated at a controlled instant in tests.
type Engine struct {
	Users  UserSource
	Tasks  TaskSource
	Sender NotificationSender
	Log    *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
	// DispatchTimeout bounds a single Send call. Defaults to 10s.
	DispatchTimeout time.Duration

	running sync.Mutex
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) dispatchTimeout() time.Duration {
	if e.DispatchTimeout > 0 {
		return e.DispatchTimeout
	}
	return 10 * time.Second
}

// RunCycle evaluates one tick: find everything due at now+1m and dispatch.
// If the previous tick is still running the call is skipped, per the
// no-overlap rule. Users are processed independently; one user failing never
// touches another user's pipeline or the engine's liveness.
func (e *Engine) RunCycle(ctx context.Context) {
	if !e.running.TryLock() {
		e.Log.Warn("reminder cycle still running, skipping tick")
		return
	}
	defer e.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, cycleBudget)
	defer cancel()

	now := e.now()
	target := now.Add(time.Minute)

	users, err := e.Users.ListEligible(ctx)
	if err != nil {
		// Abort this cycle only; the next tick retries independently.
		e.Log.Error("failed to list eligible users, aborting cycle", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u models.User) {
			defer wg.Done()
			e.processUser(ctx, u, now, target)
		}(u)
	}
	wg.Wait()
}

// dueItem is one surviving reminder for a user, keyed by its slot for dedup
// across the two sources.
type dueItem struct {
	text   string
	when   string
	taskID string // empty for schedule-grid items
}

// slotKey identifies a wall-clock slot inside the one-minute window so grid
// entries and tasks landing on the same slot collapse to one item.
func slotKey(day string, at models.TimeOfDay) string {
	return fmt.Sprintf("%s|%02d:%02d", day, at.Hour, at.Minute)
}

func (e *Engine) processUser(ctx context.Context, u models.User, now, target time.Time) {
	log := e.Log.With(zap.String("userID", u.ID))

	sched := schedule.Normalize(u.Schedule)
	due := schedule.FindDue(sched, target.Weekday().String(), target.Hour(), target.Minute())

	seen := make(map[string]bool, len(due))
	var items []dueItem

	// Grid entries seed the set first: the weekly grid is the recurring,
	// canonical source, so it wins over a task claiming the same slot.
	for _, entry := range due {
		key := slotKey(entry.Day, entry.Time)
		if seen[key] {
			continue
		}
		seen[key] = true
		when := entry.Display
		if when == "" {
			when = schedule.FormatClock12(entry.Time)
		}
		items = append(items, dueItem{text: entry.Text, when: when})
	}

	tasks, err := e.Tasks.FindDueTasks(ctx, u.ID, now, target)
	if err != nil {
		// Grid reminders still go out; the task source just misses this cycle.
		log.Warn("failed to query due tasks", zap.Error(err))
	}
	for _, task := range tasks {
		// Stored due dates come back in UTC; slots are server-local.
		dueAt := task.DueDate.Local()
		at := models.TimeOfDay{Hour: dueAt.Hour(), Minute: dueAt.Minute()}
		key := slotKey(dueAt.Weekday().String(), at)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, dueItem{
			text:   task.Text,
			when:   schedule.FormatClock12(at),
			taskID: task.ID,
		})
	}

	if len(items) == 0 {
		return
	}

	message := buildMessage(u.Name, items)

	sendCtx, cancel := context.WithTimeout(ctx, e.dispatchTimeout())
	defer cancel()
	if !e.Sender.Send(sendCtx, u, message) {
		log.Warn("reminder dispatch failed, user misses this cycle", zap.Int("items", len(items)))
		return
	}

	// Only after a successful dispatch: flag task-sourced items so the next
	// cycle does not re-emit them. Grid entries need no flag, they match only
	// at this exact minute.
	for _, item := range items {
		if item.taskID == "" {
			continue
		}
		if err := e.Tasks.MarkOneMinuteReminded(ctx, item.taskID); err != nil {
			log.Error("failed to mark task reminded", zap.String("taskID", item.taskID), zap.Error(err))
		}
	}
	log.Info("reminder dispatched", zap.Int("items", len(items)))
}

// buildMessage renders the single combined reminder listing every due item.
func buildMessage(name string, items []dueItem) string {
	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "Hi %s! ", name)
	}
	if len(items) == 1 {
		fmt.Fprintf(&b, "Coming up at %s: %s", items[0].when, items[0].text)
		return b.String()
	}
	fmt.Fprintf(&b, "You have %d things coming up:", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s (%s)", item.text, item.when)
	}
	return b.String()
}
