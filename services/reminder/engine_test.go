package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"remindly/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Mon 2025-06-02 08:59 local; the evaluation target is 09:00 Monday.
var tickAt = time.Date(2025, 6, 2, 8, 59, 0, 0, time.Local)

type fakeUserSource struct {
	users []models.User
	err   error
}

func (f *fakeUserSource) ListEligible(ctx context.Context) ([]models.User, error) {
	return f.users, f.err
}

type fakeTaskSource struct {
	mu     sync.Mutex
	tasks  map[string][]models.Task
	err    error
	marked []string
}

func (f *fakeTaskSource) FindDueTasks(ctx context.Context, userID string, start, end time.Time) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks[userID], nil
}

func (f *fakeTaskSource) MarkOneMinuteReminded(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, taskID)
	return nil
}

type fakeSender struct {
	mu       sync.Mutex
	failFor  map[string]bool
	messages map[string]string
}

func (f *fakeSender) Send(ctx context.Context, user models.User, message string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[user.ID] {
		return false
	}
	if f.messages == nil {
		f.messages = map[string]string{}
	}
	f.messages[user.ID] = message
	return true
}

func newEngine(users *fakeUserSource, tasks *fakeTaskSource, sender *fakeSender) *Engine {
	return &Engine{
		Users:  users,
		Tasks:  tasks,
		Sender: sender,
		Log:    zap.NewNop(),
		Now:    func() time.Time { return tickAt },
	}
}

func userWithSchedule(id string, raw any) models.User {
	return models.User{ID: id, Name: "Asha", IsVerified: true, Schedule: raw}
}

func mondaySchedule(task string) any {
	return []any{
		map[string]any{"day": "Monday", "time": "9:00 AM", "task": task},
	}
}

func TestRunCycleDispatchesDueGridEntry(t *testing.T) {
	users := &fakeUserSource{users: []models.User{userWithSchedule("u1", mondaySchedule("Standup"))}}
	tasks := &fakeTaskSource{}
	sender := &fakeSender{}

	newEngine(users, tasks, sender).RunCycle(context.Background())

	assert.Contains(t, sender.messages["u1"], "Standup")
	assert.Contains(t, sender.messages["u1"], "9:00 AM")
	assert.Empty(t, tasks.marked)
}

func TestRunCycleNothingDue(t *testing.T) {
	users := &fakeUserSource{users: []models.User{
		userWithSchedule("u1", []any{
			map[string]any{"day": "Monday", "time": "11:00 AM", "task": "Later"},
			map[string]any{"day": "Tuesday", "time": "9:00 AM", "task": "Wrong day"},
		}),
		userWithSchedule("u2", "completely malformed"),
		userWithSchedule("u3", nil),
	}}
	sender := &fakeSender{}

	newEngine(users, &fakeTaskSource{}, sender).RunCycle(context.Background())

	assert.Empty(t, sender.messages)
}

func TestRunCycleMergesTasksGridWins(t *testing.T) {
	users := &fakeUserSource{users: []models.User{userWithSchedule("u1", mondaySchedule("Standup"))}}
	tasks := &fakeTaskSource{tasks: map[string][]models.Task{
		"u1": {
			// Same slot as the grid entry: the grid item wins.
			{ID: "t-dup", UserID: "u1", Text: "Duplicate standup",
				DueDate: time.Date(2025, 6, 2, 9, 0, 30, 0, time.Local)},
			{ID: "t-call", UserID: "u1", Text: "Call the bank",
				DueDate: time.Date(2025, 6, 2, 8, 59, 30, 0, time.Local)},
		},
	}}
	sender := &fakeSender{}

	newEngine(users, tasks, sender).RunCycle(context.Background())

	msg := sender.messages["u1"]
	assert.Contains(t, msg, "Standup")
	assert.Contains(t, msg, "Call the bank")
	assert.NotContains(t, msg, "Duplicate standup")
	// Only the surviving task item is flagged; the grid entry needs no flag
	// and the deduped task was never emitted.
	assert.Equal(t, []string{"t-call"}, tasks.marked)
}

func TestRunCycleTaskOnlyUser(t *testing.T) {
	dueAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	users := &fakeUserSource{users: []models.User{{ID: "u1", IsVerified: true}}}
	tasks := &fakeTaskSource{tasks: map[string][]models.Task{
		"u1": {{ID: "t1", UserID: "u1", Text: "Pay rent", DueDate: dueAt}},
	}}
	sender := &fakeSender{}

	newEngine(users, tasks, sender).RunCycle(context.Background())

	assert.Contains(t, sender.messages["u1"], "Pay rent")
	assert.Equal(t, []string{"t1"}, tasks.marked)
}

func TestRunCycleDispatchFailureSkipsMarking(t *testing.T) {
	dueAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	users := &fakeUserSource{users: []models.User{{ID: "u1", IsVerified: true}}}
	tasks := &fakeTaskSource{tasks: map[string][]models.Task{
		"u1": {{ID: "t1", UserID: "u1", Text: "Pay rent", DueDate: dueAt}},
	}}
	sender := &fakeSender{failFor: map[string]bool{"u1": true}}

	newEngine(users, tasks, sender).RunCycle(context.Background())

	assert.Empty(t, tasks.marked)
}

func TestRunCycleIsolatesUserFailures(t *testing.T) {
	users := &fakeUserSource{users: []models.User{
		userWithSchedule("failing", mondaySchedule("A")),
		userWithSchedule("healthy", mondaySchedule("B")),
	}}
	sender := &fakeSender{failFor: map[string]bool{"failing": true}}

	newEngine(users, &fakeTaskSource{}, sender).RunCycle(context.Background())

	assert.Contains(t, sender.messages["healthy"], "B")
}

func TestRunCycleAbortsWhenUserSourceFails(t *testing.T) {
	users := &fakeUserSource{err: errors.New("mongo down")}
	sender := &fakeSender{}

	newEngine(users, &fakeTaskSource{}, sender).RunCycle(context.Background())

	assert.Empty(t, sender.messages)
}

func TestRunCycleTaskSourceFailureKeepsGridReminders(t *testing.T) {
	users := &fakeUserSource{users: []models.User{userWithSchedule("u1", mondaySchedule("Standup"))}}
	tasks := &fakeTaskSource{err: errors.New("query timeout")}
	sender := &fakeSender{}

	newEngine(users, tasks, sender).RunCycle(context.Background())

	assert.Contains(t, sender.messages["u1"], "Standup")
}

func TestRunCycleSkipsOverlappingTick(t *testing.T) {
	users := &fakeUserSource{users: []models.User{userWithSchedule("u1", mondaySchedule("Standup"))}}
	sender := &fakeSender{}
	e := newEngine(users, &fakeTaskSource{}, sender)

	e.running.Lock()
	e.RunCycle(context.Background())
	e.running.Unlock()

	assert.Empty(t, sender.messages)
}

func TestBuildMessageCombinesItems(t *testing.T) {
	msg := buildMessage("Asha", []dueItem{
		{text: "Standup", when: "9:00 AM"},
		{text: "Pay rent", when: "9:00 AM"},
	})
	assert.Contains(t, msg, "2 things")
	assert.Contains(t, msg, "- Standup (9:00 AM)")
	assert.Contains(t, msg, "- Pay rent (9:00 AM)")
}
