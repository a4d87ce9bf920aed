package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"remindly/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	byID map[string]*models.Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*models.Task{}}
}

func (f *fakeRepo) GetByID(id string) (*models.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("task with id %s not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) ListByUser(userID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(t *models.Task) error {
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(t *models.Task) error {
	if _, ok := f.byID[t.ID]; !ok {
		return fmt.Errorf("task with id %s not found", t.ID)
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) SetCompleted(id string, completed bool) error {
	f.byID[id].Completed = completed
	return nil
}

func (f *fakeRepo) FindDueTasks(ctx context.Context, userID string, start, end time.Time) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeRepo) MarkOneMinuteReminded(ctx context.Context, taskID string) error {
	f.byID[taskID].OneMinuteReminderSent = true
	return nil
}

func (f *fakeRepo) MarkReminderSent(ctx context.Context, taskID string) error {
	f.byID[taskID].ReminderSent = true
	return nil
}

func newService(repo *fakeRepo) *DefaultTaskService {
	// Queue left nil: advance-reminder enqueueing is skipped, which keeps
	// these tests on the store behavior.
	return &DefaultTaskService{Repo: repo, Log: zap.NewNop()}
}

func TestCreateValidatesAndAssignsDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	t.Run("missing text", func(t *testing.T) {
		err := svc.Create(context.Background(), &models.Task{DueDate: time.Now()})
		assert.Error(t, err)
	})

	t.Run("missing due date", func(t *testing.T) {
		err := svc.Create(context.Background(), &models.Task{Text: "Pay rent"})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		task := &models.Task{UserID: "u1", Text: "Pay rent", DueDate: time.Now().Add(time.Hour)}
		assert.NoError(t, svc.Create(context.Background(), task))
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, models.PriorityMedium, task.Priority)
	})
}

func TestUpdateRescheduleResetsReminderFlags(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	orig := &models.Task{
		UserID:  "u1",
		Text:    "Dentist",
		DueDate: time.Date(2025, 6, 2, 15, 0, 0, 0, time.Local),
	}
	assert.NoError(t, svc.Create(context.Background(), orig))
	repo.byID[orig.ID].ReminderSent = true
	repo.byID[orig.ID].OneMinuteReminderSent = true

	t.Run("same due date keeps flags", func(t *testing.T) {
		edit, _ := repo.GetByID(orig.ID)
		edit.Text = "Dentist (new address)"
		assert.NoError(t, svc.Update(context.Background(), edit))

		got, _ := repo.GetByID(orig.ID)
		assert.True(t, got.ReminderSent)
		assert.True(t, got.OneMinuteReminderSent)
	})

	t.Run("moved due date resets flags", func(t *testing.T) {
		edit, _ := repo.GetByID(orig.ID)
		edit.DueDate = edit.DueDate.Add(24 * time.Hour)
		assert.NoError(t, svc.Update(context.Background(), edit))

		got, _ := repo.GetByID(orig.ID)
		assert.False(t, got.ReminderSent)
		assert.False(t, got.OneMinuteReminderSent)
	})
}
