package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/domain"
)

func newClockedStore() (*TaskStore, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ts := NewTaskStore()
	ts.now = func() time.Time { return now }
	return ts, &now
}

func TestTaskStore(t *testing.T) {
	t.Run("Новая задача ожидает обработки", func(t *testing.T) {
		ts, now := newClockedStore()
		ts.CreateTask("t1", 5*time.Minute)

		task, err := ts.GetTask("t1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, now.Add(5*time.Minute), task.ExpiresAt)
		assert.True(t, task.FinishedAt.IsZero())

		_, err = ts.GetTask("missing")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("Успешный жизненный цикл", func(t *testing.T) {
		ts, now := newClockedStore()
		ts.CreateTask("t1", time.Hour)
		require.NoError(t, ts.Start("t1"))

		running, err := ts.GetTask("t1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusProcessing, running.Status)

		*now = now.Add(time.Second)
		report := &domain.Report{Summary: domain.Summary{ChatName: "Chat"}}
		require.NoError(t, ts.Complete("t1", report))

		done, err := ts.GetTask("t1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusCompleted, done.Status)
		assert.Same(t, report, done.Result)
		assert.Equal(t, *now, done.FinishedAt)

		// Снимок не меняется при последующих обновлениях.
		assert.Equal(t, TaskStatusProcessing, running.Status)
	})

	t.Run("Ошибка обработки", func(t *testing.T) {
		ts, _ := newClockedStore()
		ts.CreateTask("t1", time.Hour)
		require.NoError(t, ts.Start("t1"))
		require.NoError(t, ts.Fail("t1", "no data loaded"))

		task, err := ts.GetTask("t1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status)
		assert.Equal(t, "no data loaded", task.ErrorMessage)
		assert.Nil(t, task.Result)
	})

	t.Run("Недопустимые переходы", func(t *testing.T) {
		ts, _ := newClockedStore()
		ts.CreateTask("t1", time.Hour)
		require.NoError(t, ts.Complete("t1", &domain.Report{}))

		assert.ErrorIs(t, ts.Start("t1"), ErrInvalidTransition)
		assert.ErrorIs(t, ts.Fail("t1", "late"), ErrInvalidTransition)
		assert.ErrorIs(t, ts.Complete("t1", nil), ErrInvalidTransition)
		assert.ErrorIs(t, ts.Start("missing"), ErrTaskNotFound)
	})

	t.Run("Просроченные задачи не видны и удаляются", func(t *testing.T) {
		ts, now := newClockedStore()
		ts.CreateTask("short", time.Minute)
		ts.CreateTask("long", time.Hour)

		*now = now.Add(time.Minute)
		_, err := ts.GetTask("short")
		assert.ErrorIs(t, err, ErrTaskNotFound)

		ts.CleanupExpired()
		assert.Len(t, ts.tasks, 1)
		_, err = ts.GetTask("long")
		assert.NoError(t, err)
	})

	t.Run("JSON не содержит отчёт", func(t *testing.T) {
		ts, _ := newClockedStore()
		ts.CreateTask("t1", time.Hour)
		require.NoError(t, ts.Complete("t1", &domain.Report{Summary: domain.Summary{ChatName: "secret"}}))
		task, _ := ts.GetTask("t1")

		data, err := json.Marshal(task)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"status":"completed"`)
		assert.NotContains(t, string(data), "secret")
	})
}

func TestTaskStore_StartCleanupTicker(t *testing.T) {
	ts := NewTaskStore()
	ts.CreateTask("expired", -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ts.StartCleanupTicker(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		ts.mu.RLock()
		defer ts.mu.RUnlock()
		return len(ts.tasks) == 0
	}, time.Second, 5*time.Millisecond)
}
