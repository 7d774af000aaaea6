package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"telegram-chat-stats/internal/domain"
)

var (
	// ErrTaskNotFound возвращается для неизвестного или удалённого по TTL идентификатора задачи.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTransition возвращается при попытке изменить завершённую задачу
	// или запустить её повторно.
	ErrInvalidTransition = errors.New("invalid task transition")
)

// TaskStatus представляет статус задачи обработки
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Terminal сообщает, завершена ли задача.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Task — задача построения отчёта. В JSON попадает только состояние, отчёт отдаётся отдельно.
type Task struct {
	ID           string         `json:"task_id"`
	Status       TaskStatus     `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	FinishedAt   time.Time      `json:"finished_at,omitzero"`
	ExpiresAt    time.Time      `json:"expires_at"`
	Result       *domain.Report `json:"-"`
}

// TaskStore хранит задачи в памяти; задачи удаляются после ExpiresAt.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	now   func() time.Time
}

// NewTaskStore создает новый экземпляр TaskStore
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		now:   time.Now,
	}
}

// CreateTask регистрирует задачу в статусе pending.
func (ts *TaskStore) CreateTask(taskID string, ttl time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := ts.now()
	ts.tasks[taskID] = &Task{
		ID:        taskID,
		Status:    TaskStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// transition переводит задачу из from в to и применяет fn под блокировкой.
func (ts *TaskStore) transition(taskID string, from, to TaskStatus, fn func(*Task)) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	task, ok := ts.tasks[taskID]
	if !ok {
		return fmt.Errorf("задача %s: %w", taskID, ErrTaskNotFound)
	}
	if task.Status != from && !(from == TaskStatusProcessing && task.Status == TaskStatusPending) {
		return fmt.Errorf("задача %s: %s -> %s: %w", taskID, task.Status, to, ErrInvalidTransition)
	}
	task.Status = to
	if to.Terminal() {
		task.FinishedAt = ts.now()
	}
	if fn != nil {
		fn(task)
	}
	return nil
}

// Start переводит задачу из pending в processing.
func (ts *TaskStore) Start(taskID string) error {
	return ts.transition(taskID, TaskStatusPending, TaskStatusProcessing, nil)
}

// Complete сохраняет отчёт. Задачу можно завершить и без Start.
func (ts *TaskStore) Complete(taskID string, report *domain.Report) error {
	return ts.transition(taskID, TaskStatusProcessing, TaskStatusCompleted, func(t *Task) {
		t.Result = report
	})
}

// Fail помечает задачу ошибкой.
func (ts *TaskStore) Fail(taskID string, errorMessage string) error {
	return ts.transition(taskID, TaskStatusProcessing, TaskStatusFailed, func(t *Task) {
		t.ErrorMessage = errorMessage
	})
}

// GetTask возвращает снимок задачи; последующие изменения на него не влияют.
func (ts *TaskStore) GetTask(taskID string) (*Task, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	task, ok := ts.tasks[taskID]
	if !ok || !ts.now().Before(task.ExpiresAt) {
		return nil, fmt.Errorf("задача %s: %w", taskID, ErrTaskNotFound)
	}
	snapshot := *task
	return &snapshot, nil
}

// CleanupExpired удаляет просроченные задачи.
func (ts *TaskStore) CleanupExpired() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := ts.now()
	for id, task := range ts.tasks {
		if !now.Before(task.ExpiresAt) {
			delete(ts.tasks, id)
		}
	}
}

// StartCleanupTicker периодически вызывает CleanupExpired, пока ctx не отменён.
func (ts *TaskStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ts.CleanupExpired()
			}
		}
	}()
}
