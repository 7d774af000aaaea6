package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/pkg/config"
)

// ChatProcessor определяет интерфейс для варианта использования, который строит отчёт по выгрузке.
type ChatProcessor interface {
	ProcessChat(ctx context.Context, data []byte) (*domain.Report, error)
}

// Server представляет HTTP-сервер
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	taskStore  *TaskStore
	cacheStore *cache.CacheStore
	processor  ChatProcessor
	stop       context.CancelFunc
}

// New создает новый экземпляр Server
func New(cfg *config.Config, processor ChatProcessor, taskStore *TaskStore, cacheStore *cache.CacheStore) (*Server, error) {
	if cfg == nil || processor == nil || taskStore == nil || cacheStore == nil {
		return nil, errors.New("server: nil dependency")
	}

	s := &Server{
		cfg:        cfg,
		taskStore:  taskStore,
		cacheStore: cacheStore,
		processor:  processor,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	chiRouter.Get("/health", s.handleHealth)

	chiRouter.Route("/api/v1", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Get("/tasks/{taskID}", s.handleTaskStatus)
		r.Get("/tasks/{taskID}/result", s.handleResult)
		r.Get("/tasks/{taskID}/result.xlsx", s.handleResultExcel)
	})

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      chiRouter,
		ReadTimeout:  config.DefaultReadTimeout,
		WriteTimeout: config.DefaultWriteTimeout,
		IdleTimeout:  config.DefaultIdleTimeout,
	}

	// Тикеры очистки останавливаются в Shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	interval := cfg.Processing.CleanupInterval
	if interval <= 0 {
		interval = config.DefaultCleanupInterval
	}
	s.taskStore.StartCleanupTicker(ctx, interval)
	s.cacheStore.StartCleanupTicker(ctx, interval)

	return s, nil
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	s.stop()
	return s.HTTPServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProcess принимает выгрузку в поле формы "file" и запускает построение отчёта.
// Файл читается в память потоково и не сохраняется на диск.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Server.MaxUploadSizeMB) << 20
	if maxBytes <= 0 {
		maxBytes = int64(config.DefaultMaxUploadSizeMB) << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	data, err := readUpload(r, "file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Не удалось получить файл из формы", http.StatusBadRequest)
		return
	}

	taskID := uuid.NewString()
	s.taskStore.CreateTask(taskID, s.taskTTL())
	slog.Info("Получена выгрузка", "task_id", taskID, "size", len(data))

	go s.runTask(taskID, data)

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID})
}

func (s *Server) taskTTL() time.Duration {
	if ttl := s.cfg.Processing.TaskTTL; ttl > 0 {
		return ttl
	}
	return config.DefaultTaskTTL
}

func (s *Server) runTask(taskID string, data []byte) {
	if err := s.taskStore.Start(taskID); err != nil {
		slog.Warn("Задача исчезла до начала обработки", "task_id", taskID, "error", err)
		return
	}

	taskCtx := context.Background()
	if timeout := s.cfg.Processing.TaskTimeout; timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(taskCtx, timeout)
		defer cancel()
	}

	report, err := s.processor.ProcessChat(taskCtx, data)
	if err != nil {
		slog.Error("Не удалось построить отчёт", "task_id", taskID, "error", err)
		_ = s.taskStore.Fail(taskID, err.Error())
		return
	}
	_ = s.taskStore.Complete(taskID, report)
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := s.lookupTask(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	task, ok := s.completedTask(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task.Result)
}

func (s *Server) handleResultExcel(w http.ResponseWriter, r *http.Request) {
	task, ok := s.completedTask(w, r)
	if !ok {
		return
	}

	// Книга собирается в буфер, чтобы ошибка не оборвала уже начатый ответ.
	var buf bytes.Buffer
	if err := exporter.NewExcelExporter(&buf).Export(task.Result); err != nil {
		slog.Error("Не удалось сформировать Excel", "task_id", task.ID, "error", err)
		http.Error(w, "Не удалось сформировать Excel-файл", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="chat_stats_%s.xlsx"`, task.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) lookupTask(w http.ResponseWriter, r *http.Request) (*Task, bool) {
	task, err := s.taskStore.GetTask(chi.URLParam(r, "taskID"))
	if err != nil {
		http.Error(w, "Задача не найдена", http.StatusNotFound)
		return nil, false
	}
	return task, true
}

func (s *Server) completedTask(w http.ResponseWriter, r *http.Request) (*Task, bool) {
	task, ok := s.lookupTask(w, r)
	if !ok {
		return nil, false
	}
	switch task.Status {
	case TaskStatusCompleted:
		return task, true
	case TaskStatusFailed:
		http.Error(w, "Задача завершилась с ошибкой: "+task.ErrorMessage, http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Задача не завершена", http.StatusConflict)
	}
	return nil, false
}

// readUpload читает часть формы с именем field в память.
func readUpload(r *http.Request, field string) ([]byte, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, fmt.Errorf("поле %q не найдено", field)
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != field {
			part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Не удалось записать ответ", "error", err)
	}
}
