// Package client - клиент HTTP API локального сервера статистики.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"telegram-chat-stats/internal/domain"
)

// Статусы задач, которые возвращает сервер.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrTaskFailed возвращается, когда сервер не смог построить отчёт.
var ErrTaskFailed = errors.New("task failed")

// ServerClient — клиент для взаимодействия с API сервера.
type ServerClient struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// Option настраивает ServerClient.
type Option func(*ServerClient)

// WithHTTPClient подменяет HTTP-клиент.
func WithHTTPClient(c *http.Client) Option {
	return func(s *ServerClient) {
		s.httpClient = c
	}
}

// WithPollInterval задает интервал опроса статуса задачи.
func WithPollInterval(d time.Duration) Option {
	return func(s *ServerClient) {
		s.pollInterval = d
	}
}

// NewServerClient создает новый экземпляр ServerClient.
func NewServerClient(baseURL string, opts ...Option) *ServerClient {
	c := &ServerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Общий таймаут для запросов
		},
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// API-ответы
type StartTaskResponse struct {
	TaskID string `json:"task_id"`
}

type TaskStatusResponse struct {
	TaskID       string `json:"task_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// StartTask отправляет выгрузку на сервер для начала обработки.
func (c *ServerClient) StartTask(ctx context.Context, name string, content io.Reader) (*StartTaskResponse, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file for %s: %w", name, err)
	}
	if _, err = io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content for %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/process", &b)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result StartTaskResponse
	if err := c.do(req, http.StatusAccepted, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTaskStatus запрашивает статус задачи.
func (c *ServerClient) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/tasks/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result TaskStatusResponse
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTaskResult запрашивает отчёт выполненной задачи.
func (c *ServerClient) GetTaskResult(ctx context.Context, taskID string) (*domain.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/tasks/"+taskID+"/result", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var report domain.Report
	if err := c.do(req, http.StatusOK, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// WaitForResult опрашивает статус задачи, пока она не завершится, и возвращает отчёт.
func (c *ServerClient) WaitForResult(ctx context.Context, taskID string) (*domain.Report, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.GetTaskStatus(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch status.Status {
		case StatusCompleted:
			return c.GetTaskResult(ctx, taskID)
		case StatusFailed:
			return nil, fmt.Errorf("%w: %s", ErrTaskFailed, status.ErrorMessage)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *ServerClient) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
