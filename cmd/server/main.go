package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/adapters/parser"
	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/core/services"
	applog "telegram-chat-stats/internal/log"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/server"
	"telegram-chat-stats/internal/server/usecase"
)

type flags struct {
	configPath string
	detach     bool
	pidFile    string
	logFile    string
}

func main() {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Локальный HTTP-сервер статистики чатов Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultConfigFile, "Путь к файлу конфигурации")
	cmd.Flags().BoolVarP(&f.detach, "detach", "d", false, "Запуститься в фоне")
	cmd.Flags().StringVar(&f.pidFile, "pid-file", "tgstats-server.pid", "PID-файл фонового процесса")
	cmd.Flags().StringVar(&f.logFile, "log-file", "tgstats-server.log", "Лог фонового процесса")

	if err := cmd.Execute(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run(f *flags) error {
	// 1. Загрузка и валидация конфигурации
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Переход в фон. Родитель завершается, дочерний процесс продолжает работу.
	if f.detach {
		dctx := &daemon.Context{
			PidFileName: f.pidFile,
			PidFilePerm: 0644,
			LogFileName: f.logFile,
			LogFilePerm: 0640,
			Umask:       027,
		}
		child, err := dctx.Reborn()
		if err != nil {
			return fmt.Errorf("failed to detach: %w", err)
		}
		if child != nil {
			fmt.Printf("Сервер запущен в фоне, PID %d\n", child.Pid)
			return nil
		}
		defer func() { _ = dctx.Release() }()
	}

	// 3. Инициализация логгера
	logger, err := applog.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	// 4. Инициализация зависимостей
	taskStore := server.NewTaskStore()
	cacheStore := cache.NewCacheStore()
	parserSvc := parser.NewJsonParser()
	analyticsSvc := services.NewAnalyticsService(services.WithLogger(logger))
	processor := usecase.NewProcessChatUseCase(cfg, parserSvc, analyticsSvc, cacheStore)

	// 5. Создание HTTP-сервера
	srv, err := server.New(cfg, processor, taskStore, cacheStore)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 6. Запуск сервера и graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		slog.Info("Starting server", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		slog.Info("Signal received, shutting down...")
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverErr
	slog.Info("Application exited gracefully")
	return nil
}
