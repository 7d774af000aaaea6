// Package cli содержит команды tgstats.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/adapters/parser"
	applog "telegram-chat-stats/internal/log"
	"telegram-chat-stats/internal/pkg/config"
)

var versionInfo = "dev"

// SetVersion задает информацию о версии из ldflags.
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Execute запускает CLI и завершает процесс с ненулевым кодом при ошибке.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// userMessage превращает ошибку в сообщение для пользователя.
func userMessage(err error) string {
	if errors.Is(err, parser.ErrNoData) {
		return parser.ErrNoData.Error()
	}
	return "Ошибка: " + err.Error()
}

type globalFlags struct {
	configPath string
	verbose    bool
}

// NewRootCmd собирает дерево команд tgstats.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "tgstats",
		Short: "Статистика по выгрузке чата Telegram",
		Long: `tgstats - статистика по JSON-выгрузке чата Telegram Desktop

Считает самых активных авторов, популярные сообщения и реакции, активность
по дням и неделям, частые слова и граф ответов. Все данные обрабатываются
локально.`,
		Version:       versionInfo,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultConfigFile, "Путь к файлу конфигурации")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Подробные логи в stderr")

	root.AddCommand(newReportCmd(g))
	root.AddCommand(newRemoteCmd(g))
	return root
}

// setup загружает конфигурацию и создает логгер, пишущий в stderr команды.
func (g *globalFlags) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return nil, nil, err
	}

	// В CLI по умолчанию выводятся только предупреждения.
	level := "warn"
	if g.verbose {
		level = cfg.Logging.Level
	}
	logger, err := applog.NewLogger(level, "text", stderr(cmd))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func stderr(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
