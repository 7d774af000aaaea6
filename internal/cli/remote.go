package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/client"
)

func newRemoteCmd(g *globalFlags) *cobra.Command {
	var (
		of        outputFlags
		serverURL string
	)

	cmd := &cobra.Command{
		Use:   "remote <file>",
		Short: "Построить отчёт на локальном сервере",
		Long: `Отправляет выгрузку на запущенный сервер tgstats, ждёт завершения задачи
и выводит отчёт. Параметры отчёта берутся из конфигурации сервера.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := of.validate(); err != nil {
				return err
			}
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if serverURL == "" {
				serverURL = "http://" + cfg.Address()
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout := cfg.Processing.TaskTimeout; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, 2*timeout)
				defer cancel()
			}

			c := client.NewServerClient(serverURL)
			start, err := c.StartTask(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			logger.Info("Task started", "task_id", start.TaskID, "server", serverURL)

			report, err := c.WaitForResult(ctx, start.TaskID)
			if err != nil {
				return err
			}
			return of.write(cmd, report)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Адрес сервера (по умолчанию из конфигурации)")
	of.register(cmd)
	return cmd
}
