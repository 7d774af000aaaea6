package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/adapters/parser"
	"telegram-chat-stats/internal/adapters/source"
	"telegram-chat-stats/internal/core/services"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/ports"
	"telegram-chat-stats/internal/server/usecase"
)

// analyticsFlags переопределяют секцию analytics конфигурации.
type analyticsFlags struct {
	limit         int
	minWordLength int
	emoji         []string
	since         string
	until         string
	tz            string
}

func (a *analyticsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.limit, "limit", "n", config.DefaultLimit, "Длина рейтингов")
	cmd.Flags().IntVar(&a.minWordLength, "min-word", config.DefaultMinWordLength, "Минимальная длина слова в частотном словаре")
	cmd.Flags().StringSliceVar(&a.emoji, "emoji", nil, "Учитывать только эти реакции (можно повторять)")
	cmd.Flags().StringVar(&a.since, "since", "", `Начало периода: 2024-01-31, "2 weeks ago", "вчера"`)
	cmd.Flags().StringVar(&a.until, "until", "", "Конец периода (не включается)")
	cmd.Flags().StringVar(&a.tz, "tz", "", "Часовой пояс дат выгрузки, например Europe/Moscow")
}

// options собирает параметры отчёта: конфигурация, затем явно заданные флаги.
func (a *analyticsFlags) options(cmd *cobra.Command, cfg config.Analytics, now time.Time) (domain.ReportOptions, error) {
	flags := cmd.Flags()
	if flags.Changed("tz") {
		cfg.Timezone = a.tz
	}
	opts, err := usecase.ReportOptions(cfg)
	if err != nil {
		return opts, fmt.Errorf("некорректный часовой пояс: %w", err)
	}

	if flags.Changed("limit") {
		opts.Limit = a.limit
	}
	if flags.Changed("min-word") {
		opts.MinWordLength = a.minWordLength
	}
	if flags.Changed("emoji") {
		opts.ReactionLabels = a.emoji
	}

	w := newDateParser()
	if opts.Since, err = parseDate(w, a.since, now, opts.Location); err != nil {
		return opts, err
	}
	if opts.Until, err = parseDate(w, a.until, now, opts.Location); err != nil {
		return opts, err
	}
	if !opts.Since.IsZero() && !opts.Until.IsZero() && !opts.Since.Before(opts.Until) {
		return opts, errors.New("--since должен быть раньше --until")
	}
	return opts, nil
}

func newReportCmd(g *globalFlags) *cobra.Command {
	var (
		af analyticsFlags
		of outputFlags
	)

	cmd := &cobra.Command{
		Use:   "report <file|->",
		Short: "Построить отчёт по файлу выгрузки",
		Long: `Строит отчёт по result.json из Telegram Desktop.

Вместо пути можно передать "-", тогда выгрузка читается из stdin.`,
		Example: `  tgstats report result.json
  tgstats report result.json --since "2024-01-01" --emoji 👍 --emoji ❤
  cat result.json | tgstats report - --format xlsx --out stats.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := of.validate(); err != nil {
				return err
			}
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			opts, err := af.options(cmd, cfg.Analytics, time.Now())
			if err != nil {
				return err
			}

			var ds ports.DataSource
			if args[0] == source.StdinPath {
				ds = source.NewReaderSource(cmd.InOrStdin())
			} else {
				ds = source.NewCliSource(args[0])
			}
			data, err := ds.Fetch()
			if err != nil {
				return err
			}

			chat, err := parser.NewJsonParser().Parse(data)
			if err != nil {
				logger.Debug("Parse failed", "error", err)
				return err
			}

			report := services.NewAnalyticsService(services.WithLogger(logger)).BuildReport(chat, opts)
			return of.write(cmd, report)
		},
	}

	af.register(cmd)
	of.register(cmd)
	return cmd
}
