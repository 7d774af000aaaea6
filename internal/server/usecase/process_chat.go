package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"telegram-chat-stats/internal/adapters/source"
	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/ports"
)

// ProcessChatUseCase инкапсулирует бизнес-логику для обработки загруженной выгрузки чата.
type ProcessChatUseCase struct {
	cfg        *config.Config
	parser     ports.Parser
	analytics  ports.AnalyticsService
	cacheStore *cache.CacheStore
}

// NewProcessChatUseCase создает новый экземпляр ProcessChatUseCase.
func NewProcessChatUseCase(
	cfg *config.Config,
	parser ports.Parser,
	analytics ports.AnalyticsService,
	cacheStore *cache.CacheStore,
) *ProcessChatUseCase {
	return &ProcessChatUseCase{
		cfg:        cfg,
		parser:     parser,
		analytics:  analytics,
		cacheStore: cacheStore,
	}
}

// ReportOptions собирает параметры отчёта из секции analytics конфигурации.
func ReportOptions(a config.Analytics) (domain.ReportOptions, error) {
	loc, err := a.Location()
	if err != nil {
		return domain.ReportOptions{}, err
	}
	return domain.ReportOptions{
		Limit:          a.Limit,
		ReactionLabels: a.ReactionLabels,
		Location:       loc,
		BotSuffixes:    a.BotSuffixes,
		MinWordLength:  a.MinWordLength,
	}, nil
}

// ProcessChat строит отчёт по содержимому выгрузки. Данные обрабатываются только в памяти.
// Результат кешируется по хешу содержимого и параметрам отчёта.
func (uc *ProcessChatUseCase) ProcessChat(ctx context.Context, data []byte) (*domain.Report, error) {
	opts, err := ReportOptions(uc.cfg.Analytics)
	if err != nil {
		return nil, fmt.Errorf("некорректные параметры отчёта: %w", err)
	}

	key := cache.Key(data, optionsFingerprint(opts))
	if cached, found := uc.cacheStore.Get(key); found {
		slog.InfoContext(ctx, "Попадание в кеш", "hash", key)
		return cached, nil
	}

	ds := source.NewMemorySource(data)
	raw, err := ds.Fetch()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить данные: %w", err)
	}

	chat, err := uc.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать данные: %w", err)
	}
	slog.InfoContext(ctx, "Разобран чат", "name", chat.Name, "message_count", len(chat.Messages))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("обработка прервана: %w", err)
	}

	report := uc.analytics.BuildReport(chat, opts)

	ttl := uc.cfg.Processing.CacheTTL
	uc.cacheStore.Put(key, report, ttl)
	slog.InfoContext(ctx, "Результат кеширован", "hash", key, "ttl", ttl.String())

	slog.InfoContext(ctx, "Обработка успешно завершена",
		"participant_messages", report.Summary.ParticipantMessages,
		"authors", report.Summary.Authors)
	return report, nil
}

func optionsFingerprint(o domain.ReportOptions) string {
	loc := ""
	if o.Location != nil {
		loc = o.Location.String()
	}
	return fmt.Sprintf("%d|%s|%s|%s|%d",
		o.Limit,
		strings.Join(o.ReactionLabels, ","),
		loc,
		strings.Join(o.BotSuffixes, ","),
		o.MinWordLength,
	)
}
