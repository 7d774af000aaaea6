package services

import (
	"log/slog"

	"telegram-chat-stats/internal/core/normalize"
	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/core/replygraph"
	"telegram-chat-stats/internal/core/stats"
	"telegram-chat-stats/internal/domain"
)

// Option — функциональная опция для AnalyticsService.
type Option func(*AnalyticsService)

// WithLogger устанавливает логгер для сервиса.
func WithLogger(l *slog.Logger) Option {
	return func(s *AnalyticsService) {
		if l != nil {
			s.log = l
		}
	}
}

// AnalyticsService строит отчёт по выгрузке: нормализует записи, один раз собирает
// корпус участников и прогоняет по нему все агрегаты.
// Сервис не хранит состояние и безопасен для одновременного использования.
type AnalyticsService struct {
	log *slog.Logger
}

// NewAnalyticsService создает новый AnalyticsService.
func NewAnalyticsService(opts ...Option) *AnalyticsService {
	s := &AnalyticsService{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildReport строит полный отчёт. nil-чат даёт пустой отчёт.
func (s *AnalyticsService) BuildReport(chat *domain.ExportedChat, opts domain.ReportOptions) *domain.Report {
	if chat == nil {
		chat = &domain.ExportedChat{}
	}

	parsed := normalize.Batch(chat.Messages, opts.Location)
	corpus := participants.Build(parsed, participants.NewFilter(opts.BotSuffixes)).
		Window(opts.Since, opts.Until)

	s.log.Info("Corpus built",
		"chat", chat.Name,
		"raw_records", len(chat.Messages),
		"parsed_messages", len(parsed),
		"participant_messages", corpus.Len(),
		"authors", len(corpus.Authors()),
	)

	limit := opts.Limit
	report := &domain.Report{
		Summary:               summarize(chat, parsed, corpus),
		TopAuthors:            stats.TopAuthors(corpus, limit),
		TopMessages:           stats.TopMessages(corpus, limit, opts.ReactionLabels...),
		TopAuthorsByReactions: stats.TopAuthorsByReactions(corpus, limit, opts.ReactionLabels...),
		TopEmoji:              stats.TopEmoji(corpus, limit),
		ReactionLabels:        stats.UniqueReactionLabels(corpus),
		Daily:                 stats.DailyHistogram(corpus),
		TopDays:               stats.TopDays(corpus, limit),
		ReactionsDaily:        stats.ReactionsDailyHistogram(corpus),
		Weekly:                stats.WeeklyHistogram(corpus),
		Heatmap:               stats.HourWeekdayHeatmap(corpus),
		Words:                 stats.WordFrequency(corpus, limit, opts.MinWordLength),
		LongestMessages:       stats.LongestMessages(corpus, limit),
		Media:                 stats.MediaTally(corpus),
		WeeklyActiveAuthors:   stats.WeeklyActiveAuthors(corpus),
		WeeklyNewAuthors:      stats.WeeklyNewAuthors(corpus),
		StableAuthors:         stats.StableAuthors(corpus, limit),
		ReplyGraph:            replygraph.Build(corpus),
	}

	if report.Summary.InvalidTimestamps > 0 {
		s.log.Warn("Messages with unparseable dates skipped in time buckets",
			"count", report.Summary.InvalidTimestamps)
	}
	s.log.Debug("Report built",
		"top_authors", len(report.TopAuthors),
		"graph_nodes", len(report.ReplyGraph.Nodes),
		"graph_links", len(report.ReplyGraph.Links),
	)
	return report
}

func summarize(chat *domain.ExportedChat, parsed []domain.ParsedMessage, c *participants.Corpus) domain.Summary {
	sum := domain.Summary{
		ChatName:            chat.Name,
		RawRecords:          len(chat.Messages),
		ParsedMessages:      len(parsed),
		ParticipantMessages: c.Len(),
		Authors:             len(c.Authors()),
	}
	for _, m := range c.Messages() {
		sum.TotalReactions += m.TotalReactions
		if !m.TimestampValid {
			sum.InvalidTimestamps++
			continue
		}
		if sum.FirstMessageAt.IsZero() || m.Timestamp.Before(sum.FirstMessageAt) {
			sum.FirstMessageAt = m.Timestamp
		}
		if m.Timestamp.After(sum.LastMessageAt) {
			sum.LastMessageAt = m.Timestamp
		}
	}
	return sum
}
