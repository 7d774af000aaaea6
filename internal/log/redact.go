package log

import (
	"context"
	"log/slog"
	"regexp"
)

// RedactingHandler - обертка для slog.Handler, которая скрывает персональные данные
// (телефоны, email) и токены ботов, попавшие в текст сообщений выгрузки или ошибок.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler создает новый обработчик с маскировкой
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	return &RedactingHandler{handler: handler}
}

var (
	// токены в формате botID:token
	botTokenRegex = regexp.MustCompile(`\bbot\d+:[A-Za-z0-9_-]{35,}`)
	phoneRegex    = regexp.MustCompile(`\+\d[\d\s()-]{8,}\d`)
	emailRegex    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Redact заменяет найденные чувствительные фрагменты на маски.
func Redact(text string) string {
	text = botTokenRegex.ReplaceAllString(text, "bot***:***masked-token***")
	text = emailRegex.ReplaceAllString(text, "***@***")
	return phoneRegex.ReplaceAllString(text, "+***")
}

// Enabled реализует интерфейс slog.Handler
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	// Новая запись вместо изменения исходной: slog может переиспользовать record.
	r := slog.NewRecord(record.Time, record.Level, Redact(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = redactAttr(attr)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup реализует интерфейс slog.Handler
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	return slog.Attr{Key: a.Key, Value: redactValue(a.Value)}
}

// redactValue рекурсивно маскирует значения атрибутов
func redactValue(value slog.Value) slog.Value {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(Redact(value.String()))
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(Redact(err.Error()))
		}
		return value
	case slog.KindGroup:
		group := value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, attr := range group {
			redacted[i] = redactAttr(attr)
		}
		return slog.GroupValue(redacted...)
	default:
		return value
	}
}
