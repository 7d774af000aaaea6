package normalize

import (
	"strings"
	"time"

	"telegram-chat-stats/internal/domain"
)

// Message строит ParsedMessage из одной записи экспорта.
// Второе значение false означает, что запись не является сообщением (служебные записи и т.п.).
func Message(raw domain.Message, loc *time.Location) (domain.ParsedMessage, bool) {
	msgType := strings.ToLower(strings.TrimSpace(raw.Type.String()))
	if msgType == "" {
		msgType = domain.TypeMessage
	}
	if msgType != domain.TypeMessage {
		return domain.ParsedMessage{}, false
	}

	reactions := Reactions(raw.Reactions)
	ts, valid := Timestamp(raw.Date.String(), raw.DateUnixtime.String(), loc)

	return domain.ParsedMessage{
		ID:             int(raw.ID),
		Type:           msgType,
		From:           raw.From.String(),
		FromID:         raw.FromID.String(),
		Date:           raw.Date.String(),
		Text:           Text(raw.Text),
		Reactions:      reactions,
		TotalReactions: Total(reactions),
		Timestamp:      ts,
		TimestampValid: valid,
		ReplyTo:        int(raw.ReplyToMessageID),
		MediaType:      strings.ToLower(strings.TrimSpace(raw.MediaType.String())),
		MediaKind:      MediaKind(raw),
		Forwarded:      raw.ForwardedFrom.Set || raw.SavedFrom.Set,
	}, true
}

// Batch нормализует все записи выгрузки, сохраняя их порядок.
func Batch(raw []domain.Message, loc *time.Location) []domain.ParsedMessage {
	out := make([]domain.ParsedMessage, 0, len(raw))
	for _, r := range raw {
		if pm, ok := Message(r, loc); ok {
			out = append(out, pm)
		}
	}
	return out
}
