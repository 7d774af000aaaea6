package participants

import (
	"strings"
	"time"

	"telegram-chat-stats/internal/domain"
)

// Directory — неизменяемая таблица "authorID → последнее известное имя".
type Directory struct {
	names map[string]string
}

type nameSeen struct {
	name  string
	at    time.Time
	valid bool
}

// ResolveNames за один проход выбирает для каждого пользователя имя из самого позднего сообщения.
// При равных датах побеждает сообщение, встреченное позже. Сообщения с некорректной датой
// не перезаписывают уже найденное имя.
func ResolveNames(msgs []domain.ParsedMessage) Directory {
	seen := make(map[string]nameSeen)
	for _, m := range msgs {
		if !IsUserID(m.FromID) || strings.TrimSpace(m.From) == "" {
			continue
		}
		cur, ok := seen[m.FromID]
		switch {
		case !ok:
		case !m.TimestampValid:
			continue
		case cur.valid && m.Timestamp.Before(cur.at):
			continue
		}
		seen[m.FromID] = nameSeen{name: m.From, at: m.Timestamp, valid: m.TimestampValid}
	}

	names := make(map[string]string, len(seen))
	for id, s := range seen {
		names[id] = s.name
	}
	return Directory{names: names}
}

// Name возвращает последнее известное имя автора или сам идентификатор, если имя неизвестно.
func (d Directory) Name(authorID string) string {
	if name, ok := d.names[authorID]; ok {
		return name
	}
	return authorID
}

// Lookup возвращает имя автора и признак его наличия в таблице.
func (d Directory) Lookup(authorID string) (string, bool) {
	name, ok := d.names[authorID]
	return name, ok
}

// Len возвращает количество известных авторов.
func (d Directory) Len() int {
	return len(d.names)
}
