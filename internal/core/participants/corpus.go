package participants

import (
	"time"

	"telegram-chat-stats/internal/domain"
)

// Corpus — отфильтрованный набор сообщений участников вместе с таблицей имён.
// Строится один раз на выгрузку и передаётся по ссылке во все агрегаты; после создания не изменяется.
type Corpus struct {
	messages []domain.ParsedMessage
	names    Directory
	authors  []string
}

// Build применяет фильтр к нормализованным сообщениям и разрешает имена авторов.
// Авторы, чьё последнее имя похоже на имя бота, тоже исключаются.
func Build(msgs []domain.ParsedMessage, filter *Filter) *Corpus {
	if filter == nil {
		filter = NewFilter(nil)
	}
	names := ResolveNames(msgs)

	kept := make([]domain.ParsedMessage, 0, len(msgs))
	for _, m := range msgs {
		if !filter.IsParticipant(m) {
			continue
		}
		if resolved, ok := names.Lookup(m.FromID); ok && filter.IsBotName(resolved) {
			continue
		}
		kept = append(kept, m)
	}
	return newCorpus(kept, names)
}

func newCorpus(msgs []domain.ParsedMessage, names Directory) *Corpus {
	seen := make(map[string]struct{})
	var authors []string
	for _, m := range msgs {
		if _, ok := seen[m.FromID]; ok {
			continue
		}
		seen[m.FromID] = struct{}{}
		authors = append(authors, m.FromID)
	}
	return &Corpus{messages: msgs, names: names, authors: authors}
}

// Messages возвращает сообщения участников в исходном порядке. Срез нельзя изменять.
func (c *Corpus) Messages() []domain.ParsedMessage {
	if c == nil {
		return nil
	}
	return c.messages
}

// Names возвращает таблицу последних известных имён.
func (c *Corpus) Names() Directory {
	if c == nil {
		return Directory{}
	}
	return c.names
}

// DisplayName возвращает имя автора для вывода.
func (c *Corpus) DisplayName(authorID string) string {
	return c.Names().Name(authorID)
}

// Authors возвращает идентификаторы авторов в порядке первого появления.
func (c *Corpus) Authors() []string {
	if c == nil {
		return nil
	}
	return c.authors
}

// Len возвращает количество сообщений участников.
func (c *Corpus) Len() int {
	return len(c.Messages())
}

// Window возвращает корпус, ограниченный полуинтервалом [since, until).
// Нулевая граница не ограничивает. Если задана хотя бы одна граница, сообщения
// с некорректной датой отбрасываются. Таблица имён сохраняется целиком.
func (c *Corpus) Window(since, until time.Time) *Corpus {
	if since.IsZero() && until.IsZero() {
		return c
	}
	var kept []domain.ParsedMessage
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		if !since.IsZero() && m.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && !m.Timestamp.Before(until) {
			continue
		}
		kept = append(kept, m)
	}
	return newCorpus(kept, c.Names())
}
