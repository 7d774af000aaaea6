// Package participants определяет, какие сообщения написаны живыми участниками чата,
// и сводит имена авторов к последним известным.
package participants

import (
	"strings"

	"telegram-chat-stats/internal/domain"
)

// UserIDPrefix — префикс from_id обычного пользователя.
const UserIDPrefix = "user"

// DefaultBotSuffixes — окончания имён, по которым автор считается ботом.
var DefaultBotSuffixes = []string{"bot", "бот"}

// Filter — единственный предикат "сообщение написано человеком".
// Все агрегаты получают его через Corpus и не должны проверять участников самостоятельно.
type Filter struct {
	botSuffixes []string
}

// NewFilter создает фильтр с заданным словарём окончаний ботов.
// Пустой список означает DefaultBotSuffixes.
func NewFilter(botSuffixes []string) *Filter {
	if len(botSuffixes) == 0 {
		botSuffixes = DefaultBotSuffixes
	}
	suffixes := make([]string, 0, len(botSuffixes))
	for _, s := range botSuffixes {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			suffixes = append(suffixes, s)
		}
	}
	return &Filter{botSuffixes: suffixes}
}

// IsParticipant возвращает true, если сообщение отправлено пользователем (не каналом),
// имеет непустое имя автора, не является пересланным и автор не похож на бота.
func (f *Filter) IsParticipant(m domain.ParsedMessage) bool {
	if m.Type != domain.TypeMessage {
		return false
	}
	if !IsUserID(m.FromID) {
		return false
	}
	if strings.TrimSpace(m.From) == "" {
		return false
	}
	if m.Forwarded {
		return false
	}
	return !f.IsBotName(m.From)
}

// IsBotName сообщает, заканчивается ли имя на одно из окончаний ботов (без учёта регистра).
func (f *Filter) IsBotName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range f.botSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsUserID сообщает, относится ли идентификатор к категории пользователей.
func IsUserID(fromID string) bool {
	return strings.HasPrefix(fromID, UserIDPrefix)
}
