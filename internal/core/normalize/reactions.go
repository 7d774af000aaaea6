// Package normalize приводит записи экспорта Telegram к каноническому виду.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"path"
	"strconv"
	"strings"
	"unicode"
)

const (
	// PremiumLabelPrefix отличает кастомные (premium) реакции от unicode-эмодзи.
	PremiumLabelPrefix = "premium:"
	// PaidLabel — метка платных реакций (звёзды).
	PaidLabel = "paid:star"
)

// reactionEvent — элемент списка реакций в новых версиях экспорта.
type reactionEvent struct {
	Type          string          `json:"type"`
	Count         json.RawMessage `json:"count"`
	Emoji         string          `json:"emoji"`
	Emoticon      string          `json:"emoticon"`
	Text          string          `json:"text"`
	Reaction      string          `json:"reaction"`
	DocumentID    json.RawMessage `json:"document_id"`
	CustomEmojiID json.RawMessage `json:"custom_emoji_id"`
}

// Reactions приводит реакции любого из известных представлений к словарю "метка → количество".
// Отсутствующие или нераспознанные данные дают пустой словарь.
func Reactions(raw json.RawMessage) map[string]int {
	out := make(map[string]int)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return out
	}

	switch trimmed[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return out
		}
		for label, v := range m {
			if label == "" {
				continue
			}
			out[label] = coerceCount(v)
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return out
		}
		for _, item := range items {
			var ev reactionEvent
			if err := json.Unmarshal(item, &ev); err != nil {
				continue
			}
			label := ev.label()
			if label == "" {
				continue
			}
			out[label] += coerceCount(ev.Count)
		}
	}
	return out
}

// Total возвращает сумму значений словаря реакций.
func Total(reactions map[string]int) int {
	total := 0
	for _, c := range reactions {
		total += c
	}
	return total
}

func (ev reactionEvent) label() string {
	switch ev.Type {
	case "custom_emoji":
		token := premiumToken(rawString(ev.DocumentID))
		if token == premiumUnknown {
			token = premiumToken(rawString(ev.CustomEmojiID))
		}
		return PremiumLabelPrefix + token
	case "paid":
		return PaidLabel
	}
	for _, candidate := range []string{ev.Emoji, ev.Emoticon, ev.Text, ev.Reaction} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

const premiumUnknown = "unknown"

// premiumToken сокращает путь к документу до имени файла без расширения.
// Строки, не похожие ни на путь, ни на идентификатор (например, заглушка
// "(File not included...)"), дают "unknown".
func premiumToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return premiumUnknown
	}
	if !strings.ContainsAny(token, "/\\") {
		if !idLike(token) {
			return premiumUnknown
		}
		return token
	}
	base := path.Base(strings.ReplaceAll(token, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		return premiumUnknown
	}
	return base
}

// idLike сообщает, состоит ли строка только из букв, цифр и символов "._-".
func idLike(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("._-", r) {
			return false
		}
	}
	return s != ""
}

// rawString возвращает строковое представление JSON-строки или числа.
func rawString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n.String()
	}
	return ""
}

// coerceCount приводит значение счётчика к неотрицательному целому; всё некорректное даёт 0.
func coerceCount(raw json.RawMessage) int {
	s := rawString(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
