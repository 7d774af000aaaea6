package stats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/domain"
)

// DefaultMinWordLength — минимальная длина слова в символах для частотного словаря.
const DefaultMinWordLength = 2

// Tokenize приводит текст к нижнему регистру, заменяет всё, кроме букв и цифр, разделителем
// и возвращает слова длиной не меньше minLen символов.
func Tokenize(text string, minLen int) []string {
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) >= minLen {
			words = append(words, w)
		}
	}
	return words
}

// WordFrequency ранжирует слова по частоте. minLen <= 0 означает DefaultMinWordLength.
func WordFrequency(c *participants.Corpus, limit, minLen int) []domain.WordRow {
	t := newTally[string]()
	for _, m := range c.Messages() {
		for _, w := range Tokenize(m.Text, minLen) {
			t.add(w, 1)
		}
	}
	ranked := t.ranked()
	n := clamp(limit, len(ranked))
	rows := make([]domain.WordRow, 0, n)
	for i, e := range ranked[:n] {
		rows = append(rows, domain.WordRow{Rank: i + 1, Word: e.key, Count: e.count})
	}
	return rows
}

// LongestMessages ранжирует непустые сообщения по длине текста в символах.
func LongestMessages(c *participants.Corpus, limit int) []domain.LongMessageRow {
	type sized struct {
		msg    *domain.ParsedMessage
		length int
	}
	msgs := c.Messages()
	var candidates []sized
	for i := range msgs {
		if strings.TrimSpace(msgs[i].Text) == "" {
			continue
		}
		candidates = append(candidates, sized{msg: &msgs[i], length: utf8.RuneCountInString(msgs[i].Text)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].length > candidates[j].length
	})

	n := clamp(limit, len(candidates))
	rows := make([]domain.LongMessageRow, 0, n)
	for i, s := range candidates[:n] {
		rows = append(rows, domain.LongMessageRow{
			Rank:              i + 1,
			MessageID:         s.msg.ID,
			AuthorID:          s.msg.FromID,
			AuthorDisplayName: c.DisplayName(s.msg.FromID),
			Text:              s.msg.Text,
			Length:            s.length,
		})
	}
	return rows
}

// MediaTally считает сообщения по каноническим типам медиа. Текстовые сообщения не учитываются.
func MediaTally(c *participants.Corpus) []domain.MediaRow {
	t := newTally[string]()
	for _, m := range c.Messages() {
		if m.MediaKind != "" {
			t.add(m.MediaKind, 1)
		}
	}
	ranked := t.ranked()
	rows := make([]domain.MediaRow, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, domain.MediaRow{Rank: i + 1, Kind: e.key, Count: e.count})
	}
	return rows
}
