package stats

import (
	"sort"

	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/domain"
)

// TopAuthors ранжирует авторов по количеству сообщений.
func TopAuthors(c *participants.Corpus, limit int) []domain.AuthorRow {
	t := newTally[string]()
	for _, m := range c.Messages() {
		t.add(m.FromID, 1)
	}
	return authorRows(c, t, limit)
}

// TopAuthorsByReactions ранжирует авторов по сумме реакций на их сообщения.
// Если переданы метки, учитываются только они. Авторы без реакций не попадают в рейтинг.
func TopAuthorsByReactions(c *participants.Corpus, limit int, labels ...string) []domain.AuthorRow {
	set := labelSet(labels)
	t := newTally[string]()
	for _, m := range c.Messages() {
		if sum := reactionSum(m.Reactions, m.TotalReactions, set); sum > 0 {
			t.add(m.FromID, sum)
		}
	}
	return authorRows(c, t, limit)
}

func authorRows(c *participants.Corpus, t *tally[string], limit int) []domain.AuthorRow {
	ranked := t.ranked()
	n := clamp(limit, len(ranked))
	rows := make([]domain.AuthorRow, 0, n)
	for i, e := range ranked[:n] {
		rows = append(rows, domain.AuthorRow{
			Rank:        i + 1,
			AuthorID:    e.key,
			DisplayName: c.DisplayName(e.key),
			Count:       e.count,
		})
	}
	return rows
}

// TopMessages ранжирует сообщения с ненулевой суммой реакций.
// Если переданы метки, сумма считается только по ним.
func TopMessages(c *participants.Corpus, limit int, labels ...string) []domain.MessageRow {
	set := labelSet(labels)
	type scored struct {
		msg *domain.ParsedMessage
		sum int
	}
	msgs := c.Messages()
	var candidates []scored
	for i := range msgs {
		if sum := reactionSum(msgs[i].Reactions, msgs[i].TotalReactions, set); sum > 0 {
			candidates = append(candidates, scored{msg: &msgs[i], sum: sum})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sum > candidates[j].sum
	})

	n := clamp(limit, len(candidates))
	rows := make([]domain.MessageRow, 0, n)
	for i, s := range candidates[:n] {
		rows = append(rows, domain.MessageRow{
			Rank:              i + 1,
			MessageID:         s.msg.ID,
			AuthorID:          s.msg.FromID,
			AuthorDisplayName: c.DisplayName(s.msg.FromID),
			Text:              s.msg.Text,
			ReactionTotal:     s.sum,
		})
	}
	return rows
}

// TopEmoji ранжирует метки реакций по суммарному количеству.
func TopEmoji(c *participants.Corpus, limit int) []domain.EmojiRow {
	t := newTally[string]()
	for _, m := range c.Messages() {
		for _, label := range sortedLabels(m.Reactions) {
			t.add(label, m.Reactions[label])
		}
	}
	ranked := t.ranked()
	n := clamp(limit, len(ranked))
	rows := make([]domain.EmojiRow, 0, n)
	for i, e := range ranked[:n] {
		rows = append(rows, domain.EmojiRow{Rank: i + 1, Label: e.key, Count: e.count})
	}
	return rows
}

// UniqueReactionLabels возвращает все встреченные метки реакций в порядке первого появления.
func UniqueReactionLabels(c *participants.Corpus) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, m := range c.Messages() {
		for _, label := range sortedLabels(m.Reactions) {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	return labels
}
