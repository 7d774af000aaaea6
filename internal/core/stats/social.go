package stats

import (
	"time"

	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/domain"
)

// WeeklyActiveAuthors считает различных авторов, писавших в каждую ISO-неделю.
func WeeklyActiveAuthors(c *participants.Corpus) []domain.BucketRow {
	byWeek := make(map[string]map[string]struct{})
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		wk := WeekKey(m.Timestamp)
		if byWeek[wk] == nil {
			byWeek[wk] = make(map[string]struct{})
		}
		byWeek[wk][m.FromID] = struct{}{}
	}

	counts := make(map[string]int, len(byWeek))
	for wk, authors := range byWeek {
		counts[wk] = len(authors)
	}
	return sortedBuckets(counts)
}

// WeeklyNewAuthors считает авторов по неделе их первого (самого раннего) сообщения.
func WeeklyNewAuthors(c *participants.Corpus) []domain.BucketRow {
	first := make(map[string]time.Time)
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		if cur, ok := first[m.FromID]; !ok || m.Timestamp.Before(cur) {
			first[m.FromID] = m.Timestamp
		}
	}

	counts := make(map[string]int)
	for _, at := range first {
		counts[WeekKey(at)]++
	}
	return sortedBuckets(counts)
}

// StableAuthors ранжирует авторов по количеству различных ISO-недель, в которые они писали.
// Это число активных недель, а не длина непрерывной серии: пропуски между неделями не учитываются.
func StableAuthors(c *participants.Corpus, limit int) []domain.WeeksRow {
	weeks := make(map[string]map[string]struct{})
	t := newTally[string]()
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		wk := WeekKey(m.Timestamp)
		if weeks[m.FromID] == nil {
			weeks[m.FromID] = make(map[string]struct{})
		}
		if _, ok := weeks[m.FromID][wk]; ok {
			continue
		}
		weeks[m.FromID][wk] = struct{}{}
		t.add(m.FromID, 1)
	}

	ranked := t.ranked()
	n := clamp(limit, len(ranked))
	rows := make([]domain.WeeksRow, 0, n)
	for i, e := range ranked[:n] {
		rows = append(rows, domain.WeeksRow{
			Rank:        i + 1,
			AuthorID:    e.key,
			DisplayName: c.DisplayName(e.key),
			Weeks:       e.count,
		})
	}
	return rows
}
