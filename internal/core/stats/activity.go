package stats

import (
	"sort"

	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/domain"
)

// Сообщения с некорректной датой не участвуют во временных агрегатах этого файла.

// DailyHistogram считает сообщения по календарным дням, по возрастанию даты.
func DailyHistogram(c *participants.Corpus) []domain.BucketRow {
	return bucketize(c, func(m domain.ParsedMessage) (string, int) {
		return DayKey(m.Timestamp), 1
	})
}

// ReactionsDailyHistogram суммирует реакции по календарным дням.
func ReactionsDailyHistogram(c *participants.Corpus) []domain.BucketRow {
	return bucketize(c, func(m domain.ParsedMessage) (string, int) {
		return DayKey(m.Timestamp), m.TotalReactions
	})
}

// WeeklyHistogram считает сообщения по ISO-неделям, по возрастанию ключа недели.
func WeeklyHistogram(c *participants.Corpus) []domain.BucketRow {
	return bucketize(c, func(m domain.ParsedMessage) (string, int) {
		return WeekKey(m.Timestamp), 1
	})
}

// TopDays ранжирует дни по количеству сообщений; при равенстве выше более поздний день.
func TopDays(c *participants.Corpus, limit int) []domain.BucketRow {
	days := DailyHistogram(c)
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return days[i].Key > days[j].Key
	})
	return days[:clamp(limit, len(days))]
}

// HourWeekdayHeatmap считает сообщения по парам (день недели, час).
// Пустые ячейки не возвращаются; порядок — по дню недели, затем по часу.
func HourWeekdayHeatmap(c *participants.Corpus) []domain.HeatmapCell {
	var grid [7][24]int
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		grid[weekdayIndex(m.Timestamp)][m.Timestamp.Hour()]++
	}

	cells := make([]domain.HeatmapCell, 0)
	for wd := range grid {
		for hour, count := range grid[wd] {
			if count > 0 {
				cells = append(cells, domain.HeatmapCell{Weekday: wd, Hour: hour, Count: count})
			}
		}
	}
	return cells
}

func bucketize(c *participants.Corpus, key func(domain.ParsedMessage) (string, int)) []domain.BucketRow {
	counts := make(map[string]int)
	for _, m := range c.Messages() {
		if !m.TimestampValid {
			continue
		}
		k, n := key(m)
		counts[k] += n
	}
	return sortedBuckets(counts)
}

func sortedBuckets(counts map[string]int) []domain.BucketRow {
	rows := make([]domain.BucketRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, domain.BucketRow{Key: k, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
	return rows
}
