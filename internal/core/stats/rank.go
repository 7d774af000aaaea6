// Package stats содержит чистые агрегаты над корпусом сообщений участников.
//
// Все функции принимают *participants.Corpus и не изменяют его. Ранжированные списки
// упорядочены по убыванию метрики; при равенстве сохраняется порядок первого появления
// ключа во входных данных. Пустой корпус или limit <= 0 дают пустой (не nil) срез.
package stats

import (
	"sort"
)

// tally считает значения по ключам, запоминая порядок первого появления ключа.
type tally[K comparable] struct {
	order  []K
	counts map[K]int
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(key K, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

type entry[K comparable] struct {
	key   K
	count int
}

// ranked возвращает записи по убыванию счётчика, сохраняя порядок первого появления при равенстве.
func (t *tally[K]) ranked() []entry[K] {
	out := make([]entry[K], 0, len(t.order))
	for _, k := range t.order {
		out = append(out, entry[K]{key: k, count: t.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	return out
}

// clamp возвращает длину результата для заданного limit.
func clamp(limit, n int) int {
	if limit <= 0 {
		return 0
	}
	if limit > n {
		return n
	}
	return limit
}

// sortedLabels возвращает ключи словаря реакций в лексикографическом порядке,
// чтобы порядок первого появления не зависел от обхода map.
func sortedLabels(reactions map[string]int) []string {
	labels := make([]string, 0, len(reactions))
	for label := range reactions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// labelSet строит множество меток; пустой набор означает "все метки".
func labelSet(labels []string) map[string]struct{} {
	if len(labels) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// reactionSum возвращает сумму реакций сообщения, ограниченную множеством меток.
func reactionSum(reactions map[string]int, total int, set map[string]struct{}) int {
	if set == nil {
		return total
	}
	sum := 0
	for label, n := range reactions {
		if _, ok := set[label]; ok {
			sum += n
		}
	}
	return sum
}
