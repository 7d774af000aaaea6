// Package replygraph строит взвешенный граф ответов между участниками чата.
package replygraph

import (
	"telegram-chat-stats/internal/core/participants"
	"telegram-chat-stats/internal/domain"
)

// pair — неупорядоченная пара авторов; a <= b.
type pair struct {
	a, b string
}

func newPair(x, y string) pair {
	if x > y {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// Build возвращает граф ответов по корпусу участников.
//
// Узлы — все авторы корпуса в порядке первого появления. Ребро между двумя авторами
// накапливает ответы в обе стороны; направление ребра берётся из первого ответа.
// Ответы на отсутствующие в корпусе сообщения и ответы самому себе не учитываются.
func Build(c *participants.Corpus) domain.Graph {
	msgs := c.Messages()

	// id сообщения -> индекс в корпусе; при повторе id остаётся первое вхождение.
	index := make(map[int]int, len(msgs))
	for i, m := range msgs {
		if _, ok := index[m.ID]; !ok {
			index[m.ID] = i
		}
	}

	var order []pair
	links := make(map[pair]*domain.Link)
	for _, m := range msgs {
		if m.ReplyTo == 0 {
			continue
		}
		target, ok := index[m.ReplyTo]
		if !ok {
			continue
		}
		to := msgs[target].FromID
		if to == m.FromID {
			continue
		}
		key := newPair(m.FromID, to)
		link, ok := links[key]
		if !ok {
			link = &domain.Link{SourceID: m.FromID, TargetID: to}
			links[key] = link
			order = append(order, key)
		}
		link.Weight++
	}

	g := domain.Graph{
		Nodes: make([]domain.Node, 0, len(c.Authors())),
		Links: make([]domain.Link, 0, len(order)),
	}
	degree := make(map[string]int)
	for _, key := range order {
		l := *links[key]
		g.Links = append(g.Links, l)
		degree[l.SourceID] += l.Weight
		degree[l.TargetID] += l.Weight
	}

	counts := make(map[string]int)
	for _, m := range msgs {
		counts[m.FromID]++
	}
	for _, id := range c.Authors() {
		g.Nodes = append(g.Nodes, domain.Node{
			ID:          id,
			DisplayName: c.DisplayName(id),
			Messages:    counts[id],
			Degree:      degree[id],
		})
	}
	return g
}
