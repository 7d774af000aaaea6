package domain

import "time"

// AuthorRow — строка рейтинга авторов по числу сообщений или реакций.
type AuthorRow struct {
	Rank        int    `json:"rank"`
	AuthorID    string `json:"author_id"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

// MessageRow — строка рейтинга сообщений по сумме реакций.
type MessageRow struct {
	Rank              int    `json:"rank"`
	MessageID         int    `json:"message_id"`
	AuthorID          string `json:"author_id"`
	AuthorDisplayName string `json:"author_display_name"`
	Text              string `json:"text"`
	ReactionTotal     int    `json:"reaction_total"`
}

// BucketRow — значение временного ряда (день или ISO-неделя).
type BucketRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// HeatmapCell — ячейка тепловой карты "день недели × час".
// Weekday: 0 — понедельник, 6 — воскресенье.
type HeatmapCell struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Count   int `json:"count"`
}

// EmojiRow — строка рейтинга реакций.
type EmojiRow struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WordRow — строка частотного словаря.
type WordRow struct {
	Rank  int    `json:"rank"`
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// LongMessageRow — строка рейтинга самых длинных сообщений.
type LongMessageRow struct {
	Rank              int    `json:"rank"`
	MessageID         int    `json:"message_id"`
	AuthorID          string `json:"author_id"`
	AuthorDisplayName string `json:"author_display_name"`
	Text              string `json:"text"`
	Length            int    `json:"length"`
}

// MediaRow — количество сообщений одного канонического типа медиа.
type MediaRow struct {
	Rank  int    `json:"rank"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// WeeksRow — автор и количество различных ISO-недель, в которые он писал.
type WeeksRow struct {
	Rank        int    `json:"rank"`
	AuthorID    string `json:"author_id"`
	DisplayName string `json:"display_name"`
	Weeks       int    `json:"weeks"`
}

// Node — участник в графе ответов.
type Node struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Messages    int    `json:"messages"`
	Degree      int    `json:"degree"`
}

// Link — неориентированная связь между участниками.
// Weight — сумма ответов в обе стороны; SourceID/TargetID сохраняют направление первого ответа пары.
type Link struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Weight   int    `json:"weight"`
}

// Graph — социальный граф ответов.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Summary содержит общие показатели по выгрузке.
type Summary struct {
	ChatName            string    `json:"chat_name"`
	RawRecords          int       `json:"raw_records"`
	ParsedMessages      int       `json:"parsed_messages"`
	ParticipantMessages int       `json:"participant_messages"`
	Authors             int       `json:"authors"`
	InvalidTimestamps   int       `json:"invalid_timestamps"`
	TotalReactions      int       `json:"total_reactions"`
	FirstMessageAt      time.Time `json:"first_message_at"`
	LastMessageAt       time.Time `json:"last_message_at"`
}

// Report объединяет все агрегаты, построенные по одной выгрузке.
type Report struct {
	Summary               Summary          `json:"summary"`
	TopAuthors            []AuthorRow      `json:"top_authors"`
	TopMessages           []MessageRow     `json:"top_messages"`
	TopAuthorsByReactions []AuthorRow      `json:"top_authors_by_reactions"`
	TopEmoji              []EmojiRow       `json:"top_emoji"`
	ReactionLabels        []string         `json:"reaction_labels"`
	Daily                 []BucketRow      `json:"daily"`
	TopDays               []BucketRow      `json:"top_days"`
	ReactionsDaily        []BucketRow      `json:"reactions_daily"`
	Weekly                []BucketRow      `json:"weekly"`
	Heatmap               []HeatmapCell    `json:"heatmap"`
	Words                 []WordRow        `json:"words"`
	LongestMessages       []LongMessageRow `json:"longest_messages"`
	Media                 []MediaRow       `json:"media"`
	WeeklyActiveAuthors   []BucketRow      `json:"weekly_active_authors"`
	WeeklyNewAuthors      []BucketRow      `json:"weekly_new_authors"`
	StableAuthors         []WeeksRow       `json:"stable_authors"`
	ReplyGraph            Graph            `json:"reply_graph"`
}

// ReportOptions задаёт параметры построения отчёта.
type ReportOptions struct {
	// Limit — длина ранжированных списков; <= 0 даёт пустые списки.
	Limit int
	// ReactionLabels ограничивает подсчёт реакций в TopMessages и TopAuthorsByReactions.
	// Пустой список означает все метки.
	ReactionLabels []string
	// Since и Until задают полуинтервал [Since, Until); нулевое значение не ограничивает.
	Since time.Time
	Until time.Time
	// Location — зона, в которой трактуются даты выгрузки без смещения.
	Location      *time.Location
	BotSuffixes   []string
	MinWordLength int
}
