package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// TypeMessage — тип записи экспорта, соответствующий обычному сообщению.
const TypeMessage = "message"

// ExportedChat представляет корневую структуру файла экспорта.
type ExportedChat struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	ID       int64     `json:"id"`
	Messages []Message `json:"messages"`
}

// Message представляет одну "сырую" запись экспорта.
// Поля с нестабильной схемой хранятся как json.RawMessage и разбираются нормализатором,
// скалярные поля терпимы к типу значения: запись-объект разбирается всегда.
type Message struct {
	ID               LooseInt        `json:"id"`
	Type             Loose           `json:"type"`
	Date             Loose           `json:"date"`
	DateUnixtime     Loose           `json:"date_unixtime"`
	From             Loose           `json:"from"`
	FromID           Loose           `json:"from_id"`
	Text             json.RawMessage `json:"text"` // Может быть строкой или массивом
	TextEntities     json.RawMessage `json:"text_entities"`
	Reactions        json.RawMessage `json:"reactions"` // Может быть объектом или массивом событий
	ReplyToMessageID LooseInt        `json:"reply_to_message_id"`
	MediaType        Loose           `json:"media_type"`
	MimeType         Loose           `json:"mime_type"`
	Photo            Loose           `json:"photo"`
	File             Loose           `json:"file"`
	Poll             json.RawMessage `json:"poll"`
	LocationInfo     json.RawMessage `json:"location_information"`
	ContactInfo      json.RawMessage `json:"contact_information"`
	ForwardedFrom    Marker          `json:"forwarded_from"`
	SavedFrom        Marker          `json:"saved_from"`
	GameTitle        Loose           `json:"game_title"`
}

// Present сообщает, задано ли необязательное JSON-поле (null считается отсутствием).
func Present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// ParsedMessage — нормализованное представление одной записи экспорта.
// После создания не изменяется.
type ParsedMessage struct {
	ID             int            `json:"id"`
	Type           string         `json:"type"`
	From           string         `json:"from"`
	FromID         string         `json:"from_id"`
	Date           string         `json:"date"`
	Text           string         `json:"text"`
	Reactions      map[string]int `json:"reactions"`
	TotalReactions int            `json:"total_reactions"`
	Timestamp      time.Time      `json:"timestamp"`
	TimestampValid bool           `json:"timestamp_valid"`
	ReplyTo        int            `json:"reply_to_message_id,omitempty"`
	MediaType      string         `json:"media_type,omitempty"`
	MediaKind      string         `json:"media_kind,omitempty"`
	Forwarded      bool           `json:"forwarded"`
}
