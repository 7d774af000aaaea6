package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// ErrNoData возвращается, когда входные данные не являются JSON.
var ErrNoData = errors.New("no data loaded")

// JsonParser реализует интерфейс Parser для разбора JSON данных.
// Разбор терпим к форме: корректный JSON любой другой структуры даёт пустой чат,
// а элементы messages, не являющиеся объектами, пропускаются.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

// exportEnvelope — верхний уровень выгрузки; поля разбираются по отдельности.
type exportEnvelope struct {
	Name     json.RawMessage `json:"name"`
	Type     json.RawMessage `json:"type"`
	ID       json.RawMessage `json:"id"`
	Messages json.RawMessage `json:"messages"`
}

// Parse преобразует срез байт с JSON в структуру ExportedChat.
func (p *JsonParser) Parse(data []byte) (*domain.ExportedChat, error) {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w: %w", ErrNoData, err)
	}

	chat := &domain.ExportedChat{Messages: []domain.Message{}}

	var env exportEnvelope
	if err := json.Unmarshal(root, &env); err != nil {
		// Корректный JSON, но не объект.
		return chat, nil
	}
	_ = json.Unmarshal(env.Name, &chat.Name)
	_ = json.Unmarshal(env.Type, &chat.Type)
	_ = json.Unmarshal(env.ID, &chat.ID)

	var records []json.RawMessage
	if err := json.Unmarshal(env.Messages, &records); err != nil {
		return chat, nil
	}
	for _, rec := range records {
		// Пропускаются только записи, которые не являются объектами;
		// поля неожиданного типа разбираются терпимо и не отбрасывают запись.
		if trimmed := bytes.TrimSpace(rec); len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var msg domain.Message
		if err := json.Unmarshal(rec, &msg); err != nil {
			continue
		}
		chat.Messages = append(chat.Messages, msg)
	}
	return chat, nil
}
