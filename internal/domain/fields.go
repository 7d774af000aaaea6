package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Loose — строковое поле записи экспорта, которое принимает JSON-значение любого типа.
// Строка берётся как есть, null даёт пустую строку, остальные значения
// (числа, true/false, объекты) сохраняются JSON-литералом.
type Loose string

// UnmarshalJSON реализует json.Unmarshaler и никогда не возвращает ошибку.
func (s *Loose) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull):
		*s = ""
	case trimmed[0] == '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			*s = ""
			return nil
		}
		*s = Loose(v)
	default:
		*s = Loose(trimmed)
	}
	return nil
}

// String возвращает значение поля.
func (s Loose) String() string { return string(s) }

// LooseInt — целочисленное поле, которое принимает число или строку с числом.
// Остальные значения дают 0.
type LooseInt int

// UnmarshalJSON реализует json.Unmarshaler и никогда не возвращает ошибку.
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	*n = 0
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil
		}
		trimmed = []byte(strings.TrimSpace(v))
	}
	if v, err := strconv.ParseInt(string(trimmed), 10, 0); err == nil {
		*n = LooseInt(v)
	}
	return nil
}

// Marker фиксирует наличие ключа в записи, в том числе со значением null.
// Экспорт пишет "forwarded_from": null, если автор оригинала удалён или скрыт.
type Marker struct {
	Set bool
	Raw json.RawMessage
}

// UnmarshalJSON вызывается для любого значения ключа, поэтому Set означает "ключ есть".
func (m *Marker) UnmarshalJSON(data []byte) error {
	m.Set = true
	m.Raw = append(m.Raw[:0], data...)
	return nil
}

// MarshalJSON возвращает исходное значение или null.
func (m Marker) MarshalJSON() ([]byte, error) {
	if len(m.Raw) == 0 {
		return jsonNull, nil
	}
	return m.Raw, nil
}
