package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text склеивает поле text экспорта в одну строку.
// Строка возвращается как есть; в массиве сегментов берутся строки и поле text объектов,
// без добавления разделителей. Всё прочее даёт пустую строку.
func Text(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var segments []json.RawMessage
		if err := json.Unmarshal(trimmed, &segments); err != nil {
			return ""
		}
		var sb strings.Builder
		for _, seg := range segments {
			sb.WriteString(segmentText(seg))
		}
		return sb.String()
	}
	return ""
}

func segmentText(seg json.RawMessage) string {
	trimmed := bytes.TrimSpace(seg)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{':
		var run struct {
			Text json.RawMessage `json:"text"`
		}
		if err := json.Unmarshal(trimmed, &run); err == nil {
			var s string
			if err := json.Unmarshal(run.Text, &s); err == nil {
				return s
			}
		}
	}
	return ""
}
