package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/domain"
)

func TestReactions(t *testing.T) {
	t.Run("Отсутствующие реакции дают пустой словарь", func(t *testing.T) {
		assert.Empty(t, Reactions(nil))
		assert.Empty(t, Reactions(json.RawMessage(`null`)))
		assert.Empty(t, Reactions(json.RawMessage(`"oops"`)))
		assert.NotNil(t, Reactions(nil))
	})

	t.Run("Словарь копируется с приведением значений", func(t *testing.T) {
		got := Reactions(json.RawMessage(`{"❤": 3, "👍": "2", "🔥": -4, "😢": "abc", "": 7, "🎉": 1.9}`))
		assert.Equal(t, map[string]int{"❤": 3, "👍": 2, "🔥": 0, "😢": 0, "🎉": 1}, got)
	})

	t.Run("Список событий суммируется по метке", func(t *testing.T) {
		got := Reactions(json.RawMessage(`[
			{"type": "emoji", "emoji": "👍", "count": 2},
			{"type": "emoji", "emoji": "👍", "count": 3},
			{"emoji": "❤", "count": 1},
			{"type": "emoji", "emoji": "", "count": 9}
		]`))
		assert.Equal(t, map[string]int{"👍": 5, "❤": 1}, got)
	})

	t.Run("Кастомные реакции не смешиваются с эмодзи", func(t *testing.T) {
		got := Reactions(json.RawMessage(`[
			{"type": "custom_emoji", "document_id": "stickers/party.webp", "count": 2},
			{"type": "custom_emoji", "custom_emoji_id": 5368324170671202286, "count": 1},
			{"type": "custom_emoji", "count": 4},
			{"type": "paid", "count": 10},
			{"type": "emoji", "emoji": "party", "count": 1},
			{"type": "custom_emoji", "document_id": "(File not included. Change data exporting settings to download.)", "count": 5},
			{"type": "custom_emoji", "document_id": "(File not included. Change data exporting settings to download.)", "custom_emoji_id": "777", "count": 6}
		]`))
		assert.Equal(t, map[string]int{
			"premium:party":               2,
			"premium:5368324170671202286": 1,
			"premium:unknown":             9,
			"premium:777":                 6,
			PaidLabel:                     10,
			"party":                       1,
		}, got)
	})

	t.Run("Битые элементы списка пропускаются", func(t *testing.T) {
		got := Reactions(json.RawMessage(`[42, "x", {"emoji": "👍", "count": 1}, {"emoji": "👍"}]`))
		assert.Equal(t, map[string]int{"👍": 1}, got)
	})

	t.Run("Сумма не зависит от представления", func(t *testing.T) {
		asMap := Reactions(json.RawMessage(`{"❤": 3, "👍": 1}`))
		asList := Reactions(json.RawMessage(`[{"emoji": "❤", "count": 3}, {"emoji": "👍", "count": 1}]`))
		assert.Equal(t, asMap, asList)
		assert.Equal(t, 4, Total(asMap))
		assert.Equal(t, Total(asMap), Total(asList))
	})
}

func TestText(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"строка", `"hello  world "`, "hello  world "},
		{"отсутствует", ``, ""},
		{"null", `null`, ""},
		{"сегменты", `["Hi ", {"type": "bold", "text": "there"}, ", ", {"type": "link", "text": "t.me"}]`, "Hi there, t.me"},
		{"некорректные сегменты", `["a", 5, {"type": "x"}, {"text": 7}, null, "b"]`, "ab"},
		{"число", `12`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(json.RawMessage(tc.raw)))
		})
	}
}

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	t.Run("Дата экспорта трактуется в заданной зоне", func(t *testing.T) {
		ts, ok := Timestamp("2024-01-01T10:00:00", "", loc)
		require.True(t, ok)
		assert.True(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc).Equal(ts))
		assert.Equal(t, 10, ts.Hour())
	})

	t.Run("RFC3339 приводится к зоне", func(t *testing.T) {
		ts, ok := Timestamp("2024-01-01T23:30:00Z", "", loc)
		require.True(t, ok)
		assert.Equal(t, 2, ts.Day())
		assert.Equal(t, 2, ts.Hour())
	})

	t.Run("Откат на date_unixtime", func(t *testing.T) {
		ts, ok := Timestamp("garbage", "1704092400", loc)
		require.True(t, ok)
		assert.Equal(t, int64(1704092400), ts.Unix())
	})

	t.Run("Некорректная дата не подменяется текущим временем", func(t *testing.T) {
		ts, ok := Timestamp("not a date", "", loc)
		assert.False(t, ok)
		assert.True(t, ts.IsZero())
	})
}

func TestMediaKind(t *testing.T) {
	cases := []struct {
		name string
		msg  domain.Message
		want string
	}{
		{"текст", domain.Message{}, ""},
		{"голосовое", domain.Message{MediaType: "voice_message"}, MediaVoice},
		{"синоним голосового", domain.Message{MediaType: "Voice"}, MediaVoice},
		{"видео-кружок", domain.Message{MediaType: "video_message"}, MediaRoundVideo},
		{"анимация", domain.Message{MediaType: "animation"}, MediaGIF},
		{"неизвестный тип", domain.Message{MediaType: "hologram"}, MediaOther},
		{"фото без media_type", domain.Message{Photo: "photos/photo_1.jpg"}, MediaPhoto},
		{"файл", domain.Message{File: "files/report.pdf", MimeType: "application/pdf"}, MediaFile},
		{"картинка файлом", domain.Message{File: "files/a.png", MimeType: "image/png"}, MediaPhoto},
		{"опрос", domain.Message{Poll: json.RawMessage(`{"question": "?"}`)}, MediaPoll},
		{"null-опрос не медиа", domain.Message{Poll: json.RawMessage(`null`)}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MediaKind(tc.msg))
		})
	}
}

func TestMessage(t *testing.T) {
	t.Run("Служебные записи исключаются", func(t *testing.T) {
		_, ok := Message(domain.Message{ID: 1, Type: "service", From: "Alice", FromID: "user1"}, time.UTC)
		assert.False(t, ok)
	})

	t.Run("Сообщение нормализуется", func(t *testing.T) {
		raw := domain.Message{
			ID:               2,
			Type:             "message",
			Date:             "2024-01-02T10:00:00",
			From:             "Alice",
			FromID:           "user1",
			Text:             json.RawMessage(`["see ", {"type": "link", "text": "here"}]`),
			Reactions:        json.RawMessage(`[{"type": "emoji", "emoji": "👍", "count": 2}]`),
			ReplyToMessageID: 1,
			MediaType:        "Sticker",
			ForwardedFrom:    domain.Marker{Set: true, Raw: json.RawMessage(`"Channel"`)},
		}
		pm, ok := Message(raw, time.UTC)
		require.True(t, ok)
		assert.Equal(t, "see here", pm.Text)
		assert.Equal(t, 2, pm.TotalReactions)
		assert.True(t, pm.TimestampValid)
		assert.Equal(t, 1, pm.ReplyTo)
		assert.Equal(t, MediaSticker, pm.MediaKind)
		assert.Equal(t, "sticker", pm.MediaType)
		assert.True(t, pm.Forwarded)
	})

	t.Run("Некорректная дата помечается, сообщение остаётся", func(t *testing.T) {
		pm, ok := Message(domain.Message{ID: 3, Type: "message", Date: "???"}, time.UTC)
		require.True(t, ok)
		assert.False(t, pm.TimestampValid)
		assert.True(t, pm.Timestamp.IsZero())
	})

	t.Run("Поля неожиданного типа деградируют, сообщение остаётся", func(t *testing.T) {
		decode := func(raw string) domain.ParsedMessage {
			t.Helper()
			var m domain.Message
			require.NoError(t, json.Unmarshal([]byte(raw), &m))
			pm, ok := Message(m, time.UTC)
			require.True(t, ok)
			return pm
		}

		pm := decode(`{"id": 1, "type": "message", "date": 1704103200, "from_id": "user1", "text": "a"}`)
		assert.False(t, pm.TimestampValid)
		assert.Equal(t, "a", pm.Text)

		pm = decode(`{"id": 2, "type": "message", "date_unixtime": 1704103200, "from_id": "user1"}`)
		require.True(t, pm.TimestampValid)
		assert.Equal(t, int64(1704103200), pm.Timestamp.Unix())

		pm = decode(`{"id": 3, "type": "message", "media_type": 7, "reactions": {"👍": 3}}`)
		assert.Equal(t, MediaOther, pm.MediaKind)
		assert.Equal(t, 3, pm.TotalReactions)

		pm = decode(`{"id": 4, "type": "message", "reply_to_message_id": "3", "forwarded_from": null}`)
		assert.Equal(t, 3, pm.ReplyTo)
		assert.True(t, pm.Forwarded)

		pm = decode(`{"id": 5, "type": "message", "saved_from": null}`)
		assert.True(t, pm.Forwarded)

		pm = decode(`{"id": 6, "type": "message"}`)
		assert.False(t, pm.Forwarded)
	})

	t.Run("Batch сохраняет порядок и отбрасывает служебные записи", func(t *testing.T) {
		got := Batch([]domain.Message{
			{ID: 1, Type: "message"},
			{ID: 2, Type: "service"},
			{ID: 3},
		}, time.UTC)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	})
}
