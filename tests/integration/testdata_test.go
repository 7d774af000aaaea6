package integration

// chatExport содержит все варианты схемы, встречающиеся в выгрузках Telegram Desktop:
// текст строкой и массивом, реакции объектом и списком, служебные записи,
// ответы на удалённые сообщения и записи без корректной даты.
const chatExport = `{
	"name": "Test Chat",
	"type": "private_group",
	"id": 123456789,
	"messages": [
		{"id": 1, "type": "service", "date": "2023-01-01T09:00:00", "actor": "Test User", "actor_id": "user123456", "action": "create_group"},
		{"id": 2, "type": "message", "date": "2023-01-01T10:00:00", "from": "Test User", "from_id": "user123456", "text": "Hello, world!", "reactions": [{"type": "emoji", "emoji": "👍", "count": 3}]},
		{"id": 3, "type": "message", "date": "2023-01-01T10:05:00", "from": "Мария", "from_id": "user777", "text": ["Привет, ", {"type": "mention", "text": "@test"}], "reply_to_message_id": 2, "reactions": {"❤": 2}},
		{"id": 4, "type": "message", "date": "2023-01-02T18:30:00", "from": "Мария", "from_id": "user777", "text": "", "media_type": "sticker", "reply_to_message_id": 999},
		{"id": 5, "type": "message", "date": "2023-01-09T11:00:00", "from": "Test User", "from_id": "user123456", "text": "Hello again, world", "reply_to_message_id": 3},
		{"id": 6, "type": "message", "date": "2023-01-09T11:01:00", "from": "Test User", "from_id": "user123456", "text": "self", "reply_to_message_id": 5},
		{"id": 7, "type": "message", "date": "2023-01-09T12:00:00", "from": "Channel", "from_id": "channel42", "text": "announcement"},
		{"id": 8, "type": "message", "date": "broken", "from": "Мария", "from_id": "user777", "text": "без даты"}
	]
}`
