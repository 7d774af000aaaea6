package normalize

import (
	"strings"

	"telegram-chat-stats/internal/domain"
)

// Канонические типы медиа.
const (
	MediaSticker    = "sticker"
	MediaPhoto      = "photo"
	MediaVideo      = "video"
	MediaGIF        = "gif"
	MediaVoice      = "voice"
	MediaRoundVideo = "round_video"
	MediaAudio      = "audio"
	MediaFile       = "file"
	MediaPoll       = "poll"
	MediaContact    = "contact"
	MediaLocation   = "location"
	MediaGame       = "game"
	MediaStory      = "story"
	MediaOther      = "other"
)

// mediaSynonyms сводит значения media_type из разных версий экспорта к одному ключу.
var mediaSynonyms = map[string]string{
	"sticker":       MediaSticker,
	"photo":         MediaPhoto,
	"image":         MediaPhoto,
	"video":         MediaVideo,
	"video_file":    MediaVideo,
	"gif":           MediaGIF,
	"animation":     MediaGIF,
	"voice":         MediaVoice,
	"voice_message": MediaVoice,
	"video_message": MediaRoundVideo,
	"round_video":   MediaRoundVideo,
	"audio":         MediaAudio,
	"audio_file":    MediaAudio,
	"file":          MediaFile,
	"document":      MediaFile,
	"poll":          MediaPoll,
	"contact":       MediaContact,
	"location":      MediaLocation,
	"game":          MediaGame,
	"story":         MediaStory,
}

// MediaKind возвращает канонический тип медиа сообщения или пустую строку для чистого текста.
// Неизвестные значения media_type попадают в "other".
func MediaKind(m domain.Message) string {
	if mt := strings.ToLower(strings.TrimSpace(m.MediaType.String())); mt != "" {
		if kind, ok := mediaSynonyms[mt]; ok {
			return kind
		}
		return MediaOther
	}

	switch {
	case m.Photo != "":
		return MediaPhoto
	case domain.Present(m.Poll):
		return MediaPoll
	case domain.Present(m.LocationInfo):
		return MediaLocation
	case domain.Present(m.ContactInfo):
		return MediaContact
	case m.GameTitle != "":
		return MediaGame
	case m.File != "":
		if strings.HasPrefix(strings.ToLower(m.MimeType.String()), "image/") {
			return MediaPhoto
		}
		return MediaFile
	}
	return ""
}
