package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ContentKind is the kind of payload an operator answer carries.
type ContentKind int

const (
	KindUnsupported ContentKind = iota
	KindText
	KindSticker
	KindAudio
	KindLocation
	KindPhoto
	KindDocument
	KindVoice
)

func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSticker:
		return "sticker"
	case KindAudio:
		return "audio"
	case KindLocation:
		return "location"
	case KindPhoto:
		return "photo"
	case KindDocument:
		return "document"
	case KindVoice:
		return "voice"
	}
	return "unsupported"
}

func contentKindOf(m *tgbotapi.Message) ContentKind {
	switch {
	case m.Text != "":
		return KindText
	case m.Sticker != nil:
		return KindSticker
	case m.Audio != nil:
		return KindAudio
	case m.Location != nil:
		return KindLocation
	case len(m.Photo) > 0:
		return KindPhoto
	case m.Document != nil:
		return KindDocument
	case m.Voice != nil:
		return KindVoice
	}
	return KindUnsupported
}

// mediaConfig re-sends the media of m to chatID by file id. Photos use the
// first size Telegram lists. kind must come from contentKindOf(m) and be a media kind.
func mediaConfig(kind ContentKind, m *tgbotapi.Message, chatID int64) tgbotapi.Chattable {
	switch kind {
	case KindSticker:
		return tgbotapi.NewSticker(chatID, tgbotapi.FileID(m.Sticker.FileID))
	case KindAudio:
		return tgbotapi.NewAudio(chatID, tgbotapi.FileID(m.Audio.FileID))
	case KindLocation:
		return tgbotapi.NewLocation(chatID, m.Location.Latitude, m.Location.Longitude)
	case KindPhoto:
		return tgbotapi.NewPhoto(chatID, tgbotapi.FileID(m.Photo[0].FileID))
	case KindDocument:
		return tgbotapi.NewDocument(chatID, tgbotapi.FileID(m.Document.FileID))
	case KindVoice:
		return tgbotapi.NewVoice(chatID, tgbotapi.FileID(m.Voice.FileID))
	}
	panic(fmt.Sprintf("mediaConfig: %s is not a media kind", kind))
}
