package telegram

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

var _ BotClient = (*NoopBotClient)(nil)

// NoopBotClient implements BotClient without talking to Telegram. It logs and
// records every outgoing call and hands out increasing message ids, and it
// delivers whatever updates are pushed into it.
type NoopBotClient struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	nextID  int
	updates chan tgbotapi.Update
	stopped bool
	log     *zerolog.Logger

	// FailOn, when set, lets a call fail before it is recorded.
	FailOn func(c tgbotapi.Chattable) error
}

func NewNoopBotClient(logger *zerolog.Logger) *NoopBotClient {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &NoopBotClient{nextID: 1000, updates: make(chan tgbotapi.Update, 100), log: logger}
}

func (b *NoopBotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := b.fail(c); err != nil {
		return tgbotapi.Message{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	chatID := chatIDOf(c)
	b.log.Debug().Str("type", fmt.Sprintf("%T", c)).Int64("chat_id", chatID).Int("msg_id", b.nextID).Msg("[noop-telegram] send")
	return tgbotapi.Message{MessageID: b.nextID, Chat: &tgbotapi.Chat{ID: chatID}}, nil
}

func (b *NoopBotClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := b.fail(c); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.log.Debug().Str("type", fmt.Sprintf("%T", c)).Msg("[noop-telegram] request")
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *NoopBotClient) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *NoopBotClient) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

// Push queues an update for GetUpdatesChan readers.
func (b *NoopBotClient) Push(u tgbotapi.Update) { b.updates <- u }

// Sent returns a copy of every recorded call, in order.
func (b *NoopBotClient) Sent() []tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]tgbotapi.Chattable, len(b.sent))
	copy(out, b.sent)
	return out
}

// Reset forgets recorded calls.
func (b *NoopBotClient) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = nil
}

func (b *NoopBotClient) fail(c tgbotapi.Chattable) error {
	if b.FailOn == nil {
		return nil
	}
	return b.FailOn(c)
}

func chatIDOf(c tgbotapi.Chattable) int64 {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.ChatID
	case tgbotapi.ForwardConfig:
		return v.ChatID
	case tgbotapi.StickerConfig:
		return v.ChatID
	case tgbotapi.AudioConfig:
		return v.ChatID
	case tgbotapi.LocationConfig:
		return v.ChatID
	case tgbotapi.PhotoConfig:
		return v.ChatID
	case tgbotapi.DocumentConfig:
		return v.ChatID
	case tgbotapi.VoiceConfig:
		return v.ChatID
	case tgbotapi.EditMessageTextConfig:
		return v.ChatID
	}
	return 0
}
