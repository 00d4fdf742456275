package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AnswerHandler receives the next message a user sends after being asked for input.
type AnswerHandler interface {
	OnInputReceived(ctx context.Context, message *tgbotapi.Message) error
}

// AnswerFunc adapts a function to AnswerHandler.
type AnswerFunc func(ctx context.Context, message *tgbotapi.Message) error

func (f AnswerFunc) OnInputReceived(ctx context.Context, message *tgbotapi.Message) error {
	return f(ctx, message)
}

// InputListener holds at most one pending AnswerHandler per user.
// All operations take the same lock, so a registration is consumed at most once
// even when several messages from one user are handled concurrently.
type InputListener struct {
	mu      sync.Mutex
	pending map[int64]AnswerHandler
}

func NewInputListener() *InputListener {
	return &InputListener{pending: make(map[int64]AnswerHandler)}
}

// ListenFor makes h the consumer of userID's next message, replacing any previous handler.
func (l *InputListener) ListenFor(userID int64, h AnswerHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[userID] = h
}

// Consume removes and returns the handler registered for userID.
func (l *InputListener) Consume(userID int64) (AnswerHandler, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.pending[userID]
	if ok {
		delete(l.pending, userID)
	}
	return h, ok
}

// Remove drops the registration for userID without invoking it.
func (l *InputListener) Remove(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, userID)
}
