package repository

import "context"

// ForwardLinkRepository remembers which user chat a message forwarded into the
// operator chat came from. It backs up Message.ForwardFrom, which Telegram
// leaves empty when the sender hides their account in forwards.
type ForwardLinkRepository interface {
	Save(ctx context.Context, operatorMsgID int, originChatID int64) error
	// Find returns domain.ErrNotFound when no link is known.
	Find(ctx context.Context, operatorMsgID int) (int64, error)
}
