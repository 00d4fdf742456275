package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"telegram-contact-bot/internal/domain"
	"telegram-contact-bot/internal/domain/ports/repository"
)

var _ repository.ForwardLinkRepository = (*ForwardLinkRepo)(nil)

// ForwardLinkRepo stores operator message id -> origin chat id as plain keys
// with a TTL, so links survive a bot restart.
type ForwardLinkRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewForwardLinkRepo(client RedisClient, ttl time.Duration) *ForwardLinkRepo {
	return &ForwardLinkRepo{client: client, ttl: ttl}
}

func (r *ForwardLinkRepo) linkKey(operatorMsgID int) string {
	return fmt.Sprintf("fwd_link:%d", operatorMsgID)
}

func (r *ForwardLinkRepo) Save(ctx context.Context, operatorMsgID int, originChatID int64) error {
	if operatorMsgID == 0 || originChatID == 0 {
		return domain.ErrInvalidArgument
	}
	return r.client.Set(ctx, r.linkKey(operatorMsgID), strconv.FormatInt(originChatID, 10), r.ttl)
}

func (r *ForwardLinkRepo) Find(ctx context.Context, operatorMsgID int) (int64, error) {
	v, err := r.client.Get(ctx, r.linkKey(operatorMsgID))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt forward link %d: %w", operatorMsgID, err)
	}
	return id, nil
}
