package memory

import (
	"context"
	"sync"
	"time"

	"telegram-contact-bot/internal/domain"
	"telegram-contact-bot/internal/domain/ports/repository"
)

var _ repository.ForwardLinkRepository = (*ForwardLinkRepo)(nil)

type linkEntry struct {
	origin    int64
	expiresAt time.Time
}

// ForwardLinkRepo keeps forward links in process memory. Expired entries are
// dropped lazily on lookup, swept on every Save and by PurgeExpired.
type ForwardLinkRepo struct {
	mu    sync.Mutex
	links map[int]linkEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewForwardLinkRepo(ttl time.Duration) *ForwardLinkRepo {
	return &ForwardLinkRepo{
		links: make(map[int]linkEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *ForwardLinkRepo) Save(ctx context.Context, operatorMsgID int, originChatID int64) error {
	if operatorMsgID == 0 || originChatID == 0 {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.purge(now)
	r.links[operatorMsgID] = linkEntry{origin: originChatID, expiresAt: now.Add(r.ttl)}
	return nil
}

func (r *ForwardLinkRepo) Find(ctx context.Context, operatorMsgID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.links[operatorMsgID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if r.expired(e, r.now()) {
		delete(r.links, operatorMsgID)
		return 0, domain.ErrNotFound
	}
	return e.origin, nil
}

// PurgeExpired drops every expired link and reports how many were removed.
func (r *ForwardLinkRepo) PurgeExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purge(r.now()), nil
}

func (r *ForwardLinkRepo) purge(now time.Time) int {
	n := 0
	for id, e := range r.links {
		if r.expired(e, now) {
			delete(r.links, id)
			n++
		}
	}
	return n
}

func (r *ForwardLinkRepo) expired(e linkEntry, now time.Time) bool {
	return r.ttl > 0 && !now.Before(e.expiresAt)
}
