package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-contact-bot/internal/domain"
)

func TestForwardLinkRepoSaveFind(t *testing.T) {
	ctx := context.Background()
	repo := NewForwardLinkRepo(time.Hour)

	if _, err := repo.Find(ctx, 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Save(ctx, 10, 42); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Find(ctx, 10)
	if err != nil || got != 42 {
		t.Fatalf("Find = %d, %v; want 42", got, err)
	}
	// overwrite
	if err := repo.Save(ctx, 10, 43); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := repo.Find(ctx, 10); got != 43 {
		t.Fatalf("Find after overwrite = %d", got)
	}
}

func TestForwardLinkRepoExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewForwardLinkRepo(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	if err := repo.Save(ctx, 1, 100); err != nil {
		t.Fatalf("Save: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.Find(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired link, got %v", err)
	}

	if err := repo.Save(ctx, 2, 200); err != nil {
		t.Fatalf("Save: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if err := repo.Save(ctx, 3, 300); err != nil {
		t.Fatalf("Save: %v", err)
	}
	repo.mu.Lock()
	_, stale := repo.links[2]
	repo.mu.Unlock()
	if stale {
		t.Fatalf("expected Save to sweep expired link 2")
	}
}

func TestForwardLinkRepoRejectsZeroIDs(t *testing.T) {
	repo := NewForwardLinkRepo(time.Minute)
	if err := repo.Save(context.Background(), 0, 1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := repo.Save(context.Background(), 1, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestForwardLinkRepoPurgeExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewForwardLinkRepo(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	for id := 1; id <= 3; id++ {
		if err := repo.Save(ctx, id, int64(id*10)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	now = now.Add(30 * time.Second)
	if err := repo.Save(ctx, 4, 40); err != nil {
		t.Fatalf("Save: %v", err)
	}

	now = now.Add(45 * time.Second)
	n, err := repo.PurgeExpired(ctx)
	if err != nil || n != 3 {
		t.Fatalf("PurgeExpired = %d, %v; want 3", n, err)
	}
	if got, err := repo.Find(ctx, 4); err != nil || got != 40 {
		t.Fatalf("fresh link lost: %d, %v", got, err)
	}
}
