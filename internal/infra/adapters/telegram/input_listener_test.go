package telegram

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type namedHandler struct{ name string }

func (h *namedHandler) OnInputReceived(context.Context, *tgbotapi.Message) error { return nil }

func TestInputListenerConsumeOnce(t *testing.T) {
	l := NewInputListener()
	h := &namedHandler{name: "first"}
	l.ListenFor(42, h)

	got, ok := l.Consume(42)
	if !ok || got != h {
		t.Fatalf("Consume = %v, %v; want registered handler", got, ok)
	}
	if _, ok := l.Consume(42); ok {
		t.Fatalf("second Consume should find nothing")
	}
}

func TestInputListenerRemove(t *testing.T) {
	l := NewInputListener()
	l.ListenFor(42, &namedHandler{})
	l.Remove(42)
	if _, ok := l.Consume(42); ok {
		t.Fatalf("Consume after Remove should find nothing")
	}
	// removing an absent user is fine
	l.Remove(7)
}

func TestInputListenerOverwrite(t *testing.T) {
	l := NewInputListener()
	first, second := &namedHandler{name: "first"}, &namedHandler{name: "second"}
	l.ListenFor(42, first)
	l.ListenFor(42, second)

	got, ok := l.Consume(42)
	if !ok || got != second {
		t.Fatalf("expected the second handler, got %v", got)
	}
	if _, ok := l.Consume(42); ok {
		t.Fatalf("overwritten handler must not linger")
	}
}

func TestInputListenerUsersAreIndependent(t *testing.T) {
	l := NewInputListener()
	l.ListenFor(1, &namedHandler{})
	if _, ok := l.Consume(2); ok {
		t.Fatalf("user 2 has no registration")
	}
	if _, ok := l.Consume(1); !ok {
		t.Fatalf("user 1 registration lost")
	}
}

func TestInputListenerConcurrentConsume(t *testing.T) {
	l := NewInputListener()
	l.ListenFor(42, &namedHandler{})

	var hits int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := l.Consume(42); ok {
				atomic.AddInt32(&hits, 1)
			}
		}()
	}
	wg.Wait()
	if hits != 1 {
		t.Fatalf("registration consumed %d times, want 1", hits)
	}
}

func TestAnswerFunc(t *testing.T) {
	called := false
	var h AnswerHandler = AnswerFunc(func(ctx context.Context, m *tgbotapi.Message) error {
		called = m.Text == "hi"
		return nil
	})
	if err := h.OnInputReceived(context.Background(), &tgbotapi.Message{Text: "hi"}); err != nil || !called {
		t.Fatalf("AnswerFunc did not forward the call")
	}
}
