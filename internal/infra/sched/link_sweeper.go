package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-contact-bot/internal/infra/metrics"
)

// Purger drops expired entries and reports how many went.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// LinkSweeper periodically purges expired forward links from a store that
// does not expire keys on its own.
type LinkSweeper struct {
	interval time.Duration
	store    Purger
	log      *zerolog.Logger
}

func NewLinkSweeper(interval time.Duration, store Purger, logger *zerolog.Logger) *LinkSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	sweepLog := logger.With().Str("component", "LinkSweeper").Logger()
	return &LinkSweeper{
		interval: interval,
		store:    store,
		log:      &sweepLog,
	}
}

// Run sweeps every interval until ctx is canceled.
func (w *LinkSweeper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting link sweeper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping link sweeper")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *LinkSweeper) sweep(ctx context.Context) {
	n, err := w.store.PurgeExpired(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("link sweep error")
		return
	}
	if n > 0 {
		metrics.IncForwardLinksExpired(n)
		w.log.Info().Int("count", n).Msg("expired forward links purged")
	}
}
