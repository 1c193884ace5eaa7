package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/redirectctl/internal/redirect"
	"github.com/five82/redirectctl/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store with
// the feed's current page. After failures it waits with exponential backoff;
// a feed wake-up skips the wait. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, feed *Feed, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-feed.wake:
				timer.Stop()
			case <-timer.C:
			}
			_ = refresh(ctx, store, feed, logger)
		}
	}()
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, feed *Feed, logger zerolog.Logger) error {
	page, cursor, err := feed.fetch(ctx)
	// The UI moved to another page while this one was in flight.
	if !redirect.SameCursor(cursor, feed.Cursor()) {
		logger.Debug().Str("cursor", cursor).Msg("dropping stale redirect page")
		return nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		store.Update(nil, err)
		logger.Warn().Err(err).Str("cursor", cursor).Msg("redirect poll failed")
		return err
	}
	if page.Cursor == "" {
		page.Cursor = cursor
	}
	store.Update(&page, nil)
	logger.Debug().
		Str("cursor", page.Cursor).
		Str("next_cursor", page.NextCursor).
		Int("items", len(page.RedirectList)).
		Msg("redirect page refreshed")
	return nil
}
