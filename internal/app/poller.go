package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/pick/internal/source"
	"github.com/five82/pick/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that reloads one list at a
// fixed cadence, backing off exponentially while the loader fails. It
// returns immediately; the caller is expected to have done the first load.
func StartPoller(ctx context.Context, store *state.Store, name string, loader source.Loader, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(ctx, store, name, loader, logger); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh loads one list into the store. A load cut short by ctx is not
// recorded as a failure.
func refresh(ctx context.Context, store *state.Store, name string, loader source.Loader, logger *slog.Logger) error {
	items, err := loader.Load(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		store.Update(name, nil, err)
		logger.Warn("list refresh failed",
			slog.String("list", name),
			slog.String("error", err.Error()),
		)
		return err
	}
	store.Update(name, items, nil)
	logger.Debug("list refreshed",
		slog.String("list", name),
		slog.Int("items", len(items)),
		slog.Uint64("version", store.Version(name)),
	)
	return nil
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures && d < maxBackoff; i++ {
		d *= 2
	}
	if d > maxBackoff {
		d = max(maxBackoff, base)
	}
	return d
}
