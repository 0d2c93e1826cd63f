package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/luminaai/lumina/internal/state"
)

const defaultPollInterval = 10 * time.Second

// StartPoller launches a background goroutine that silently refreshes the
// library at a fixed cadence while any record is still pending or
// processing, so generation status progresses without user action. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("poller stopped")
				return
			case <-ticker.C:
			}
			if store.View().AnyInProgress() {
				store.Refresh(ctx)
			}
		}
	}()
}
