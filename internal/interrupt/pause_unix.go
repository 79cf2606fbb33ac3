//go:build unix

package interrupt

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rsvp/internal/session"
)

// WatchPause toggles pauser on every SIGUSR1 until stop is called.
func WatchPause(ctx context.Context, pauser *session.Pauser, logger *slog.Logger) (stop func()) {
	if logger == nil {
		logger = slog.Default()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigCh:
				paused := pauser.Toggle()
				logger.Info("pause toggled", "paused", paused)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}
