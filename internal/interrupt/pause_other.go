//go:build !unix

package interrupt

import (
	"context"
	"log/slog"

	"rsvp/internal/session"
)

// WatchPause is a no-op where SIGUSR1 does not exist.
func WatchPause(_ context.Context, _ *session.Pauser, _ *slog.Logger) (stop func()) {
	return func() {}
}
