// Package interrupt reports reading progress when the process is
// interrupted, so the user can resume from the same word.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rsvp/internal/console"
	"rsvp/internal/session"
)

// ProgressSource is read once when the interrupt arrives.
type ProgressSource interface {
	Snapshot() session.Snapshot
}

// Reporter prints the resume hint and ends the process on interrupt.
type Reporter struct {
	Progress ProgressSource
	Out      io.Writer

	// Exit ends the process. If nil, os.Exit is used.
	Exit func(code int)

	// Logger for interrupt events. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Signals to watch. If empty, os.Interrupt and SIGTERM.
	Signals []os.Signal
}

// Watch registers for the interrupt signals and returns a function that
// unregisters them. The first signal received calls Fire.
func (r *Reporter) Watch(ctx context.Context) (stop func()) {
	signals := r.Signals
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			r.logger().Debug("signal received", "signal", sig.String())
			r.Fire()
		case <-done:
		case <-ctx.Done():
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

// Fire writes the resume hint for the current progress and exits with
// status 0.
func (r *Reporter) Fire() {
	snap := r.Progress.Snapshot()
	if err := Report(r.Out, snap); err != nil {
		r.logger().Error("write resume hint", "err", err)
	}
	r.logger().Debug("exiting on interrupt", "emitted", snap.Emitted, "position", snap.Position())

	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(0)
}

func (r *Reporter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Report writes the two-line resume hint. The flag value is the absolute
// word position, so it already includes any earlier resume point.
func Report(w io.Writer, snap session.Snapshot) error {
	p := console.New(w)
	if err := p.Title("Interrupted after %d %s.", snap.Emitted, plural(snap.Emitted, "word", "words")); err != nil {
		return err
	}
	return p.Hint("To continue from here, run again with: ", fmt.Sprintf("-r %d", snap.Position()))
}

func plural(n uint64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
