// Package session streams the words of a text one at a time, pacing each
// one and skipping a resume prefix.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"rsvp/internal/text"
)

// Scanner buffer sizes. Lines longer than maxLineSize fail the session.
const (
	initialBufSize = 64 * 1024
	maxLineSize    = 8 * 1024 * 1024
)

// ErrInvalidText is wrapped by DecodeError.
var ErrInvalidText = errors.New("line is not valid UTF-8 text")

// DecodeError reports the line that could not be decoded.
type DecodeError struct {
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, ErrInvalidText)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidText }

// State is the phase a session is in.
type State int32

const (
	Skipping State = iota
	Emitting
	Done
)

func (s State) String() string {
	switch s {
	case Skipping:
		return "skipping"
	case Emitting:
		return "emitting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Pacer holds the caller on a word for its display time.
type Pacer interface {
	Pace(ctx context.Context, word string) error
}

type Options struct {
	// ResumePoint is the number of leading words to skip.
	ResumePoint uint64

	// Logger for session events. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Pauser, if set, is consulted before every shown word.
	Pauser *Pauser
}

// Stats summarizes a run.
type Stats struct {
	Skipped uint64
	Emitted uint64
	Elapsed time.Duration
}

// Session walks a text word by word. It is not safe for concurrent Run
// calls; Progress and State may be read from other goroutines.
type Session struct {
	pacer    Pacer
	out      io.Writer
	opts     Options
	logger   *slog.Logger
	progress *Progress

	state     atomic.Int32
	remaining uint64
	skipped   uint64
	elapsed   time.Duration
}

// New returns a session that writes each shown word to out on its own line.
func New(pacer Pacer, out io.Writer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		pacer:     pacer,
		out:       out,
		opts:      opts,
		logger:    logger,
		progress:  NewProgress(opts.ResumePoint),
		remaining: opts.ResumePoint,
	}
	if opts.ResumePoint > 0 {
		s.state.Store(int32(Skipping))
	} else {
		s.state.Store(int32(Emitting))
	}
	return s
}

func (s *Session) Progress() *Progress { return s.progress }

func (s *Session) State() State { return State(s.state.Load()) }

// Stats is meaningful once Run has returned.
func (s *Session) Stats() Stats {
	return Stats{
		Skipped: s.skipped,
		Emitted: s.progress.Emitted(),
		Elapsed: s.elapsed,
	}
}

// Run reads r line by line until it is exhausted. Each word past the resume
// point is written out, counted and paced, in file order.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	start := time.Now()
	defer func() { s.elapsed = time.Since(start) }()

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, initialBufSize)
	scanner.Buffer(buf, maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return &DecodeError{Line: lineNo}
		}
		for word := range text.Words(string(line)) {
			if err := s.step(ctx, word); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lineNo+1, err)
	}

	s.state.Store(int32(Done))
	s.logger.Debug("session finished",
		"lines", lineNo,
		"skipped", s.skipped,
		"emitted", s.progress.Emitted(),
		"elapsed", time.Since(start),
	)
	return nil
}

func (s *Session) step(ctx context.Context, word string) error {
	if s.remaining > 0 {
		s.remaining--
		s.skipped++
		if s.remaining == 0 {
			s.state.Store(int32(Emitting))
			s.logger.Debug("resume point reached", "skipped", s.skipped)
		}
		return nil
	}

	if err := s.opts.Pauser.WaitIfPaused(ctx); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(s.out, word); err != nil {
		return fmt.Errorf("write word: %w", err)
	}
	s.progress.Inc()
	return s.pacer.Pace(ctx, word)
}
