package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"rsvp/internal/config"
	"rsvp/internal/console"
	"rsvp/internal/interrupt"
	"rsvp/internal/logging"
	"rsvp/internal/pace"
	"rsvp/internal/session"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	errOut := console.New(stderr)

	if err := config.LoadDotEnv(); err != nil {
		errOut.Error(err)
		return 1
	}

	cfg, err := config.Parse("rsvp", args, os.Getenv, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, config.ErrUsage):
		return 2
	case err != nil:
		errOut.Error(err)
		return 1
	}

	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile, stderr)
	if err != nil {
		errOut.Error(err)
		return 1
	}
	defer closer.Close()

	policy, err := cfg.NewPolicy()
	if err != nil {
		errOut.Error(err)
		return 1
	}

	pauser := session.NewPauser()
	sess := session.New(pace.NewPacer(policy, nil), stdout, session.Options{
		ResumePoint: cfg.ResumePoint,
		Logger:      logger,
		Pauser:      pauser,
	})

	ctx := context.Background()
	reporter := &interrupt.Reporter{
		Progress: sess.Progress(),
		Out:      stdout,
		Logger:   logger,
	}
	defer reporter.Watch(ctx)()
	defer interrupt.WatchPause(ctx, pauser, logger)()

	f, err := os.Open(cfg.FileName)
	if err != nil {
		errOut.Error(fmt.Errorf("open %q: %w", cfg.FileName, err))
		return 1
	}
	defer f.Close()

	logger.Info("reading",
		"file", cfg.FileName,
		"wpm", cfg.WordsPerMinute,
		"policy", cfg.Policy,
		"resume", cfg.ResumePoint,
	)

	if err := sess.Run(ctx, f); err != nil {
		errOut.Error(err)
		return 1
	}

	stats := sess.Stats()
	logger.Info("finished",
		"skipped", stats.Skipped,
		"emitted", stats.Emitted,
		"elapsed", stats.Elapsed,
	)
	return 0
}
