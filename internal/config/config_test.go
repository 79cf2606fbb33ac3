package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"rsvp/internal/pace"
)

func envOf(vars map[string]string) Getenv {
	return func(key string) string { return vars[key] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("rsvp", []string{"-f", "book.txt"}, envOf(nil), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Config{
		FileName:          "book.txt",
		WordsPerMinute:    100,
		AverageWordLength: 4.7,
		Policy:            pace.PolicyPunctuation,
		LogLevel:          "warn",
	}
	if cfg != want {
		t.Errorf("Parse = %+v, want %+v", cfg, want)
	}
}

func TestParse_LongAndShortNames(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-f", "a.txt", "-w", "300", "-r", "12", "-l", "5.5", "-p", "length"}},
		{"long", []string{"--file-name", "a.txt", "--words-count", "300", "--resume", "12", "--word-length", "5.5", "--policy", "length"}},
		{"mixed with equals", []string{"--file-name=a.txt", "-w=300", "--resume=12", "-l", "5.5", "--policy=length"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("rsvp", tt.args, envOf(nil), &bytes.Buffer{})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.FileName != "a.txt" || cfg.WordsPerMinute != 300 || cfg.ResumePoint != 12 ||
				cfg.AverageWordLength != 5.5 || cfg.Policy != pace.PolicyLength {
				t.Errorf("Parse = %+v", cfg)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr error
	}{
		{"missing file", []string{"-w", "200"}, nil, ErrInvalid},
		{"zero wpm", []string{"-f", "a.txt", "-w", "0"}, nil, pace.ErrInvalidRate},
		{"short word length", []string{"-f", "a.txt", "-l", "0.9"}, nil, pace.ErrInvalidWordLength},
		{"unknown policy", []string{"-f", "a.txt", "-p", "warp"}, nil, pace.ErrUnknownPolicy},
		{"negative wpm", []string{"-f", "a.txt", "-w", "-5"}, nil, ErrUsage},
		{"not a number", []string{"-f", "a.txt", "-r", "ten"}, nil, ErrUsage},
		{"unknown flag", []string{"-f", "a.txt", "--speed", "3"}, nil, ErrUsage},
		{"stray argument", []string{"-f", "a.txt", "extra"}, nil, ErrUsage},
		{"bad env wpm", []string{"-f", "a.txt"}, map[string]string{EnvWordsPerMinute: "fast"}, ErrInvalid},
		{"zero env wpm", []string{"-f", "a.txt"}, map[string]string{EnvWordsPerMinute: "0"}, pace.ErrInvalidRate},
		{"bad log level", []string{"-f", "a.txt"}, map[string]string{EnvLogLevel: "chatty"}, ErrInvalid},
		{"help", []string{"-h"}, nil, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("rsvp", tt.args, envOf(tt.env), &bytes.Buffer{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ZeroRateIsConfigError(t *testing.T) {
	_, err := Parse("rsvp", []string{"-f", "a.txt", "-w", "0"}, envOf(nil), &bytes.Buffer{})
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, pace.ErrInvalidRate) {
		t.Errorf("Parse err = %v, want ErrInvalid wrapping ErrInvalidRate", err)
	}
}

func TestParse_Precedence(t *testing.T) {
	profile := writeFile(t, "profile.yaml", "words_per_minute: 150\nword_length: 5\npolicy: length\nlog_level: info\n")
	env := map[string]string{EnvWordsPerMinute: "250"}

	cfg, err := Parse("rsvp", []string{"-f", "a.txt", "-c", profile}, envOf(env), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.WordsPerMinute != 250 {
		t.Errorf("env should beat profile: wpm = %d", cfg.WordsPerMinute)
	}
	if cfg.AverageWordLength != 5 || cfg.Policy != pace.PolicyLength || cfg.LogLevel != "info" {
		t.Errorf("profile values not applied: %+v", cfg)
	}

	cfg, err = Parse("rsvp", []string{"-f", "a.txt", "-c", profile, "-w", "400", "-p", "punctuation"}, envOf(env), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.WordsPerMinute != 400 || cfg.Policy != pace.PolicyPunctuation {
		t.Errorf("flags should beat env and profile: %+v", cfg)
	}
}

func TestLoadProfile(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, "p.yaml", "wpm: 100\n")
		if _, err := LoadProfile(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("LoadProfile err = %v, want ErrInvalid", err)
		}
	})
	t.Run("empty", func(t *testing.T) {
		path := writeFile(t, "p.yaml", "")
		p, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("LoadProfile: %v", err)
		}
		cfg := Default()
		p.Apply(&cfg)
		if cfg != Default() {
			t.Errorf("empty profile changed config: %+v", cfg)
		}
	})
	t.Run("missing", func(t *testing.T) {
		if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadProfile err = %v, want not exist", err)
		}
	})
	t.Run("explicit zero", func(t *testing.T) {
		path := writeFile(t, "p.yaml", "words_per_minute: 0\n")
		p, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("LoadProfile: %v", err)
		}
		cfg := Default()
		p.Apply(&cfg)
		if cfg.WordsPerMinute != 0 {
			t.Errorf("wpm = %d, want 0", cfg.WordsPerMinute)
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	const key = "RSVP_TEST_DOTENV_POLICY"
	path := writeFile(t, ".env", key+"=length\n")
	t.Cleanup(func() { os.Unsetenv(key) })

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "length" {
		t.Errorf("%s = %q, want length", key, got)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envOf(map[string]string{
		EnvWordsPerMinute: "320",
		EnvWordLength:     "6.1",
		EnvPolicy:         "length",
		EnvLogLevel:       "debug",
		EnvLogFile:        "/tmp/rsvp.log",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.WordsPerMinute != 320 || cfg.AverageWordLength != 6.1 || cfg.Policy != "length" ||
		cfg.LogLevel != "debug" || cfg.LogFile != "/tmp/rsvp.log" {
		t.Errorf("ApplyEnv = %+v", cfg)
	}

	if err := cfg.ApplyEnv(envOf(map[string]string{EnvWordLength: "long"})); !errors.Is(err, ErrInvalid) {
		t.Errorf("ApplyEnv err = %v, want ErrInvalid", err)
	}
}
