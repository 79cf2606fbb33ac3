// Package config assembles the reader settings from flags, environment,
// an optional .env file and an optional YAML profile.
//
// Later sources win: defaults, then the profile, then the environment, then
// flags given on the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"

	"rsvp/internal/logging"
	"rsvp/internal/pace"
)

// Defaults.
const (
	DefaultWordsPerMinute    = 100
	DefaultAverageWordLength = 4.7 // English
	DefaultPolicy            = pace.PolicyPunctuation
	DefaultLogLevel          = "warn"
)

// Environment variables.
const (
	EnvWordsPerMinute = "RSVP_WORDS_PER_MINUTE"
	EnvWordLength     = "RSVP_WORD_LENGTH"
	EnvPolicy         = "RSVP_POLICY"
	EnvLogLevel       = "RSVP_LOG_LEVEL"
	EnvLogFile        = "RSVP_LOG_FILE"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid configuration")

	// ErrUsage wraps command line parse failures.
	ErrUsage = errors.New("usage error")
)

// Config holds the settings of one reading session.
type Config struct {
	FileName          string
	WordsPerMinute    uint64
	ResumePoint       uint64
	AverageWordLength float64
	Policy            string
	ConfigFile        string
	LogLevel          string
	LogFile           string
}

func Default() Config {
	return Config{
		WordsPerMinute:    DefaultWordsPerMinute,
		AverageWordLength: DefaultAverageWordLength,
		Policy:            DefaultPolicy,
		LogLevel:          DefaultLogLevel,
	}
}

// Validate rejects settings that would make pacing divide by zero, and a
// missing file name.
func (c Config) Validate() error {
	if c.FileName == "" {
		return fmt.Errorf("%w: file name is required (-f, --file-name)", ErrInvalid)
	}
	if _, err := c.NewPolicy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// NewPolicy builds the pacing policy the settings describe.
func (c Config) NewPolicy() (pace.Policy, error) {
	return pace.NewPolicy(c.Policy, c.WordsPerMinute, c.AverageWordLength)
}

// Getenv looks up an environment variable; os.Getenv fits.
type Getenv func(key string) string

// LoadDotEnv loads variables from the given files, or .env when none are
// given. Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with the RSVP_* variables that are set.
func (c *Config) ApplyEnv(getenv Getenv) error {
	if v := getenv(EnvWordsPerMinute); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a whole number", ErrInvalid, EnvWordsPerMinute, v)
		}
		c.WordsPerMinute = n
	}
	if v := getenv(EnvWordLength); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvWordLength, v)
		}
		c.AverageWordLength = f
	}
	if v := getenv(EnvPolicy); v != "" {
		c.Policy = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	return nil
}

// flag names; each long name has a short alias bound to the same value.
var aliases = map[string]string{
	"f": "file-name",
	"w": "words-count",
	"r": "resume",
	"l": "word-length",
	"p": "policy",
	"c": "config",
}

// Parse builds a Config from args (without the program name), the
// environment and the profile named by -c. Usage and parse errors are
// written to output.
func Parse(name string, args []string, getenv Getenv, output io.Writer) (Config, error) {
	var flags Config
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(output)

	for _, n := range []string{"f", "file-name"} {
		fset.StringVar(&flags.FileName, n, "", "Path to the text file to read (required)")
	}
	for _, n := range []string{"w", "words-count"} {
		fset.Uint64Var(&flags.WordsPerMinute, n, DefaultWordsPerMinute, "Words displayed per minute")
	}
	for _, n := range []string{"r", "resume"} {
		fset.Uint64Var(&flags.ResumePoint, n, 0, "Number of words to skip (resume point)")
	}
	for _, n := range []string{"l", "word-length"} {
		fset.Float64Var(&flags.AverageWordLength, n, DefaultAverageWordLength, "Average word length of the text's language")
	}
	for _, n := range []string{"p", "policy"} {
		fset.StringVar(&flags.Policy, n, DefaultPolicy, "Pacing policy: punctuation or length")
	}
	for _, n := range []string{"c", "config"} {
		fset.StringVar(&flags.ConfigFile, n, "", "YAML profile with default settings")
	}

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fset.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fset.Arg(0))
	}

	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) {
		if long, ok := aliases[f.Name]; ok {
			set[long] = true
			return
		}
		set[f.Name] = true
	})

	cfg := Default()
	if flags.ConfigFile != "" {
		p, err := LoadProfile(flags.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		p.Apply(&cfg)
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}

	cfg.FileName = flags.FileName
	cfg.ResumePoint = flags.ResumePoint
	cfg.ConfigFile = flags.ConfigFile
	if set["words-count"] {
		cfg.WordsPerMinute = flags.WordsPerMinute
	}
	if set["word-length"] {
		cfg.AverageWordLength = flags.AverageWordLength
	}
	if set["policy"] {
		cfg.Policy = flags.Policy
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
