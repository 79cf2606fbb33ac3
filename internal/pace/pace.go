// Package pace turns words into display delays.
//
// Two strategies are available. The punctuation policy spreads the per-word
// budget over letters and adds a small bump for punctuated words. The length
// policy scales the per-word budget by the word's Complexity.
package pace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rsvp/internal/text"
)

var (
	ErrInvalidRate       = errors.New("words per minute must be greater than zero")
	ErrInvalidWordLength = errors.New("average word length must be at least 1")
	ErrUnknownPolicy     = errors.New("unknown pacing policy")
)

// Policy names accepted by NewPolicy.
const (
	PolicyPunctuation = "punctuation"
	PolicyLength      = "length"
)

// Policy maps a word to the time it stays on screen.
type Policy interface {
	Delay(word string) time.Duration
}

// intenseBonus is added on top of the per-letter delay of punctuated words.
const intenseBonus = 4 * time.Millisecond

// msPerWord returns the whole-millisecond budget of one word at wpm.
func msPerWord(wpm uint64) (uint64, error) {
	if wpm == 0 {
		return 0, ErrInvalidRate
	}
	return 60000 / wpm, nil
}

// PunctuationPolicy paces words by letter count.
type PunctuationPolicy struct {
	msPerLetter uint64
}

func NewPunctuationPolicy(wpm uint64, averageWordLength float64) (*PunctuationPolicy, error) {
	perWord, err := msPerWord(wpm)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(averageWordLength) || math.IsInf(averageWordLength, 0) || averageWordLength < 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWordLength, averageWordLength)
	}
	letters := math.Floor(averageWordLength)
	if letters > float64(perWord) {
		return &PunctuationPolicy{}, nil
	}
	return &PunctuationPolicy{msPerLetter: perWord / uint64(letters)}, nil
}

func (p *PunctuationPolicy) Delay(word string) time.Duration {
	d := time.Duration(p.msPerLetter*uint64(text.CharCount(word))) * time.Millisecond
	if IsIntense(word) {
		d += intenseBonus
	}
	return d
}

// multiplierTenths holds the per-Complexity scale of the word budget in
// tenths, so 0.7 is 7.
var multiplierTenths = [...]uint64{
	Small:        9,
	BelowAverage: 7,
	Average:      7,
	AboveAverage: 7,
	VeryHigh:     24,
}

// LengthPolicy paces words by Complexity.
type LengthPolicy struct {
	msPerWord uint64
}

func NewLengthPolicy(wpm uint64) (*LengthPolicy, error) {
	perWord, err := msPerWord(wpm)
	if err != nil {
		return nil, err
	}
	return &LengthPolicy{msPerWord: perWord}, nil
}

func (p *LengthPolicy) Delay(word string) time.Duration {
	return p.DelayFor(Classify(word))
}

// DelayFor returns the delay of a word already classified as c.
func (p *LengthPolicy) DelayFor(c Complexity) time.Duration {
	if c < Small || c > VeryHigh {
		c = VeryHigh
	}
	return time.Duration(p.msPerWord*multiplierTenths[c]/10) * time.Millisecond
}

// NewPolicy builds the policy registered under name.
func NewPolicy(name string, wpm uint64, averageWordLength float64) (Policy, error) {
	switch name {
	case "", PolicyPunctuation:
		return NewPunctuationPolicy(wpm, averageWordLength)
	case PolicyLength:
		return NewLengthPolicy(wpm)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d on a timer. It returns ctx.Err() if ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pacer holds the session on each word for as long as its Policy says.
type Pacer struct {
	policy Policy
	sleep  SleepFunc
}

// NewPacer returns a Pacer using policy. A nil sleep means Sleep.
func NewPacer(policy Policy, sleep SleepFunc) *Pacer {
	if sleep == nil {
		sleep = Sleep
	}
	return &Pacer{policy: policy, sleep: sleep}
}

// Pace blocks for the delay of word.
func (p *Pacer) Pace(ctx context.Context, word string) error {
	return p.sleep(ctx, p.policy.Delay(word))
}

// Policy returns the strategy the Pacer uses.
func (p *Pacer) Policy() Policy { return p.policy }
