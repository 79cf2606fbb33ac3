package session

import (
	"context"
	"sync"
	"sync/atomic"
)

// Pauser holds a session between words while paused. A nil *Pauser never
// pauses.
type Pauser struct {
	paused atomic.Bool
	chMu   sync.Mutex
	ch     chan struct{} // closed on resume
}

func NewPauser() *Pauser {
	return &Pauser{ch: make(chan struct{})}
}

func (p *Pauser) SetPaused(v bool) {
	p.chMu.Lock()
	defer p.chMu.Unlock()
	p.setLocked(v)
}

// Toggle flips the pause state and returns the new one.
func (p *Pauser) Toggle() bool {
	p.chMu.Lock()
	defer p.chMu.Unlock()
	v := !p.paused.Load()
	p.setLocked(v)
	return v
}

func (p *Pauser) Paused() bool {
	return p != nil && p.paused.Load()
}

func (p *Pauser) setLocked(v bool) {
	if v {
		p.paused.Store(true)
		return
	}
	if !p.paused.Swap(false) {
		return
	}
	close(p.ch)
	p.ch = make(chan struct{})
}

// WaitIfPaused returns at once when not paused, otherwise when resumed or
// when ctx is done.
func (p *Pauser) WaitIfPaused(ctx context.Context) error {
	if p == nil || !p.paused.Load() {
		return nil
	}
	p.chMu.Lock()
	if !p.paused.Load() {
		p.chMu.Unlock()
		return nil
	}
	ch := p.ch
	p.chMu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
