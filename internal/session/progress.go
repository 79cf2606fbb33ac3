package session

import "sync"

// Progress counts the words a session has shown. It is written by the
// session and may be read from any goroutine.
type Progress struct {
	mu      sync.Mutex
	base    uint64
	emitted uint64
}

// NewProgress returns a counter for a session that skipped base words.
func NewProgress(base uint64) *Progress {
	return &Progress{base: base}
}

func (p *Progress) Inc() {
	p.mu.Lock()
	p.emitted++
	p.mu.Unlock()
}

// Emitted returns the number of words shown so far.
func (p *Progress) Emitted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emitted
}

// Snapshot is a consistent copy of a Progress.
type Snapshot struct {
	Base    uint64
	Emitted uint64
}

// Position is the absolute word offset in the file, usable as the next
// resume point.
func (s Snapshot) Position() uint64 { return s.Base + s.Emitted }

func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{Base: p.base, Emitted: p.emitted}
}
