package reembed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports reembedding progress to a writer as batches of
// documents complete. Safe for concurrent use.
type ProgressTracker struct {
	out      io.Writer
	total    int
	done     int
	every    int
	reported int
	begun    time.Time
	running  bool
	mu       sync.Mutex
}

// NewProgressTracker creates a tracker that writes to out, reporting once
// per every documents until total is reached. out is typically os.Stderr.
func NewProgressTracker(out io.Writer, total, every int) *ProgressTracker {
	return &ProgressTracker{
		out:   out,
		total: total,
		every: every,
	}
}

// Start resets the counters and begins timing.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.begun = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Update sets the number of documents processed so far.
func (p *ProgressTracker) Update(done int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.advanceTo(done)
}

// Increment adds delta to the number of documents processed so far.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.advanceTo(p.done + delta)
}

// Finish forces the count to total and writes a final report on its own line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = p.total
	p.report()
	fmt.Fprintln(p.out)
}

// Elapsed returns the time since Start was called, or zero before it.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return 0
	}
	return time.Since(p.begun)
}

// advanceTo moves the counter, capped at total, and reports when a
// reporting boundary is crossed. Must be called with the lock held.
func (p *ProgressTracker) advanceTo(done int) {
	if done > p.total {
		done = p.total
	}
	p.done = done

	if p.done-p.reported >= p.every {
		p.report()
		p.reported = p.done
	}
}

// report writes one progress line. Must be called with the lock held.
func (p *ProgressTracker) report() {
	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100
	}
	rate := float64(p.done) / time.Since(p.begun).Seconds()

	fmt.Fprintf(p.out, "\rReembedded %d/%d documents (%.1f%%) at %.1f documents/s",
		p.done, p.total, percentage, rate)
}
