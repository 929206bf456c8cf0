// Package memory provides in-memory adapter implementations.
package memory

import (
	"sync"
	"time"

	"github.com/artpar/billmock/domain/ratelimit"
	"github.com/artpar/billmock/ports"
)

// SlidingWindowLimiter tracks request timestamps per client key and
// implements ports.RateLimiter. A background sweep, ticking once per
// window, prunes stale timestamps and deletes keys whose windows have
// emptied, so idle clients do not leak memory.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	cfg     ratelimit.Config
	clock   ports.Clock
	sweep   *time.Ticker
	done    chan struct{}
}

// NewSlidingWindowLimiter creates a limiter and starts its sweep loop.
// Call Close to stop the sweep; it never blocks shutdown.
func NewSlidingWindowLimiter(cfg ratelimit.Config, clk ports.Clock) *SlidingWindowLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 2
	}

	l := &SlidingWindowLimiter{
		entries: make(map[string][]time.Time),
		cfg:     cfg,
		clock:   clk,
		done:    make(chan struct{}),
	}

	l.sweep = time.NewTicker(cfg.Window)
	go l.sweepLoop()

	return l
}

// Allow records the request at now unless the key has already used every
// slot in the trailing window. The read-prune-check-append sequence runs
// under the lock, so one free slot admits exactly one concurrent caller.
func (l *SlidingWindowLimiter) Allow(key string, now time.Time) ratelimit.CheckResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, next := ratelimit.Check(l.entries[key], l.cfg, now)
	l.entries[key] = next
	return result
}

// SetConfig swaps the window parameters. Config hot reload calls this;
// recorded timestamps are kept and judged against the new window on the
// next check.
func (l *SlidingWindowLimiter) SetConfig(cfg ratelimit.Config) {
	if cfg.Window <= 0 || cfg.Limit <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg.Window != l.cfg.Window {
		l.sweep.Reset(cfg.Window)
	}
	l.cfg = cfg
}

// Reset drops every tracked key. Test scenarios use it to start clean.
func (l *SlidingWindowLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string][]time.Time)
}

// Len returns the number of tracked keys (for tests).
func (l *SlidingWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Close stops the sweep goroutine.
func (l *SlidingWindowLimiter) Close() error {
	close(l.done)
	l.sweep.Stop()
	return nil
}

func (l *SlidingWindowLimiter) sweepLoop() {
	for {
		select {
		case <-l.sweep.C:
			l.evictStale()
		case <-l.done:
			return
		}
	}
}

// evictStale prunes every key's window and removes keys left empty.
func (l *SlidingWindowLimiter) evictStale() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, stamps := range l.entries {
		recent := ratelimit.Prune(stamps, l.cfg, now)
		if len(recent) == 0 {
			delete(l.entries, key)
		} else {
			l.entries[key] = recent
		}
	}
}

// Ensure interface compliance.
var _ ports.RateLimiter = (*SlidingWindowLimiter)(nil)
