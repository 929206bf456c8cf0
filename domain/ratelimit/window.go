// Package ratelimit implements a sliding-window admission check over
// per-key request timestamps. All functions are pure and deterministic;
// callers own persistence and locking.
package ratelimit

import "time"

// Config holds sliding-window parameters (value type).
type Config struct {
	Limit  int           // admitted requests per trailing window
	Window time.Duration // trailing window size
}

// CheckResult is the outcome of one admission check (value type).
type CheckResult struct {
	Allowed    bool
	Remaining  int           // slots left in the window after this request
	RetryAfter time.Duration // time until a slot frees; zero when allowed
}

// Prune returns the timestamps still inside the trailing window ending at
// now. Input must be ordered oldest first; order is preserved.
func Prune(stamps []time.Time, cfg Config, now time.Time) []time.Time {
	cutoff := now.Add(-cfg.Window)
	for i, ts := range stamps {
		if ts.After(cutoff) {
			return stamps[i:]
		}
	}
	return stamps[:0]
}

// Check prunes expired timestamps and admits the request when fewer than
// cfg.Limit remain. The returned slice is the key's new window state:
// the pruned list, with now appended only when the request was admitted.
// Rejected requests are never recorded.
func Check(stamps []time.Time, cfg Config, now time.Time) (CheckResult, []time.Time) {
	recent := Prune(stamps, cfg, now)

	if len(recent) >= cfg.Limit {
		oldest := recent[0]
		return CheckResult{
			Allowed:    false,
			RetryAfter: oldest.Add(cfg.Window).Sub(now),
		}, recent
	}

	recent = append(recent, now)
	return CheckResult{
		Allowed:   true,
		Remaining: cfg.Limit - len(recent),
	}, recent
}
