// Package ports defines the interfaces between the request pipeline and
// its adapters. Interfaces are accepted, concrete types returned.
package ports

import (
	"time"

	"github.com/artpar/billmock/domain/ratelimit"
)

// Clock abstracts time so tests can run on a fixed or stepped clock.
type Clock interface {
	Now() time.Time
}

// RateLimiter admits or rejects a request for a client key at an instant.
// Allow must be atomic per key: concurrent calls may not both observe a
// single free slot and both be admitted.
type RateLimiter interface {
	Allow(key string, now time.Time) ratelimit.CheckResult

	// Reset clears all tracked keys. Used between independent test
	// scenarios, never during request handling.
	Reset()
}
