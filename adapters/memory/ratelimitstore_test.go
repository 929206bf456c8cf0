package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/artpar/billmock/adapters/clock"
	"github.com/artpar/billmock/adapters/memory"
	"github.com/artpar/billmock/domain/ratelimit"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newLimiter(t *testing.T, cfg ratelimit.Config, clk *clock.Fake) *memory.SlidingWindowLimiter {
	t.Helper()
	l := memory.NewSlidingWindowLimiter(cfg, clk)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAllow_ThirdRequestWithinWindowRejected(t *testing.T) {
	clk := clock.NewFake(baseTime)
	l := newLimiter(t, ratelimit.Config{Limit: 2, Window: time.Second}, clk)

	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("first request should be allowed")
	}
	clk.Advance(100 * time.Millisecond)
	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("second request should be allowed")
	}
	clk.Advance(100 * time.Millisecond)
	if l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("third request within 1s should be rejected")
	}

	// A different key is unaffected.
	if !l.Allow("10.0.0.2", clk.Now()).Allowed {
		t.Fatal("other client should be allowed")
	}

	// After the window elapses the key is admitted again.
	clk.Advance(time.Second)
	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("request after the window should be allowed")
	}
}

func TestReset(t *testing.T) {
	clk := clock.NewFake(baseTime)
	l := newLimiter(t, ratelimit.Config{Limit: 1, Window: time.Second}, clk)

	l.Allow("10.0.0.1", clk.Now())
	if l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("second request should be rejected")
	}

	l.Reset()
	if l.Len() != 0 {
		t.Errorf("len = %d after reset, want 0", l.Len())
	}
	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("request after reset should be allowed")
	}
}

func TestSetConfig_RaisesLimitForRecordedKeys(t *testing.T) {
	clk := clock.NewFake(baseTime)
	l := newLimiter(t, ratelimit.Config{Limit: 2, Window: time.Second}, clk)

	l.Allow("10.0.0.1", clk.Now())
	l.Allow("10.0.0.1", clk.Now())
	if l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("third request should be rejected at limit 2")
	}

	l.SetConfig(ratelimit.Config{Limit: 5, Window: time.Second})
	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("request should be allowed after the limit was raised")
	}

	// Zero values are ignored, the previous config stays.
	l.SetConfig(ratelimit.Config{})
	if !l.Allow("10.0.0.1", clk.Now()).Allowed {
		t.Fatal("request should still run under limit 5")
	}
}

func TestSweep_EvictsIdleKeys(t *testing.T) {
	clk := clock.NewFake(baseTime)
	l := newLimiter(t, ratelimit.Config{Limit: 2, Window: 10 * time.Millisecond}, clk)

	l.Allow("10.0.0.1", clk.Now())
	l.Allow("10.0.0.2", clk.Now())
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}

	// Age both windows past the sweep cutoff and let the ticker fire.
	clk.Advance(time.Second)
	deadline := time.Now().Add(2 * time.Second)
	for l.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if l.Len() != 0 {
		t.Errorf("len = %d after sweep, want 0", l.Len())
	}
}

func TestAllow_ConcurrentSingleSlot(t *testing.T) {
	clk := clock.NewFake(baseTime)
	l := newLimiter(t, ratelimit.Config{Limit: 1, Window: time.Minute}, clk)

	const workers = 16
	var wg sync.WaitGroup
	admitted := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared", clk.Now()).Allowed {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	if n := len(admitted); n != 1 {
		t.Errorf("admitted %d concurrent requests for one slot, want 1", n)
	}
}
