package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestNewRateLimiter(t *testing.T) {
	tests := []struct {
		name           string
		maxCalls       int
		windowDuration time.Duration
		wantMaxCalls   int
		wantWindow     time.Duration
	}{
		{
			name:           "positive calls with minute window",
			maxCalls:       10,
			windowDuration: time.Minute,
			wantMaxCalls:   10,
			wantWindow:     time.Minute,
		},
		{
			name:           "zero calls defaults to 1",
			maxCalls:       0,
			windowDuration: time.Minute,
			wantMaxCalls:   1,
			wantWindow:     time.Minute,
		},
		{
			name:           "negative calls defaults to 1",
			maxCalls:       -5,
			windowDuration: time.Minute,
			wantMaxCalls:   1,
			wantWindow:     time.Minute,
		},
		{
			name:           "zero duration defaults to minute",
			maxCalls:       10,
			windowDuration: 0,
			wantMaxCalls:   10,
			wantWindow:     time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.maxCalls, tt.windowDuration, nil)
			if rl.maxCalls != tt.wantMaxCalls {
				t.Errorf("NewRateLimiter() maxCalls = %d, want %d", rl.maxCalls, tt.wantMaxCalls)
			}
			if rl.windowDuration != tt.wantWindow {
				t.Errorf("NewRateLimiter() windowDuration = %v, want %v", rl.windowDuration, tt.wantWindow)
			}
			if rl.now == nil {
				t.Error("NewRateLimiter() clock should default to time.Now")
			}
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name          string
		maxCalls      int
		numCalls      int
		wantErrors    int
		wantSuccesses int
	}{
		{name: "allow calls within limit", maxCalls: 5, numCalls: 5, wantErrors: 0, wantSuccesses: 5},
		{name: "reject calls exceeding limit", maxCalls: 3, numCalls: 5, wantErrors: 2, wantSuccesses: 3},
		{name: "one over limit", maxCalls: 10, numCalls: 11, wantErrors: 1, wantSuccesses: 10},
		{name: "single call limit", maxCalls: 1, numCalls: 2, wantErrors: 1, wantSuccesses: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.maxCalls, time.Minute, nil)
			ctx := context.Background()
			errs := 0
			successes := 0

			for i := 0; i < tt.numCalls; i++ {
				if err := rl.Allow(ctx); err != nil {
					if !errors.Is(err, ErrRateLimitExceeded) {
						t.Errorf("Allow() error = %v, want ErrRateLimitExceeded", err)
					}
					errs++
				} else {
					successes++
				}
			}

			if errs != tt.wantErrors {
				t.Errorf("Allow() got %d errors, want %d", errs, tt.wantErrors)
			}
			if successes != tt.wantSuccesses {
				t.Errorf("Allow() got %d successes, want %d", successes, tt.wantSuccesses)
			}
		})
	}
}

func TestRateLimiter_Allow_Concurrent(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rl.Allow(ctx); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 5 {
		t.Errorf("Allow() concurrent got %d successes, want 5", successes)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimiter(3, 2*time.Second, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := rl.Allow(ctx); err != nil {
			t.Fatalf("Allow() call %d failed unexpectedly: %v", i+1, err)
		}
		clock.Advance(500 * time.Millisecond)
	}

	if err := rl.Allow(ctx); !errors.Is(err, ErrRateLimitExceeded) {
		t.Errorf("Allow() 4th call should fail, got: %v", err)
	}

	// first call is now 2.1s old
	clock.Advance(600 * time.Millisecond)
	if got := rl.Remaining(); got != 1 {
		t.Errorf("Remaining() = %d, want 1", got)
	}
	if err := rl.Allow(ctx); err != nil {
		t.Errorf("Allow() after the oldest call expired failed: %v", err)
	}

	clock.Advance(5 * time.Second)
	if got := rl.Remaining(); got != 3 {
		t.Errorf("Remaining() after idle = %d, want 3", got)
	}
}
