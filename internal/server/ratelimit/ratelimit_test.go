package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := newTokenBucket(10, 1.0) // 10 tokens, 1 token per second

	// Should allow 10 requests immediately (burst)
	for i := 0; i < 10; i++ {
		if !bucket.allow() {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	// 11th request should be denied (no tokens left)
	if bucket.allow() {
		t.Error("Expected 11th request to be denied")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		bucket.allow()
	}

	// Wait for 1 token to refill
	time.Sleep(1100 * time.Millisecond)

	if !bucket.allow() {
		t.Error("Expected request to be allowed after refill")
	}
	if bucket.allow() {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestTokenBucket_Status(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.status()
	if remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", remaining)
	}
	if !resetTime.After(time.Now()) {
		t.Error("Expected reset time in the future for a partially drained bucket")
	}
}

func TestLimiter_SolveEndpointTier(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	// /solve burst is 10; the 11th immediate request is rejected
	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/solve", "POST")
		if !allowed {
			t.Fatalf("Expected solve request %d to be allowed", i+1)
		}
	}

	allowed, info := limiter.Allow("1.2.3.4", "/solve", "POST")
	if allowed {
		t.Error("Expected request beyond burst to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected a positive RetryAfter on denial")
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow("1.1.1.1", "/solve", "POST")
	}
	if allowed, _ := limiter.Allow("1.1.1.1", "/solve", "POST"); allowed {
		t.Error("Expected first client to be limited")
	}
	if allowed, _ := limiter.Allow("2.2.2.2", "/solve", "POST"); !allowed {
		t.Error("Expected second client to still be allowed")
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	for i := 0; i < 200; i++ {
		if allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET"); !allowed {
			t.Fatalf("Expected health request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("1.2.3.4", "/solve", "POST"); !allowed {
			t.Fatal("Expected all requests to be allowed when disabled")
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := defaultConfig()
	cfg.Blacklist["6.6.6.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("6.6.6.6", "/solve", "POST"); allowed {
		t.Error("Expected blacklisted client to be denied")
	}
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			clientID := fmt.Sprintf("10.0.0.%d", n)
			for j := 0; j < 50; j++ {
				limiter.Allow(clientID, "/runs", "GET")
			}
		}(i)
	}
	wg.Wait()
}

func TestLimiter_RemoveIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	limiter.Allow("1.2.3.4", "/solve", "POST")
	limiter.removeIdleBuckets(time.Now().Add(time.Second))

	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	if len(limiter.buckets) != 0 {
		t.Errorf("Expected all buckets removed, %d remain", len(limiter.buckets))
	}
}
