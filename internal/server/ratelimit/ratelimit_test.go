package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearRateLimitEnv blanks the RATE_LIMIT_* variables so LoadConfig sees
// its defaults regardless of the surrounding environment.
func clearRateLimitEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RATE_LIMIT_ENABLED",
		"RATE_LIMIT_DEFAULT_LIMIT",
		"RATE_LIMIT_DEFAULT_WINDOW",
		"RATE_LIMIT_CLEANUP_INTERVAL",
		"RATE_LIMIT_WHITELIST",
		"RATE_LIMIT_BLACKLIST",
	} {
		t.Setenv(key, "")
	}
}

func TestBucket_TakeAndRefill(t *testing.T) {
	b := newBucket(3, 10) // refills fast so the test does not sleep long

	for i := 0; i < 3; i++ {
		assert.True(t, b.take(), "request %d should fit in the burst", i+1)
	}
	assert.False(t, b.take(), "bucket should be empty after the burst")

	time.Sleep(150 * time.Millisecond)
	assert.True(t, b.take(), "bucket should refill over time")
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(5, 1)

	remaining, reset := b.status()
	assert.Equal(t, 5, remaining)
	assert.WithinDuration(t, time.Now(), reset, 50*time.Millisecond, "full bucket resets immediately")

	require.True(t, b.take())
	remaining, reset = b.status()
	assert.Equal(t, 4, remaining)
	assert.True(t, reset.After(time.Now()), "drained bucket reports a future reset")
}

func TestLimiter_CredentialTiers(t *testing.T) {
	clearRateLimitEnv(t)

	l := NewLimiter(LoadConfig())
	defer l.Stop()

	tests := []struct {
		name  string
		path  string
		burst int
		limit int
	}{
		{"candidate login", "/auth/candidates/login", 5, 20},
		{"company register", "/auth/companies/register", 5, 20},
		{"admin login", "/admin/login", 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := "10.0.0.1 " + tt.name

			for i := 0; i < tt.burst; i++ {
				allowed, info := l.Allow(client, tt.path, "POST")
				require.True(t, allowed, "request %d should fit in the burst", i+1)
				assert.Equal(t, tt.limit, info.Limit)
			}

			allowed, info := l.Allow(client, tt.path, "POST")
			assert.False(t, allowed, "request past the burst should be rejected")
			assert.Equal(t, tt.limit, info.Limit)
			assert.Equal(t, 0, info.Remaining)
			assert.Greater(t, info.RetryAfter, time.Duration(0))
		})
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "2")

	l := NewLimiter(LoadConfig())
	defer l.Stop()

	// The default limit bites on an untiered read...
	allowed, _ := l.Allow("10.0.0.2", "/jobs", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.2", "/jobs", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.2", "/jobs", "GET")
	require.False(t, allowed)

	// ...but never on the health check.
	for i := 0; i < 20; i++ {
		allowed, info := l.Allow("10.0.0.2", "/health", "GET")
		require.True(t, allowed, "health check %d should never be throttled", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_PerClientIsolation(t *testing.T) {
	clearRateLimitEnv(t)

	l := NewLimiter(LoadConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("attacker", "/admin/login", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("attacker", "/admin/login", "POST")
	require.False(t, allowed, "exhausted client should be rejected")

	allowed, _ = l.Allow("bystander", "/admin/login", "POST")
	assert.True(t, allowed, "other clients keep their own budget")
}

func TestLimiter_Disabled(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	l := NewLimiter(LoadConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("10.0.0.3", "/admin/login", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"trusted": true},
		Blacklist:     map[string]bool{"banned": true},
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("trusted", "/jobs", "GET")
		assert.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, info := l.Allow("banned", "/jobs", "GET")
	assert.False(t, allowed, "blacklisted client is always rejected")
	assert.False(t, info.Allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Hour, // refill too slow to matter mid-test
	})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("10.0.0.4", "/jobs", "GET"); allowed {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, granted)
}

func TestLimiter_DropIdle(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.1.%d", i), "/jobs", "GET")
	}
	l.mu.Lock()
	count := len(l.buckets)
	l.mu.Unlock()
	require.Equal(t, 5, count)

	l.dropIdle(time.Now().Add(time.Minute))

	l.mu.Lock()
	count = len(l.buckets)
	l.mu.Unlock()
	assert.Zero(t, count, "buckets idle past the cutoff are reaped")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.5", "/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"candidate login hits auth prefix", "/auth/candidates/login", "POST", 20, false},
		{"company register hits auth prefix", "/auth/companies/register", "POST", 20, false},
		{"admin login exact", "/admin/login", "POST", 10, false},
		{"admin login subpath has no tier", "/admin/login/reset", "POST", 0, true},
		{"profile update", "/me", "PUT", 60, false},
		{"job creation", "/company/jobs", "POST", 60, false},
		{"job listing untier", "/jobs", "GET", 0, true},
		{"method mismatch", "/admin/login", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestMatchEndpoint_HealthExempt(t *testing.T) {
	got := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, got)
	assert.Zero(t, got.Limit, "zero limit marks the endpoint unlimited")
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.1.1.1, 10.1.1.2")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.1.1.1": true, "10.1.1.2": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
