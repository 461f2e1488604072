package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := newIPRateLimiter(2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"), "burst is spent")
	assert.True(t, rl.allow("10.0.0.2"), "buckets are per IP")

	now = now.Add(30 * time.Second)
	assert.True(t, rl.allow("10.0.0.1"), "one token refills every 30s")
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestIPRateLimiter_DropsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := newIPRateLimiter(10)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")
	assert.Len(t, rl.visitors, 2)

	now = now.Add(rl.idle + time.Second)
	rl.allow("10.0.0.3")
	assert.Len(t, rl.visitors, 1)
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	rl := newIPRateLimiter(0)
	for i := 0; i < 1000; i++ {
		assert.True(t, rl.allow("10.0.0.1"))
	}
	assert.Empty(t, rl.visitors)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 60, newIPRateLimiter(1).retryAfter())
	assert.Equal(t, 1, newIPRateLimiter(100).retryAfter())
	assert.Equal(t, 1, newIPRateLimiter(0).retryAfter())
}
