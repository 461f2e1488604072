package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	l := NewLimiter(2, time.Second)
	ctx := context.Background()

	assert.Equal(t, LimiterStatus{Active: 0, Available: 2, MaxConcurrent: 2}, l.Status())

	require.NoError(t, l.Acquire(ctx))
	require.NoError(t, l.Acquire(ctx))
	assert.Equal(t, LimiterStatus{Active: 2, Available: 0, MaxConcurrent: 2}, l.Status())

	l.Release()
	assert.Equal(t, LimiterStatus{Active: 1, Available: 1, MaxConcurrent: 2}, l.Status())

	l.Release()
	assert.Equal(t, 0, l.Status().Active)
}

func TestLimiter_TimesOutWhenFull(t *testing.T) {
	l := NewLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	defer l.Release()

	start := time.Now()
	err := l.Acquire(ctx)
	assert.ErrorIs(t, err, ErrTooManyUploads)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestLimiter_ContextCancelled(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Acquire(ctx), context.Canceled)
}

func TestLimiter_WaiterGetsReleasedSlot(t *testing.T) {
	l := NewLimiter(1, time.Second)
	ctx := context.Background()
	require.NoError(t, l.Acquire(ctx))

	done := make(chan error, 1)
	go func() { done <- l.Acquire(ctx) }()

	time.Sleep(20 * time.Millisecond)
	l.Release()

	require.NoError(t, <-done)
	l.Release()
}

func TestLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)
	assert.Equal(t, DefaultMaxConcurrent, l.Status().MaxConcurrent)
	assert.Equal(t, DefaultMaxWait, l.maxWait)
}

func TestLimiter_ConcurrentUse(t *testing.T) {
	l := NewLimiter(3, time.Second)
	ctx := context.Background()

	var mu sync.Mutex
	peak, current := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(ctx); err != nil {
				return
			}
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			l.Release()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, 3)
	assert.Equal(t, 0, l.Status().Active)
}

func TestLimiter_WaitForDrain(t *testing.T) {
	l := NewLimiter(1, time.Second)
	require.NoError(t, l.Acquire(context.Background()))

	go func() {
		time.Sleep(30 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, l.WaitForDrain(ctx))
}

func TestLimiter_WaitForDrainTimeout(t *testing.T) {
	l := NewLimiter(1, time.Second)
	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.WaitForDrain(ctx), context.DeadlineExceeded)
}
