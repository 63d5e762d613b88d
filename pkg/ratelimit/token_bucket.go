package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// Result is the outcome of a limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Zero if the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// TokenBucket refills rate tokens per interval up to burst. Idle buckets
// are dropped once full.
type TokenBucket struct {
	rate     int
	interval time.Duration
	burst    int
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	calls   int
}

type bucket struct {
	tokens float64
	last   time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithBurst sets the bucket capacity. Values below rate are raised to rate.
func WithBurst(burst int) TokenBucketOption {
	return func(tb *TokenBucket) {
		if burst > 0 {
			tb.burst = burst
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TokenBucketOption {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// sweepEvery is the number of Allow calls between sweeps of idle buckets.
const sweepEvery = 1024

func NewTokenBucket(rate int, interval time.Duration, opts ...TokenBucketOption) (*TokenBucket, error) {
	if rate <= 0 {
		return nil, ErrInvalidLimit
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	tb := &TokenBucket{
		rate:     rate,
		interval: interval,
		burst:    rate,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.burst = max(tb.burst, tb.rate)
	return tb, nil
}

// Allow consumes one token for key.
func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := tb.now()
	perToken := tb.interval / time.Duration(tb.rate)

	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.calls++
	if tb.calls%sweepEvery == 0 {
		tb.sweep(now)
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(tb.burst), last: now}
		tb.buckets[key] = b
	}
	tb.refill(b, now)

	res := &Result{Limit: tb.burst}
	if b.tokens >= 1 {
		b.tokens--
		res.Allowed = true
	}
	res.Remaining = int(math.Floor(b.tokens))

	missing := 1 - (b.tokens - math.Floor(b.tokens))
	res.ResetAt = now.Add(time.Duration(missing * float64(perToken)))
	return res, nil
}

func (tb *TokenBucket) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.last)
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(float64(tb.burst), b.tokens+elapsed.Seconds()*float64(tb.rate)/tb.interval.Seconds())
	b.last = now
}

func (tb *TokenBucket) sweep(now time.Time) {
	for key, b := range tb.buckets {
		tb.refill(b, now)
		if b.tokens >= float64(tb.burst) {
			delete(tb.buckets, key)
		}
	}
}
