package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trustworkers/api/internal/model"
)

// ErrLimiterUnavailable is returned when the limiter backend cannot answer.
var ErrLimiterUnavailable = errors.New("rate limiter unavailable")

// Decision is the outcome of a single rate limit check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether the caller identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Extra requests allowed on top of Rate; 0 disables bursting
	Cleanup time.Duration // Cleanup interval for idle buckets (default 5 minutes)
	Prefix  string        // Redis key prefix (default "ratelimit")
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.Rate == 0 {
		c.Rate = 100
	}
	if c.Window == 0 {
		c.Window = time.Minute
	}
	if c.Burst < 0 {
		c.Burst = 0
	}
	if c.Cleanup == 0 {
		c.Cleanup = 5 * time.Minute
	}
	if c.Prefix == "" {
		c.Prefix = "ratelimit"
	}
	return c
}

// ============================================================================
// In-memory token bucket
// ============================================================================

// MemoryLimiter implements token bucket rate limiting for a single process
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	window   time.Duration
	burst    int
	cleanup  time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// NewMemoryLimiter creates a limiter and starts its cleanup goroutine
func NewMemoryLimiter(cfg RateLimitConfig) *MemoryLimiter {
	cfg = cfg.withDefaults()

	rl := &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		cleanup:  cfg.Cleanup,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *MemoryLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *MemoryLimiter) cleanupExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window * 2)
	for key, b := range rl.buckets {
		if b.lastReset.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Allow takes one token from key's bucket. Buckets start full at Rate+Burst
// and refill at Rate tokens per window.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	capacity := rl.rate + rl.burst
	b, exists := rl.buckets[key]

	if !exists {
		b = &bucket{tokens: capacity - 1, lastReset: now}
		rl.buckets[key] = b
		return Decision{Allowed: true, Limit: capacity, Remaining: b.tokens, ResetAt: now.Add(rl.window)}, nil
	}

	elapsed := now.Sub(b.lastReset)
	if elapsed >= rl.window {
		b.tokens = capacity
		b.lastReset = now
	} else {
		tokensToAdd := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window)))
		if tokensToAdd > 0 {
			b.tokens = min(b.tokens+tokensToAdd, capacity)
			b.lastReset = now
		}
	}

	d := Decision{Limit: capacity, ResetAt: b.lastReset.Add(rl.window)}
	if b.tokens > 0 {
		b.tokens--
		d.Allowed = true
		d.Remaining = b.tokens
	}
	return d, nil
}

// ============================================================================
// Redis fixed window
// ============================================================================

// RedisLimiter counts requests per fixed window in Redis so every API
// instance shares the same budget
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter creates a limiter backed by client. The limit per window is
// Rate+Burst.
func NewRedisLimiter(client redis.Cmdable, cfg RateLimitConfig) *RedisLimiter {
	cfg = cfg.withDefaults()
	return &RedisLimiter{
		client: client,
		prefix: cfg.Prefix,
		limit:  cfg.Rate + cfg.Burst,
		window: cfg.Window,
		now:    time.Now,
	}
}

// Allow increments key's counter for the current window
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := rl.now()
	windowStart := now.Truncate(rl.window)
	resetAt := windowStart.Add(rl.window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.prefix, key, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, rl.window+time.Second)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrLimiterUnavailable, err)
	}

	count := int(incr.Val())
	return Decision{
		Allowed:   count <= rl.limit,
		Limit:     rl.limit,
		Remaining: max(rl.limit-count, 0),
		ResetAt:   resetAt,
	}, nil
}

// ============================================================================
// Middleware
// ============================================================================

// RateLimit returns a middleware that applies rate limiting per user, or per
// client IP for anonymous requests. If the limiter fails the request is let
// through and a warning is logged.
func RateLimit(limiter Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := limiter.Allow(r.Context(), rateLimitKey(r))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable, allowing request",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retryAfter := max(int(time.Until(d.ResetAt).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if id := GetUserID(r.Context()); id != 0 {
		return "user:" + strconv.FormatInt(id, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
