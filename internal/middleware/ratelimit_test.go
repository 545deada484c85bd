package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fakeClock is a controllable time source for limiter tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, rate, burst int) (*MemoryLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rl := NewMemoryLimiter(RateLimitConfig{Rate: rate, Window: time.Minute, Burst: burst})
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

// ============================================================================
// Configuration
// ============================================================================

func TestNewMemoryLimiter_DefaultConfig(t *testing.T) {
	t.Parallel()
	rl := NewMemoryLimiter(RateLimitConfig{})
	defer rl.Stop()

	if rl.rate != 100 || rl.window != time.Minute || rl.burst != 0 {
		t.Errorf("unexpected defaults rate=%d window=%v burst=%d", rl.rate, rl.window, rl.burst)
	}
}

func TestNewMemoryLimiter_ZeroBurstIsHonored(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 2, 0)
	ctx := context.Background()

	first, _ := rl.Allow(ctx, "k")
	_, _ = rl.Allow(ctx, "k")
	third, _ := rl.Allow(ctx, "k")

	if first.Limit != 2 {
		t.Errorf("expected limit 2 with burst disabled, got %d", first.Limit)
	}
	if third.Allowed {
		t.Error("expected third request in the window to be denied")
	}
}

func TestNewMemoryLimiter_NegativeBurstClampsToZero(t *testing.T) {
	t.Parallel()
	rl := NewMemoryLimiter(RateLimitConfig{Rate: 5, Burst: -3})
	defer rl.Stop()

	if rl.burst != 0 {
		t.Errorf("expected burst 0, got %d", rl.burst)
	}
}

func TestNewRedisLimiter_ZeroBurstIsHonored(t *testing.T) {
	t.Parallel()
	rl := NewRedisLimiter(nil, RateLimitConfig{Rate: 2, Burst: 0})

	if rl.limit != 2 {
		t.Errorf("expected limit 2 with burst disabled, got %d", rl.limit)
	}
}

func TestMemoryLimiter_StopTwice_DoesNotPanic(t *testing.T) {
	t.Parallel()
	rl := NewMemoryLimiter(RateLimitConfig{})
	rl.Stop()
	rl.Stop()
}

// ============================================================================
// MemoryLimiter.Allow
// ============================================================================

func TestMemoryLimiter_FirstRequest_StartsFull(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 10, 5)

	d, err := rl.Allow(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !d.Allowed || d.Remaining != 14 || d.Limit != 15 {
		t.Errorf("unexpected decision %+v", d)
	}
}

func TestMemoryLimiter_ExhaustsThenDenies(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 3, 2)
	ctx := context.Background()

	for i := range 5 {
		if d, _ := rl.Allow(ctx, "k"); !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	d, _ := rl.Allow(ctx, "k")
	if d.Allowed || d.Remaining != 0 {
		t.Errorf("expected denial after capacity, got %+v", d)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 1, 1)
	ctx := context.Background()

	_, _ = rl.Allow(ctx, "a")
	_, _ = rl.Allow(ctx, "a")
	if d, _ := rl.Allow(ctx, "a"); d.Allowed {
		t.Error("expected key a to be exhausted")
	}
	if d, _ := rl.Allow(ctx, "b"); !d.Allowed {
		t.Error("expected key b to be allowed")
	}
}

func TestMemoryLimiter_RefillsAfterWindow(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 2, 1)
	ctx := context.Background()

	for range 3 {
		_, _ = rl.Allow(ctx, "k")
	}
	if d, _ := rl.Allow(ctx, "k"); d.Allowed {
		t.Fatal("expected exhaustion")
	}

	clock.Advance(time.Minute)
	d, _ := rl.Allow(ctx, "k")
	if !d.Allowed || d.Remaining != 2 {
		t.Errorf("expected full refill, got %+v", d)
	}
}

func TestMemoryLimiter_PartialRefill(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 60, 0)
	ctx := context.Background()

	for range 60 {
		_, _ = rl.Allow(ctx, "k")
	}
	clock.Advance(10 * time.Second)

	d, _ := rl.Allow(ctx, "k")
	if !d.Allowed || d.Remaining != 9 {
		t.Errorf("expected 10 tokens refilled, got %+v", d)
	}
}

func TestMemoryLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 1, 1)

	_, _ = rl.Allow(context.Background(), "idle")
	clock.Advance(3 * time.Minute)
	rl.cleanupExpired()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.buckets["idle"]; ok {
		t.Error("expected idle bucket to be removed")
	}
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 50, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d, _ := rl.Allow(context.Background(), "shared"); d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected exactly 50 allowed, got %d", allowed)
	}
}

// ============================================================================
// RateLimit middleware
// ============================================================================

type stubLimiter struct {
	decision Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func TestRateLimit_Allowed_SetsHeaders(t *testing.T) {
	t.Parallel()
	reset := time.Now().Add(30 * time.Second)
	limiter := &stubLimiter{decision: Decision{Allowed: true, Limit: 15, Remaining: 7, ResetAt: reset}}
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rr := httptest.NewRecorder()
	RateLimit(limiter)(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called")
	}
	if rr.Header().Get("X-RateLimit-Limit") != "15" || rr.Header().Get("X-RateLimit-Remaining") != "7" {
		t.Errorf("unexpected headers %v", rr.Header())
	}
	if rr.Header().Get("X-RateLimit-Reset") != strconv.FormatInt(reset.Unix(), 10) {
		t.Errorf("unexpected reset header %q", rr.Header().Get("X-RateLimit-Reset"))
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "ip:10.0.0.1" {
		t.Errorf("expected ip key, got %v", limiter.keys)
	}
}

func TestRateLimit_Denied_Returns429(t *testing.T) {
	t.Parallel()
	limiter := &stubLimiter{decision: Decision{Allowed: false, Limit: 15, ResetAt: time.Now().Add(20 * time.Second)}}
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RateLimit(limiter)(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rr.Code)
	}
	if handler.called {
		t.Error("handler should not be called when limited")
	}
	retry, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 20 {
		t.Errorf("unexpected Retry-After %q", rr.Header().Get("Retry-After"))
	}
}

func TestRateLimit_AuthenticatedUser_KeyedByUser(t *testing.T) {
	t.Parallel()
	limiter := &stubLimiter{decision: Decision{Allowed: true}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, int64(12)))
	RateLimit(limiter)(&captureHandler{}).ServeHTTP(httptest.NewRecorder(), req)

	if limiter.keys[0] != "user:12" {
		t.Errorf("expected user key, got %q", limiter.keys[0])
	}
}

func TestRateLimit_LimiterError_FailsOpen(t *testing.T) {
	t.Parallel()
	limiter := &stubLimiter{err: errors.New("backend down")}
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RateLimit(limiter)(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !handler.called || rr.Code != http.StatusOK {
		t.Errorf("expected request through, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("no rate limit headers expected when limiter fails")
	}
}

func TestRateLimit_MemoryLimiter_EndToEnd(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(t, 1, 1)
	h := RateLimit(rl)(&captureHandler{})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.7:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Errorf("unexpected status sequence %v", codes)
	}
}

// ============================================================================
// RedisLimiter
// ============================================================================

func TestRedisLimiter_Unreachable_ReturnsUnavailable(t *testing.T) {
	t.Parallel()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { _ = client.Close() }()

	rl := NewRedisLimiter(client, RateLimitConfig{Rate: 1, Burst: 1})
	_, err := rl.Allow(context.Background(), "k")
	if !errors.Is(err, ErrLimiterUnavailable) {
		t.Errorf("expected ErrLimiterUnavailable, got %v", err)
	}

	handler := &captureHandler{}
	RateLimit(rl)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !handler.called {
		t.Error("expected fail-open when redis is unreachable")
	}
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0).Truncate(time.Minute)}
	rl := NewRedisLimiter(client, RateLimitConfig{Rate: 2, Burst: 1, Window: time.Minute, Prefix: "test-" + uuid.NewString()})
	rl.now = clock.Now
	ctx := context.Background()

	for i := range 3 {
		d, err := rl.Allow(ctx, "k")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !d.Allowed || d.Remaining != 2-i {
			t.Fatalf("request %d: unexpected decision %+v", i+1, d)
		}
	}
	if d, _ := rl.Allow(ctx, "k"); d.Allowed {
		t.Error("expected fourth request in window to be denied")
	}

	clock.Advance(time.Minute)
	if d, _ := rl.Allow(ctx, "k"); !d.Allowed {
		t.Error("expected a new window to allow again")
	}
}
