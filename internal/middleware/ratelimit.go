package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// CounterStore counts requests per key within a fixed window. The in-memory
// implementation below is the default; the interface exists so a shared store
// (e.g. Redis) can be dropped in when the API runs as more than one instance,
// without touching the middleware.
type CounterStore interface {
	// Increment records one request for key and returns how many requests
	// have been seen in the key's current window, starting a new window
	// when the previous one has elapsed.
	Increment(key string, window time.Duration) (int, error)
}

// MemoryCounters is the single-process CounterStore: a mutex-guarded map of
// fixed windows. Counters reset at the window boundary, not gradually — a
// client blocked at the limit gets the full allowance back the moment the
// window rolls over.
type MemoryCounters struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time // swapped out in tests
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// NewMemoryCounters creates an empty in-memory counter store.
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Increment implements CounterStore.
func (m *MemoryCounters) Increment(key string, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++

	// Expired windows for other keys are left in place until their key is
	// touched again; with per-IP keys and hour-scale windows the map stays
	// small enough that a sweeper isn't worth its complexity here.
	return e.count, nil
}

// RateLimiter rejects requests from a client address once it exceeds a count
// threshold within a fixed time window. Two instances are configured in the
// server: a tight one for /auth/login and a loose one for general API traffic.
type RateLimiter struct {
	store   CounterStore
	window  time.Duration
	limit   int
	message string
	logger  *slog.Logger
}

// NewRateLimiter creates a limiter that allows `limit` requests per `window`
// per client address, responding 429 with `message` beyond that.
func NewRateLimiter(store CounterStore, window time.Duration, limit int, message string, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		store:   store,
		window:  window,
		limit:   limit,
		message: message,
		logger:  logger,
	}
}

// Handler returns the rate-limiting middleware.
//
// The counter key is the client IP. chi's RealIP middleware runs earlier in
// the chain and rewrites RemoteAddr from X-Forwarded-For, which is what makes
// this work behind the hosting proxy.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		count, err := rl.store.Increment(key, rl.window)
		if err != nil {
			// A broken counter store must not take the API down with it:
			// log and let the request through.
			rl.logger.Warn("rate limit store failure, allowing request",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			rl.logger.Info("rate limit exceeded",
				slog.String("ip", key),
				slog.String("path", r.URL.Path),
				slog.Int("count", count),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"` + rl.message + `"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr, falling back to the raw value
// when it has no port (as in some tests).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
