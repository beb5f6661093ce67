package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Intake policy: 5 requests per client per 10 minutes.
const (
	IntakeRateLimit  = 5
	IntakeRateWindow = 10 * time.Minute
)

// Limiter guards the public intake endpoint. Kept as an interface so the
// in-process map can be swapped for a shared backing store without
// touching call sites.
type Limiter interface {
	Allow(clientID string) bool
}

// FixedWindowLimiter counts requests per client in fixed windows.
// State lives for the process lifetime; a restart clears all counters,
// which is the accepted scope (single process, no persistence).
type FixedWindowLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	rl := &FixedWindowLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}

	go rl.cleanup()
	return rl
}

func (rl *FixedWindowLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[clientID]

	if !exists || now.After(v.resetAt) {
		rl.visitors[clientID] = &visitor{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if v.count >= rl.limit {
		return false
	}

	v.count++
	return true
}

// cleanup keeps the visitor map bounded. Stale entries cost nothing
// correctness-wise, only memory.
func (rl *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for id, v := range rl.visitors {
			if now.After(v.resetAt) {
				delete(rl.visitors, id)
			}
		}
		rl.mu.Unlock()
	}
}

// getClientIP trusts forwarded headers first (we sit behind a proxy);
// first X-Forwarded-For hop wins. "unknown" pools unidentifiable
// clients into one bucket rather than letting them bypass the limit.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return "unknown"
}
