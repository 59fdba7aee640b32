package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ---------- Mocks ----------

// memHitStore is a fixed-window counter in memory, with an adjustable
// clock so tests can cross window boundaries.
type memHitStore struct {
	now     time.Time
	entries map[string]*memHit
	hitErr  error
}

type memHit struct {
	count       int
	windowStart time.Time
}

func newMemHitStore() *memHitStore {
	return &memHitStore{
		now:     time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		entries: make(map[string]*memHit),
	}
}

func (m *memHitStore) Hit(_ context.Context, key string, window time.Duration) (int, error) {
	if m.hitErr != nil {
		return 0, m.hitErr
	}
	e, ok := m.entries[key]
	if !ok || e.windowStart.Before(m.now.Add(-window)) {
		e = &memHit{windowStart: m.now}
		m.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func newTestLimiter(store HitStore, requests int, window time.Duration) http.Handler {
	rl := &RateLimiter{
		store: store,
		config: RateLimitConfig{
			Requests: requests,
			Window:   window,
			KeyFunc:  AdminLoginKeyFunc,
		},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return rl.Middleware()(next)
}

func doRequest(handler http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// ---------- Tests ----------

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	store := newMemHitStore()
	handler := newTestLimiter(store, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := doRequest(handler, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after limit, got %d", rec.Code)
	}
	var errRes map[string]string
	json.NewDecoder(rec.Body).Decode(&errRes)
	if errRes["code"] != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("Expected RATE_LIMIT_EXCEEDED code, got %q", errRes["code"])
	}

	// Still blocked within the same window.
	if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 on repeat, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowElapses_CounterRestarts(t *testing.T) {
	store := newMemHitStore()
	handler := newTestLimiter(store, 2, time.Minute)

	doRequest(handler, "10.0.0.1")
	doRequest(handler, "10.0.0.1")
	if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 at limit, got %d", rec.Code)
	}

	// After the window has fully elapsed the counter restarts, and the
	// full budget is available again, not just a single request.
	store.now = store.now.Add(2 * time.Minute)
	for i := 0; i < 2; i++ {
		if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("Request %d after window reset: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 once the fresh window fills, got %d", rec.Code)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	store := newMemHitStore()
	handler := newTestLimiter(store, 1, time.Minute)

	doRequest(handler, "10.0.0.1")
	if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 for exhausted IP, got %d", rec.Code)
	}
	if rec := doRequest(handler, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a different IP, got %d", rec.Code)
	}
}

func TestRateLimiter_StoreError_FailsOpen(t *testing.T) {
	store := newMemHitStore()
	store.hitErr = errors.New("connection refused")
	handler := newTestLimiter(store, 1, time.Minute)

	for i := 0; i < 5; i++ {
		if rec := doRequest(handler, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("Expected fail-open 200, got %d", rec.Code)
		}
	}
}

func TestKeyFuncs_ClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   string
	}{
		{
			"remote addr",
			func(r *http.Request) { r.RemoteAddr = "10.0.0.9:40000" },
			"login:10.0.0.9",
		},
		{
			"x-forwarded-for first hop",
			func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1") },
			"login:203.0.113.7",
		},
		{
			"x-real-ip",
			func(r *http.Request) { r.Header.Set("X-Real-IP", "203.0.113.8") },
			"login:203.0.113.8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/login", nil)
			tt.setup(req)
			keys := AdminLoginKeyFunc(req)
			if len(keys) != 1 || keys[0] != tt.want {
				t.Fatalf("Expected key %q, got %v", tt.want, keys)
			}
		})
	}

	req := httptest.NewRequest("GET", "/api/booking/tok", nil)
	req.RemoteAddr = "10.0.0.9:40000"
	keys := TokenLookupKeyFunc(req)
	if len(keys) != 1 || keys[0] != "token:10.0.0.9" {
		t.Fatalf("Expected token-scoped key, got %v", keys)
	}
}
