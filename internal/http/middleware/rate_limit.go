package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourjourney/guest-portal/internal/http/response"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Function to generate rate limit keys
	SkipFunc func(r *http.Request) bool     // Function to skip rate limiting
}

// HitStore records one request against a key and returns how many
// requests the current window has seen, including this one.
type HitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

// RateLimiter throttles requests with a fixed window per key.
type RateLimiter struct {
	store  HitStore
	config RateLimitConfig
}

func NewRateLimiter(pool *pgxpool.Pool, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		store:  &pgHitStore{pool: pool},
		config: config,
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, key := range rl.config.KeyFunc(r) {
				if !rl.allow(r.Context(), key) {
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	count, err := rl.store.Hit(ctx, key, rl.config.Window)
	if err != nil {
		// On store error, allow the request (fail open)
		return true
	}
	return count <= rl.config.Requests
}

// pgHitStore counts hits with an atomic Postgres upsert, so multiple
// API instances share one counter per key. A row's window starts at its
// first hit; once the window has fully elapsed the counter restarts
// from the current hit.
type pgHitStore struct {
	pool *pgxpool.Pool
}

func (s *pgHitStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	// Hash the key for privacy
	hasher := sha256.New()
	hasher.Write([]byte(key))
	hashedKey := fmt.Sprintf("%x", hasher.Sum(nil))

	now := time.Now()
	windowStart := now.Add(-window)

	query := `
		INSERT INTO rate_limits (key, count, window_start, expires_at)
		VALUES ($1, 1, $2, $4)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start < $3 THEN 1
				ELSE rate_limits.count + 1
			END,
			window_start = CASE
				WHEN rate_limits.window_start < $3 THEN $2
				ELSE rate_limits.window_start
			END,
			expires_at = $4
		RETURNING count`

	var count int
	err := s.pool.QueryRow(ctx, query, hashedKey, now, windowStart, now.Add(time.Hour)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TokenLookupKeyFunc rate limits booking token lookups by client IP.
// Tokens are unguessable uuids, but unbounded probing is still noise.
func TokenLookupKeyFunc(r *http.Request) []string {
	if ip := getClientIP(r); ip != "" {
		return []string{"token:" + ip}
	}
	return nil
}

// AdminLoginKeyFunc rate limits admin login attempts by client IP.
func AdminLoginKeyFunc(r *http.Request) []string {
	if ip := getClientIP(r); ip != "" {
		return []string{"login:" + ip}
	}
	return nil
}

// getClientIP extracts the real client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
