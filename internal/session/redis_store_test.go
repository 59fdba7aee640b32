package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisStore_KeyNamespacing(t *testing.T) {
	s := NewRedisStore(nil, "sess-1", 0)

	if got := s.key(KeyPropertySlug); got != "session:sess-1:current_property_slug" {
		t.Fatalf("Unexpected key %q", got)
	}
	if got := s.key(KeyGuestToken); got != "session:sess-1:guest_token" {
		t.Fatalf("Unexpected key %q", got)
	}
	if s.ttl != DefaultSessionTTL {
		t.Fatalf("Expected default TTL %v, got %v", DefaultSessionTTL, s.ttl)
	}
}

func TestRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStoreFromURL("not-a-url", "", 0, "sess-1", 0); err == nil {
		t.Fatal("Expected an error for an unparseable URL")
	}
}

// Behavior against a real server; set REDIS_URL to enable.
func TestRedisStore_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	sessionID := uuid.NewString()
	store, err := NewRedisStoreFromURL(url, os.Getenv("REDIS_PASSWORD"), 0, sessionID, time.Minute)
	if err != nil {
		t.Fatalf("Failed to dial Redis: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyPropertySlug); !errors.Is(err, ErrNotCached) {
		t.Fatalf("Expected ErrNotCached for a fresh session, got %v", err)
	}

	if err := store.Set(ctx, KeyPropertySlug, "casa-brezza"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := store.Get(ctx, KeyPropertySlug)
	if err != nil || v != "casa-brezza" {
		t.Fatalf("Expected casa-brezza, got %q (err %v)", v, err)
	}

	// A second session must not see this session's keys.
	other, err := NewRedisStoreFromURL(url, os.Getenv("REDIS_PASSWORD"), 0, uuid.NewString(), time.Minute)
	if err != nil {
		t.Fatalf("Failed to dial Redis: %v", err)
	}
	if _, err := other.Get(ctx, KeyPropertySlug); !errors.Is(err, ErrNotCached) {
		t.Fatalf("Expected session isolation, got err %v", err)
	}

	if err := store.Clear(ctx, KeyPropertySlug); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, KeyPropertySlug); !errors.Is(err, ErrNotCached) {
		t.Fatalf("Expected ErrNotCached after clear, got %v", err)
	}
}
