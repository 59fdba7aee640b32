package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yourjourney/guest-portal/internal/session"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	store := session.NewMemoryStore()

	if _, err := store.Get(context.Background(), session.KeyPropertySlug); !errors.Is(err, session.ErrNotCached) {
		t.Fatalf("Expected ErrNotCached for missing key, got %v", err)
	}
}

func TestMemoryStore_SetGetClear(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, session.KeyPropertySlug, "casa-brezza"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, session.KeyGuestToken, "tok-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := store.Get(ctx, session.KeyPropertySlug)
	if err != nil || v != "casa-brezza" {
		t.Fatalf("Expected casa-brezza, got %q (err %v)", v, err)
	}

	if err := store.Set(ctx, session.KeyPropertySlug, "villa-mare"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _ = store.Get(ctx, session.KeyPropertySlug)
	if v != "villa-mare" {
		t.Fatalf("Expected overwrite to villa-mare, got %q", v)
	}

	if err := store.Clear(ctx, session.KeyPropertySlug, session.KeyGuestToken); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, session.KeyPropertySlug); !errors.Is(err, session.ErrNotCached) {
		t.Fatalf("Expected ErrNotCached after clear, got %v", err)
	}
	if _, err := store.Get(ctx, session.KeyGuestToken); !errors.Is(err, session.ErrNotCached) {
		t.Fatalf("Expected ErrNotCached after clear, got %v", err)
	}
}

func TestMemoryStore_ClearMissingKey(t *testing.T) {
	store := session.NewMemoryStore()
	if err := store.Clear(context.Background(), "never-written"); err != nil {
		t.Fatalf("Clear of a missing key should be a no-op, got %v", err)
	}
}
