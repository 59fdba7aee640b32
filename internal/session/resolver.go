package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// State describes what the resolver is currently serving.
type State int

const (
	// StateLoading: a fetch for the active slug is in flight.
	StateLoading State = iota
	// StateReady: the snapshot is fresh for the active slug.
	StateReady
	// StateDegraded: the fetch failed; serving the last cached snapshot,
	// which may belong to a previously resolved property.
	StateDegraded
	// StateUnavailable: the fetch failed and nothing is cached. The
	// snapshot is nil and callers must render a not-found view.
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	case StateUnavailable:
		return "unavailable"
	default:
		return "loading"
	}
}

// ResolvedSession is the always-available view of the active property.
type ResolvedSession struct {
	Slug     string
	Snapshot *domain.Property
	State    State
	Loading  bool
}

// ResolverConfig carries the resolver's fixed inputs.
type ResolverConfig struct {
	// DefaultSlug is the lowest-precedence fallback when neither the URL
	// nor the cache names a property.
	DefaultSlug string
	// FetchTimeout bounds each snapshot fetch so a hung backend cannot
	// leave the session loading forever.
	FetchTimeout time.Duration
}

// Resolver derives the active property from request state and persisted
// state, and keeps serving something renderable when the backend is
// down. It never returns a fetch error to callers: failures degrade to
// the cached snapshot or an explicit unavailable state.
type Resolver struct {
	client Client
	store  Store
	cfg    ResolverConfig

	mu       sync.Mutex
	slug     string
	snapshot *domain.Property
	state    State
	loading  bool

	// gen guards against out-of-order fetch completions: only the
	// latest fetch may commit state. cancel aborts the superseded one.
	gen    uint64
	cancel context.CancelFunc
}

func NewResolver(client Client, store Store, cfg ResolverConfig) *Resolver {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &Resolver{
		client: client,
		store:  store,
		cfg:    cfg,
		state:  StateLoading,
	}
}

// Initialize picks the active slug with the fixed precedence
// (URL param, then cached slug, then default) and fetches its snapshot.
// urlSlug is the value of the struttura query parameter, empty if absent.
func (r *Resolver) Initialize(ctx context.Context, urlSlug string) ResolvedSession {
	slug := urlSlug
	if slug != "" {
		// The URL wins over whatever the cache says; persist it so the
		// two cannot stay in disagreement even if the fetch fails.
		if err := r.store.Set(ctx, KeyPropertySlug, slug); err != nil {
			logger.WarnContext(ctx, "failed to persist property slug", "slug", slug, "error", err)
		}
	} else {
		if cached, err := r.store.Get(ctx, KeyPropertySlug); err == nil && cached != "" {
			slug = cached
		}
	}
	if slug == "" {
		slug = r.cfg.DefaultSlug
	}

	r.mu.Lock()
	r.slug = slug
	r.mu.Unlock()

	return r.refresh(ctx)
}

// SwitchProperty changes the active property. The slug is persisted
// synchronously before the fetch starts; no validation is applied, an
// unknown slug simply resolves to degraded or unavailable.
func (r *Resolver) SwitchProperty(ctx context.Context, slug string) ResolvedSession {
	if err := r.store.Set(ctx, KeyPropertySlug, slug); err != nil {
		logger.WarnContext(ctx, "failed to persist property slug", "slug", slug, "error", err)
	}

	r.mu.Lock()
	r.slug = slug
	r.mu.Unlock()

	return r.refresh(ctx)
}

// Refresh re-fetches the active slug's snapshot.
func (r *Resolver) Refresh(ctx context.Context) ResolvedSession {
	return r.refresh(ctx)
}

// refresh runs one fetch cycle for the current slug. A newer cycle
// supersedes this one: its result is discarded and its context canceled.
func (r *Resolver) refresh(ctx context.Context) ResolvedSession {
	r.mu.Lock()
	slug := r.slug
	r.loading = true
	r.state = StateLoading
	r.gen++
	myGen := r.gen
	if r.cancel != nil {
		r.cancel()
	}
	fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	r.cancel = cancel
	r.mu.Unlock()

	snap, err := r.client.PropertyBySlug(fctx, slug)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen != myGen {
		// A later SwitchProperty overtook this fetch; its outcome wins.
		return r.currentLocked()
	}
	r.loading = false

	if err != nil {
		logger.WarnContext(ctx, "property fetch failed, falling back to cache",
			"slug", slug, "error", err)
		r.snapshot, r.state = r.fallbackLocked(ctx)
		return r.currentLocked()
	}

	r.snapshot = snap
	r.state = StateReady

	// Write-through: slug and snapshot are overwritten together, and
	// only on success. A failed fetch never touches the cache.
	if err := r.store.Set(ctx, KeyPropertySlug, slug); err != nil {
		logger.WarnContext(ctx, "failed to cache property slug", "slug", slug, "error", err)
	}
	if data, err := json.Marshal(snap); err == nil {
		if err := r.store.Set(ctx, KeyPropertyData, string(data)); err != nil {
			logger.WarnContext(ctx, "failed to cache property snapshot", "slug", slug, "error", err)
		}
	}
	return r.currentLocked()
}

// fallbackLocked serves the last cached snapshot for any previously
// resolved property. The cached data may belong to a different slug
// than the active one; it is served anyway, with StateDegraded so the
// caller can flag staleness.
func (r *Resolver) fallbackLocked(ctx context.Context) (*domain.Property, State) {
	raw, err := r.store.Get(ctx, KeyPropertyData)
	if err != nil {
		return nil, StateUnavailable
	}
	var cached domain.Property
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.WarnContext(ctx, "cached property snapshot is corrupt", "error", err)
		return nil, StateUnavailable
	}
	return &cached, StateDegraded
}

// Current returns the resolved session as of now.
func (r *Resolver) Current() ResolvedSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

func (r *Resolver) currentLocked() ResolvedSession {
	return ResolvedSession{
		Slug:     r.slug,
		Snapshot: r.snapshot,
		State:    r.state,
		Loading:  r.loading,
	}
}

// BuildURL appends the active slug as the struttura query parameter,
// so in-app links keep the session pinned to its property.
func (r *Resolver) BuildURL(path string) string {
	r.mu.Lock()
	slug := r.slug
	r.mu.Unlock()

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "struttura=" + slug
}
