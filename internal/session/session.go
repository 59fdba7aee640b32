package session

import (
	"github.com/yourjourney/guest-portal/pkg/config"
)

// Session bundles one guest's resolver pair over a shared store.
type Session struct {
	Store     Store
	Resolver  *Resolver
	Validator *Validator
}

// New builds a session from config. A non-empty sessionID gets a
// Redis-backed store so its state survives restarts and is shared
// between instances; an anonymous session stays in process memory.
func New(cfg *config.Config, sessionID string) (*Session, error) {
	var store Store
	if sessionID != "" {
		rs, err := NewRedisStoreFromURL(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, sessionID, 0)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = NewMemoryStore()
	}

	client := NewHTTPClient(cfg.Portal.APIBaseURL, cfg.Portal.FetchTimeout)

	return &Session{
		Store: store,
		Resolver: NewResolver(client, store, ResolverConfig{
			DefaultSlug:  cfg.Portal.DefaultSlug,
			FetchTimeout: cfg.Portal.FetchTimeout,
		}),
		Validator: NewValidator(client, store),
	}, nil
}
