package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourjourney/guest-portal/internal/domain"
)

// ErrNotFound marks a 404 from the backend: the slug or token has no
// record. Callers distinguish it from transport failures only for
// logging; both degrade the same way.
var ErrNotFound = errors.New("session: not found")

// Client is the backend surface the resolvers depend on.
type Client interface {
	PropertyBySlug(ctx context.Context, slug string) (*domain.Property, error)
	ValidateToken(ctx context.Context, token string) (*domain.BookingValidation, error)
}

// HTTPClient talks to the portal REST API.
type HTTPClient struct {
	base string
	http *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return fmt.Errorf("session: backend returned %d for %s", res.StatusCode, path)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

func (c *HTTPClient) PropertyBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	var p domain.Property
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(slug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ValidateToken(ctx context.Context, token string) (*domain.BookingValidation, error) {
	var v domain.BookingValidation
	if err := c.get(ctx, "/api/booking/"+url.PathEscape(token), &v); err != nil {
		return nil, err
	}
	return &v, nil
}
