package session

import (
	"context"
	"encoding/json"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// Validator converts an opaque guest link token into an access decision
// before any property content is shown. The token is never inspected
// client-side; the backend's answer is decoded into one of three
// variants at this boundary.
type Validator struct {
	client Client
	store  Store
}

func NewValidator(client Client, store Store) *Validator {
	return &Validator{client: client, store: store}
}

// Validate performs exactly one lookup for the token and classifies the
// result. Persistence happens only on the active path, strictly after
// classification; invalid and expired lookups write nothing.
func (v *Validator) Validate(ctx context.Context, token string) *domain.Access {
	res, err := v.client.ValidateToken(ctx, token)
	if err != nil {
		// Transport failures and unknown tokens both land here: the
		// lookup could not be verified, so no booking detail may be
		// shown. Expired is only ever derived from a successful lookup.
		logger.WarnContext(ctx, "guest token validation failed", "error", err)
		return &domain.Access{Decision: domain.AccessInvalid}
	}

	if res.Booking == nil {
		// A 200 without a booking record is malformed; treat it as an
		// unverifiable link rather than guessing.
		logger.WarnContext(ctx, "guest token response missing booking record")
		return &domain.Access{Decision: domain.AccessInvalid}
	}

	if !res.Valid {
		return &domain.Access{
			Decision: domain.AccessExpired,
			Message:  res.Message,
			Booking:  res.Booking,
		}
	}

	if err := v.store.Set(ctx, KeyGuestToken, token); err != nil {
		logger.WarnContext(ctx, "failed to persist guest token", "error", err)
	}
	if data, err := json.Marshal(res.Booking); err == nil {
		if err := v.store.Set(ctx, KeyGuestBooking, string(data)); err != nil {
			logger.WarnContext(ctx, "failed to persist guest booking", "error", err)
		}
	}

	return &domain.Access{
		Decision: domain.AccessActive,
		Message:  res.Message,
		Booking:  res.Booking,
	}
}

// Cached returns the previously validated token and booking, so
// in-app navigation after the access page does not revalidate.
func (v *Validator) Cached(ctx context.Context) (string, *domain.GuestBooking, bool) {
	token, err := v.store.Get(ctx, KeyGuestToken)
	if err != nil || token == "" {
		return "", nil, false
	}
	raw, err := v.store.Get(ctx, KeyGuestBooking)
	if err != nil {
		return "", nil, false
	}
	var b domain.GuestBooking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return "", nil, false
	}
	return token, &b, true
}

// Forget clears the persisted guest access state.
func (v *Validator) Forget(ctx context.Context) error {
	return v.store.Clear(ctx, KeyGuestToken, KeyGuestBooking)
}
