package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourjourney/guest-portal/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		wifi_name TEXT NOT NULL DEFAULT '',
		wifi_password TEXT NOT NULL DEFAULT '',
		checkin_time TEXT NOT NULL DEFAULT '',
		checkin_instructions TEXT NOT NULL DEFAULT '',
		checkout_time TEXT NOT NULL DEFAULT '',
		checkout_instructions TEXT NOT NULL DEFAULT '',
		house_rules TEXT[] NOT NULL DEFAULT '{}',
		host_name TEXT NOT NULL DEFAULT '',
		host_phone TEXT NOT NULL DEFAULT '',
		emergency_contacts JSONB NOT NULL DEFAULT '[]',
		faq JSONB NOT NULL DEFAULT '[]',
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS guest_bookings (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL,
		property_slug TEXT NOT NULL,
		property_name TEXT NOT NULL,
		guest_name TEXT NOT NULL,
		guest_surname TEXT NOT NULL,
		guest_email TEXT NOT NULL DEFAULT '',
		num_guests INT NOT NULL DEFAULT 1,
		room_number TEXT NOT NULL DEFAULT '',
		checkin_date DATE NOT NULL,
		checkout_date DATE NOT NULL,
		token TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_guest_bookings_token ON guest_bookings (token)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rate_limits (
		key TEXT PRIMARY KEY,
		count INT NOT NULL,
		window_start TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema. Statements are idempotent so startup can
// run this unconditionally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	logger.Info("schema applied", "statements", len(schema))
	return nil
}
