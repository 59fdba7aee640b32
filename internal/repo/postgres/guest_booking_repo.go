package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourjourney/guest-portal/internal/domain"
)

type GuestBookingRepo interface {
	Create(ctx context.Context, in *domain.GuestBookingCreateReq) (*domain.GuestBooking, error)
	GetByToken(ctx context.Context, token string) (*domain.GuestBooking, error)
	List(ctx context.Context, limit, offset int) ([]domain.GuestBooking, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type GuestBookingRepoImpl struct{ pool *pgxpool.Pool }

func NewGuestBookingRepo(pool *pgxpool.Pool) *GuestBookingRepoImpl {
	return &GuestBookingRepoImpl{pool: pool}
}

const guestBookingCols = `id, property_id, property_slug, property_name,
guest_name, guest_surname, guest_email,
num_guests, room_number,
checkin_date, checkout_date,
token, created_at`

func scanGuestBooking(row pgx.Row) (*domain.GuestBooking, error) {
	var b domain.GuestBooking
	var checkin, checkout time.Time
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.PropertySlug, &b.PropertyName,
		&b.GuestName, &b.GuestSurname, &b.GuestEmail,
		&b.NumGuests, &b.RoomNumber,
		&checkin, &checkout,
		&b.Token, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CheckinDate = checkin.Format(domain.DateLayout)
	b.CheckoutDate = checkout.Format(domain.DateLayout)
	return &b, nil
}

func (r *GuestBookingRepoImpl) Create(ctx context.Context, in *domain.GuestBookingCreateReq) (*domain.GuestBooking, error) {
	const q = `INSERT INTO guest_bookings (
    id, property_id, property_slug, property_name,
    guest_name, guest_surname, guest_email,
    num_guests, room_number,
    checkin_date, checkout_date, token
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  RETURNING ` + guestBookingCols

	tok := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanGuestBooking(r.pool.QueryRow(ctx, q, uuid.NewString(),
		in.PropertyID, in.PropertySlug, in.PropertyName,
		in.GuestName, in.GuestSurname, in.GuestEmail,
		in.NumGuests, in.RoomNumber,
		in.CheckinDate, in.CheckoutDate, tok,
	))
}

func (r *GuestBookingRepoImpl) GetByToken(ctx context.Context, token string) (*domain.GuestBooking, error) {
	const q = `SELECT ` + guestBookingCols + ` FROM guest_bookings WHERE token=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanGuestBooking(r.pool.QueryRow(ctx, q, token))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *GuestBookingRepoImpl) List(ctx context.Context, limit, offset int) ([]domain.GuestBooking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + guestBookingCols + ` FROM guest_bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.GuestBooking, 0, limit)
	for rows.Next() {
		b, err := scanGuestBooking(rows)
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, rows.Err()
}

func (r *GuestBookingRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM guest_bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
