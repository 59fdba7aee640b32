package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourjourney/guest-portal/internal/domain"
)

type AdminRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	Create(ctx context.Context, email, username, passwordHash string) (*domain.Admin, error)
}

type AdminRepoImpl struct{ pool *pgxpool.Pool }

func NewAdminRepo(pool *pgxpool.Pool) *AdminRepoImpl { return &AdminRepoImpl{pool: pool} }

const adminCols = `id, email, username, password_hash`

func (r *AdminRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepoImpl) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepoImpl) Create(ctx context.Context, email, username, passwordHash string) (*domain.Admin, error) {
	const q = `INSERT INTO admins (id, email, username, password_hash)
  VALUES ($1,$2,$3,$4)
  RETURNING ` + adminCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, uuid.NewString(), email, username, passwordHash).
		Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
