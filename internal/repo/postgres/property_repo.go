package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourjourney/guest-portal/internal/domain"
)

type PropertyRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	Create(ctx context.Context, in *domain.PropertyCreateReq) (*domain.Property, error)
	Update(ctx context.Context, id string, in *domain.PropertyCreateReq) (*domain.Property, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PropertyRepoImpl struct{ pool *pgxpool.Pool }

func NewPropertyRepo(pool *pgxpool.Pool) *PropertyRepoImpl { return &PropertyRepoImpl{pool: pool} }

const propertyCols = `id, name, slug,
wifi_name, wifi_password,
checkin_time, checkin_instructions,
checkout_time, checkout_instructions,
house_rules, host_name, host_phone,
emergency_contacts, faq, image_url, created_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	var contacts, faq []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug,
		&p.WifiName, &p.WifiPassword,
		&p.CheckinTime, &p.CheckinInstructions,
		&p.CheckoutTime, &p.CheckoutInstructions,
		&p.HouseRules, &p.HostName, &p.HostPhone,
		&contacts, &faq, &p.ImageURL, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &p.EmergencyContacts); err != nil {
			return nil, err
		}
	}
	if len(faq) > 0 {
		if err := json.Unmarshal(faq, &p.FAQ); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *PropertyRepoImpl) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE slug=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PropertyRepoImpl) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PropertyRepoImpl) List(ctx context.Context) ([]domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, rows.Err()
}

func (r *PropertyRepoImpl) Create(ctx context.Context, in *domain.PropertyCreateReq) (*domain.Property, error) {
	const q = `INSERT INTO properties (
    id, name, slug,
    wifi_name, wifi_password,
    checkin_time, checkin_instructions,
    checkout_time, checkout_instructions,
    house_rules, host_name, host_phone,
    emergency_contacts, faq, image_url
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
  RETURNING ` + propertyCols

	contacts, err := json.Marshal(in.EmergencyContacts)
	if err != nil {
		return nil, err
	}
	faq, err := json.Marshal(in.FAQ)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q, uuid.NewString(),
		in.Name, in.Slug,
		in.WifiName, in.WifiPassword,
		in.CheckinTime, in.CheckinInstructions,
		in.CheckoutTime, in.CheckoutInstructions,
		in.HouseRules, in.HostName, in.HostPhone,
		contacts, faq, in.ImageURL,
	))
}

func (r *PropertyRepoImpl) Update(ctx context.Context, id string, in *domain.PropertyCreateReq) (*domain.Property, error) {
	const q = `UPDATE properties SET
    name=$2, slug=$3,
    wifi_name=$4, wifi_password=$5,
    checkin_time=$6, checkin_instructions=$7,
    checkout_time=$8, checkout_instructions=$9,
    house_rules=$10, host_name=$11, host_phone=$12,
    emergency_contacts=$13, faq=$14, image_url=$15
  WHERE id=$1
  RETURNING ` + propertyCols

	contacts, err := json.Marshal(in.EmergencyContacts)
	if err != nil {
		return nil, err
	}
	faq, err := json.Marshal(in.FAQ)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id,
		in.Name, in.Slug,
		in.WifiName, in.WifiPassword,
		in.CheckinTime, in.CheckinInstructions,
		in.CheckoutTime, in.CheckoutInstructions,
		in.HouseRules, in.HostName, in.HostPhone,
		contacts, faq, in.ImageURL,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PropertyRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM properties WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
