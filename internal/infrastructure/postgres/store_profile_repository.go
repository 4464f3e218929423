package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

var _ repository.StoreProfileRepository = (*StoreProfileRepo)(nil)

// StoreProfileRepo perfil de la tienda (una sola fila).
type StoreProfileRepo struct {
	q Querier
}

// NewStoreProfileRepository construye el adaptador.
func NewStoreProfileRepository(q Querier) *StoreProfileRepo {
	return &StoreProfileRepo{q: q}
}

// Get devuelve el perfil más antiguo; nil, nil si no hay ninguno.
func (r *StoreProfileRepo) Get(ctx context.Context) (*entity.StoreProfile, error) {
	query := `
		SELECT id, store_name, address, phone, email, npwp, logo_url, created_at, updated_at
		FROM store_profiles ORDER BY created_at LIMIT 1`
	var p entity.StoreProfile
	var logo *string
	err := r.q.QueryRow(ctx, query).Scan(
		&p.ID, &p.StoreName, &p.Address, &p.Phone, &p.Email, &p.TaxID, &logo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store profile: %w", err)
	}
	p.LogoURL = derefStr(logo)
	return &p, nil
}

// Upsert inserta o reemplaza el perfil por ID.
func (r *StoreProfileRepo) Upsert(ctx context.Context, p *entity.StoreProfile) error {
	query := `
		INSERT INTO store_profiles (id, store_name, address, phone, email, npwp, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET store_name = EXCLUDED.store_name,
		    address    = EXCLUDED.address,
		    phone      = EXCLUDED.phone,
		    email      = EXCLUDED.email,
		    npwp       = EXCLUDED.npwp,
		    logo_url   = EXCLUDED.logo_url,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StoreName, p.Address, p.Phone, p.Email, p.TaxID, nullIfEmpty(p.LogoURL), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert store profile: %w", err)
	}
	return nil
}
