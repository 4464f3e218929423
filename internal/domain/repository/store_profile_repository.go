package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

// StoreProfileRepository perfil único de la tienda.
type StoreProfileRepository interface {
	// Get devuelve nil, nil si aún no se ha configurado.
	Get(ctx context.Context) (*entity.StoreProfile, error)
	Upsert(ctx context.Context, profile *entity.StoreProfile) error
}
