package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve nil, nil si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Delete falla con domain.ErrReferentialConflict si alguna línea de transacción lo referencia.
	Delete(ctx context.Context, id string) error
}
