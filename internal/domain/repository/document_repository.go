package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

// DocumentRepository registros de documentos generados (solo inserción y lectura).
type DocumentRepository interface {
	// Create falla con domain.ErrAllocationConflict si el número ya existe para el tipo.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByTransactionIDs(ctx context.Context, transactionIDs []string) ([]*entity.Document, error)
}

// DocumentSequenceRepository contador atómico por tipo de documento.
type DocumentSequenceRepository interface {
	// Next incrementa y devuelve el contador del tipo. Dentro de una transacción de BD
	// el incremento se deshace con el rollback.
	Next(ctx context.Context, documentType string) (int64, error)
}
