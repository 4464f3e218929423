package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

var (
	_ repository.DocumentRepository         = (*DocumentRepo)(nil)
	_ repository.DocumentSequenceRepository = (*DocumentSequenceRepo)(nil)
)

// DocumentRepo registros de documentos emitidos.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, transaction_id, document_type, document_number, file_path, created_at`

// Create inserta el documento. UNIQUE(document_type, document_number) es la última
// defensa contra números repetidos.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.TransactionID, d.Type, d.Number, d.ContentRef, d.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "documents_type_number_key"):
			return fmt.Errorf("%w: %s %s", domain.ErrAllocationConflict, d.Type, d.Number)
		case isForeignKeyViolation(err, "documents_transaction_id_fkey"):
			return domain.NewNotFound("transaction", d.TransactionID)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento; nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var d entity.Document
	err := r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id).Scan(
		&d.ID, &d.TransactionID, &d.Type, &d.Number, &d.ContentRef, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByTransactionIDs documentos de varias transacciones, en orden de emisión.
func (r *DocumentRepo) ListByTransactionIDs(ctx context.Context, ids []string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE transaction_id = ANY($1) ORDER BY created_at, document_number`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.TransactionID, &d.Type, &d.Number, &d.ContentRef, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DocumentSequenceRepo contador por tipo de documento.
type DocumentSequenceRepo struct {
	q Querier
}

// NewDocumentSequenceRepository construye el adaptador.
func NewDocumentSequenceRepository(q Querier) *DocumentSequenceRepo {
	return &DocumentSequenceRepo{q: q}
}

// Next incrementa el contador del tipo en un solo UPSERT. La fila queda bloqueada
// hasta el fin de la transacción, así que emisiones concurrentes del mismo tipo se serializan.
func (r *DocumentSequenceRepo) Next(ctx context.Context, documentType string) (int64, error) {
	const query = `
		INSERT INTO document_sequences (document_type, last_value)
		VALUES ($1, 1)
		ON CONFLICT (document_type)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var v int64
	if err := r.q.QueryRow(ctx, query, documentType).Scan(&v); err != nil {
		return 0, fmt.Errorf("next document sequence: %w", err)
	}
	return v, nil
}
