package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

// TransactionFilter filtros del listado de transacciones.
// DateFrom es inclusivo y DateTo exclusivo (sobre transaction_date).
type TransactionFilter struct {
	CustomerID string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// TransactionRepository persiste transacciones con sus líneas.
// No hay Update: una transacción es de solo escritura.
type TransactionRepository interface {
	// Create guarda cabecera y líneas; debe ejecutarse dentro de una transacción de BD.
	Create(ctx context.Context, trx *entity.Transaction) error
	// GetByID devuelve la transacción con sus líneas, o nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// List devuelve la página pedida (con líneas) y el total que cumple el filtro.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, int, error)
	// CountItemsByProduct cuenta las líneas que referencian el producto.
	CountItemsByProduct(ctx context.Context, productID string) (int64, error)
}
