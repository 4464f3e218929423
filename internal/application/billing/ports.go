package billing

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

// BillingTxRunner ejecuta funciones dentro de una transacción de BD con repositorios ligados a ella.
// Si fn devuelve error se hace rollback y no queda nada visible.
type BillingTxRunner interface {
	// RunBilling se usa para crear transacciones (validación de referencias + inserción).
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		trxRepo repository.TransactionRepository,
	) error) error

	// RunDocument se usa para emitir documentos: el contador y el registro del documento
	// se confirman o se deshacen juntos.
	RunDocument(ctx context.Context, fn func(
		seqRepo repository.DocumentSequenceRepository,
		docRepo repository.DocumentRepository,
	) error) error
}

// DocumentItem línea enriquecida con los datos del producto para el documento.
type DocumentItem struct {
	entity.LineItem
	ProductCode string
	ProductName string
	ProductType string
}

// DocumentData todo lo que necesita el renderizador para un documento.
type DocumentData struct {
	DocumentType   string
	DocumentNumber string
	IssuedAt       time.Time
	Transaction    *entity.Transaction
	Customer       *entity.Customer
	Store          *entity.StoreProfile
	Items          []DocumentItem
}

// DocumentRenderer produce el contenido (bytes opacos) de un documento.
type DocumentRenderer interface {
	Render(ctx context.Context, data DocumentData) ([]byte, error)
	// ContentType tipo MIME del contenido producido (ej. application/pdf).
	ContentType() string
	// Extension extensión de archivo sin punto (ej. pdf).
	Extension() string
}

// DocumentContentStore guarda el contenido renderizado y devuelve una referencia opaca.
type DocumentContentStore interface {
	Save(ctx context.Context, name string, data []byte) (ref string, err error)
	Open(ctx context.Context, ref string) ([]byte, error)
	Remove(ctx context.Context, ref string) error
}
