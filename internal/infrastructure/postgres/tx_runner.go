package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit, o Rollback si fn falla.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling transacción con repos de clientes, productos y transacciones (CreateTransaction).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	trxRepo repository.TransactionRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCustomerRepository(tx), NewProductRepository(tx), NewTransactionRepository(tx))
	})
}

// RunDocument transacción con el contador y los documentos (IssueDocument).
// El UPSERT del contador bloquea la fila del tipo hasta el Commit/Rollback.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(
	seqRepo repository.DocumentSequenceRepository,
	docRepo repository.DocumentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentSequenceRepository(tx), NewDocumentRepository(tx))
	})
}
