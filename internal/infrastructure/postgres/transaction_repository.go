package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository. Solo inserción y lectura.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Create debe recibir una tx.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `
	id, transaction_code, customer_id, transaction_date, subtotal, total_discount,
	ppn_enabled, ppn_amount, pph22_enabled, pph22_amount, pph23_enabled, pph23_amount,
	service_value, service_type, regional_tax_enabled, regional_tax_amount,
	stamp_required, stamp_amount, total_amount, payment_method, created_at`

const itemColumns = `id, transaction_id, product_id, quantity, unit_price, discount, subtotal, created_at`

// Create inserta la cabecera y luego todas las líneas en un batch.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.CustomerID, t.Date, t.Subtotal, t.TotalDiscount,
		t.VATEnabled, t.VATAmount, t.WithholdingAEnabled, t.WithholdingAAmount, t.WithholdingBEnabled, t.WithholdingBAmount,
		t.ServiceValue, nullIfEmpty(t.ServiceType), t.RegionalTaxEnabled, t.RegionalTaxAmount,
		t.StampRequired, t.StampAmount, t.TotalAmount, t.PaymentMethod, t.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "transactions_code_key"):
			return fmt.Errorf("%w: transaction_code %s", domain.ErrDuplicate, t.Code)
		case isForeignKeyViolation(err, "transactions_customer_id_fkey"):
			return domain.NewNotFound("customer", t.CustomerID)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `INSERT INTO transaction_items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range t.Items {
		batch.Queue(itemQuery, it.ID, t.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.Subtotal, it.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, it := range t.Items {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err, "transaction_items_product_id_fkey") {
				return domain.NewNotFound("product", it.ProductID)
			}
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return br.Close()
}

// GetByID devuelve la transacción con sus líneas; nil, nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Transaction{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List devuelve la página pedida, más recientes primero, y el total filtrado.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		conds = append(conds, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		conds = append(conds, fmt.Sprintf("transaction_date < $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY created_at DESC, transaction_code DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountItemsByProduct cuenta líneas que referencian el producto.
func (r *TransactionRepo) CountItemsByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transaction_items WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transaction items: %w", err)
	}
	return n, nil
}

// attachItems carga las líneas de todas las transacciones con una sola consulta.
func (r *TransactionRepo) attachItems(ctx context.Context, list []*entity.Transaction) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Transaction, len(list))
	ids := make([]string, 0, len(list))
	for _, t := range list {
		byID[t.ID] = t
		ids = append(ids, t.ID)
		t.Items = []entity.LineItem{}
	}
	query := `SELECT ` + itemColumns + ` FROM transaction_items WHERE transaction_id = ANY($1) ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Discount, &it.Subtotal, &it.CreatedAt); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		if t, ok := byID[it.TransactionID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	return rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var serviceType *string
	err := row.Scan(
		&t.ID, &t.Code, &t.CustomerID, &t.Date, &t.Subtotal, &t.TotalDiscount,
		&t.VATEnabled, &t.VATAmount, &t.WithholdingAEnabled, &t.WithholdingAAmount, &t.WithholdingBEnabled, &t.WithholdingBAmount,
		&t.ServiceValue, &serviceType, &t.RegionalTaxEnabled, &t.RegionalTaxAmount,
		&t.StampRequired, &t.StampAmount, &t.TotalAmount, &t.PaymentMethod, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ServiceType = derefStr(serviceType)
	return &t, nil
}
