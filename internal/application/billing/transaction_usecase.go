package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// TransactionOptions parámetros configurables del ensamblador.
type TransactionOptions struct {
	// PriceDivergenceWarnPct porcentaje de diferencia entre el precio enviado y el de catálogo
	// a partir del cual se registra una advertencia. Negativo desactiva la advertencia.
	PriceDivergenceWarnPct decimal.Decimal
}

// TransactionUseCase crea y consulta transacciones.
type TransactionUseCase struct {
	txRunner     BillingTxRunner
	trxRepo      repository.TransactionRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	docRepo      repository.DocumentRepository
	log          *logger.Logger
	opts         TransactionOptions
	now          func() time.Time
}

// NewTransactionUseCase construye el caso de uso. Los repositorios sueltos se usan solo para lecturas;
// la escritura pasa siempre por txRunner.
func NewTransactionUseCase(
	txRunner BillingTxRunner,
	trxRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	docRepo repository.DocumentRepository,
	log *logger.Logger,
	opts TransactionOptions,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:     txRunner,
		trxRepo:      trxRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		docRepo:      docRepo,
		log:          log,
		opts:         opts,
		now:          time.Now,
	}
}

// CreateTransaction valida la solicitud, resuelve cliente y productos, calcula impuestos y
// guarda cabecera y líneas en una sola transacción de BD.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkAmounts(in.Preview()); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	date, err := parseDate(in.TransactionDate, now)
	if err != nil {
		return nil, err
	}
	code, err := NewTransactionCode(now)
	if err != nil {
		return nil, err
	}

	var (
		trx      *entity.Transaction
		customer *entity.Customer
		products = make(map[string]*entity.Product, len(in.Items))
	)
	err = uc.txRunner.RunBilling(ctx, func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		trxRepo repository.TransactionRepository,
	) error {
		// 1) Referencias: todo se resuelve antes de escribir.
		c, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}
		if c == nil {
			return domain.NewNotFound("customer", in.CustomerID)
		}
		customer = c

		lines := make([]entity.LineParams, 0, len(in.Items))
		for _, it := range in.Items {
			p, ok := products[it.ProductID]
			if !ok {
				p, err = productRepo.GetByID(ctx, it.ProductID)
				if err != nil {
					return fmt.Errorf("get product: %w", err)
				}
				if p == nil {
					return domain.NewNotFound("product", it.ProductID)
				}
				products[it.ProductID] = p
			}
			uc.warnPriceDivergence(code, p, it.UnitPrice)
			lines = append(lines, entity.LineParams{
				ID:        uuid.New().String(),
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Discount:  it.Discount,
			})
		}

		// 2) Cálculo y construcción del agregado.
		t, err := entity.NewTransaction(entity.TransactionParams{
			ID:            uuid.New().String(),
			Code:          code,
			CustomerID:    customer.ID,
			Date:          date,
			TotalDiscount: in.TotalDiscount,
			Flags:         taxFlags(in.TaxFlagsRequest),
			ServiceValue:  in.ServiceValue,
			ServiceType:   in.ServiceType,
			PaymentMethod: in.PaymentMethod,
			Lines:         lines,
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}

		// 3) Persistencia: cabecera y líneas en la misma transacción.
		if err := trxRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		trx = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", trx.ID).
		Str("transaction_code", trx.Code).
		Int("items", len(trx.Items)).
		Str("total_amount", trx.TotalAmount.StringFixed(2)).
		Msg("transacción creada")

	return toTransactionResponse(trx, customer, products, nil), nil
}

// warnPriceDivergence registra una advertencia si el precio enviado se aleja del de catálogo.
// El precio enviado se conserva siempre.
func (uc *TransactionUseCase) warnPriceDivergence(code string, p *entity.Product, unitPrice decimal.Decimal) {
	if uc.opts.PriceDivergenceWarnPct.IsNegative() || !p.Price.IsPositive() {
		return
	}
	pct := unitPrice.Sub(p.Price).Abs().Div(p.Price).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(uc.opts.PriceDivergenceWarnPct) {
		uc.log.Warn().
			Str("transaction_code", code).
			Str("product_id", p.ID).
			Str("catalog_price", p.Price.String()).
			Str("unit_price", unitPrice.String()).
			Str("divergence_pct", pct.StringFixed(2)).
			Msg("precio unitario difiere del catálogo")
	}
}

// GetTransaction devuelve la transacción con cliente, productos y documentos emitidos.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	trx, err := uc.trxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if trx == nil {
		return nil, domain.NewNotFound("transaction", id)
	}
	out, err := uc.join(ctx, []*entity.Transaction{trx})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ListTransactions lista transacciones (más recientes primero) con filtros opcionales.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, q dto.ListTransactionsQuery) (*dto.TransactionListResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > maxListLimit {
		q.Limit = maxListLimit
	}
	filter := repository.TransactionFilter{
		CustomerID: q.CustomerID,
		Limit:      q.Limit,
		Offset:     (q.Page - 1) * q.Limit,
	}
	if q.DateFrom != "" {
		from, err := parseDay(q.DateFrom, "date_from")
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := parseDay(q.DateTo, "date_to")
		if err != nil {
			return nil, err
		}
		end := to.AddDate(0, 0, 1)
		filter.DateTo = &end
	}
	if filter.DateFrom != nil && filter.DateTo != nil && !filter.DateFrom.Before(*filter.DateTo) {
		return nil, domain.Invalid("date_from posterior a date_to")
	}

	list, total, err := uc.trxRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	items, err := uc.join(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: q.Page, Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// join completa clientes, productos y documentos de un conjunto de transacciones.
func (uc *TransactionUseCase) join(ctx context.Context, list []*entity.Transaction) ([]dto.TransactionResponse, error) {
	customers := make(map[string]*entity.Customer)
	products := make(map[string]*entity.Product)
	ids := make([]string, 0, len(list))
	for _, trx := range list {
		ids = append(ids, trx.ID)
		if _, ok := customers[trx.CustomerID]; !ok {
			c, err := uc.customerRepo.GetByID(ctx, trx.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("get customer: %w", err)
			}
			customers[trx.CustomerID] = c
		}
		for _, it := range trx.Items {
			if _, ok := products[it.ProductID]; ok {
				continue
			}
			p, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("get product: %w", err)
			}
			products[it.ProductID] = p
		}
	}

	docsByTrx := make(map[string][]*entity.Document)
	if len(ids) > 0 {
		docs, err := uc.docRepo.ListByTransactionIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		for _, d := range docs {
			docsByTrx[d.TransactionID] = append(docsByTrx[d.TransactionID], d)
		}
	}

	out := make([]dto.TransactionResponse, 0, len(list))
	for _, trx := range list {
		out = append(out, *toTransactionResponse(trx, customers[trx.CustomerID], products, docsByTrx[trx.ID]))
	}
	return out, nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD; vacío devuelve now.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return parseDay(s, "transaction_date")
}

func parseDay(s, field string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, domain.Invalid("%s: formato de fecha inválido %q", field, s)
	}
	return t, nil
}

func toTransactionResponse(
	trx *entity.Transaction,
	customer *entity.Customer,
	products map[string]*entity.Product,
	docs []*entity.Document,
) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:                 trx.ID,
		TransactionCode:    trx.Code,
		CustomerID:         trx.CustomerID,
		TransactionDate:    trx.Date,
		Subtotal:           trx.Subtotal,
		TotalDiscount:      trx.TotalDiscount,
		PPNEnabled:         trx.VATEnabled,
		PPNAmount:          trx.VATAmount,
		PPh22Enabled:       trx.WithholdingAEnabled,
		PPh22Amount:        trx.WithholdingAAmount,
		PPh23Enabled:       trx.WithholdingBEnabled,
		PPh23Amount:        trx.WithholdingBAmount,
		ServiceValue:       trx.ServiceValue,
		ServiceType:        trx.ServiceType,
		RegionalTaxEnabled: trx.RegionalTaxEnabled,
		RegionalTaxAmount:  trx.RegionalTaxAmount,
		StampRequired:      trx.StampRequired,
		StampAmount:        trx.StampAmount,
		TotalAmount:        trx.TotalAmount,
		PaymentMethod:      trx.PaymentMethod,
		CreatedAt:          trx.CreatedAt,
		Items:              make([]dto.TransactionItemResponse, 0, len(trx.Items)),
	}
	if customer != nil {
		resp.Customer = toCustomerResponse(customer)
	}
	for _, it := range trx.Items {
		item := dto.TransactionItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Subtotal:  it.Subtotal,
		}
		if p := products[it.ProductID]; p != nil {
			item.ProductCode = p.Code
			item.ProductName = p.Name
			item.ProductType = p.Type
		}
		resp.Items = append(resp.Items, item)
	}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(d))
	}
	return resp
}
