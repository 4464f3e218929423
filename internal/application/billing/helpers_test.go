package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedStore crea un almacén con un cliente, dos productos y el perfil de la tienda.
func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now().UTC()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{
		ID: "cus-1", InstitutionName: "SMA Negeri 1 Bandung", Address: "Jl. Ir. H. Juanda 93",
		ContactPerson: "Ibu Sari", Phone: "022-123", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "p1", Code: "BRG-001", Name: "Kertas A4", Type: entity.ProductTypeGoods, Price: dec("100000"), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "p2", Code: "JSA-001", Name: "Instalasi", Type: entity.ProductTypeService, Price: dec("200000"), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.StoreProfile().Upsert(ctx, &entity.StoreProfile{
		ID: "store-1", StoreName: "Toko Sinar Jaya", Address: "Jl. Merdeka 1", Phone: "022-999",
		Email: "toko@example.com", TaxID: "01.234.567.8-901.000", CreatedAt: now, UpdatedAt: now,
	}))
	return s
}

func newTransactionUseCase(s *memory.Store, runner billing.BillingTxRunner, log *logger.Logger) *billing.TransactionUseCase {
	if runner == nil {
		runner = s
	}
	if log == nil {
		log = logger.Nop()
	}
	return billing.NewTransactionUseCase(runner, s.Transactions(), s.Customers(), s.Products(), s.Documents(), log,
		billing.TransactionOptions{PriceDivergenceWarnPct: dec("20")})
}

// scenarioA: dos líneas, solo PPN. 390.000 / 42.900 / 432.900.
func scenarioA() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TaxFlagsRequest: dto.TaxFlagsRequest{PPNEnabled: true},
		CustomerID:      "cus-1",
		TransactionDate: "2025-03-14",
		PaymentMethod:   entity.PaymentMethodCash,
		Items: []dto.TransactionItemRequest{
			{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100000"), Discount: dec("10000")},
			{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("200000")},
		},
	}
}
