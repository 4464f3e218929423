package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/tax"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/memory"
)

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	s := memory.NewStore()
	return usecase.NewProductUseCase(s.Products(), s.Transactions()), s
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	in := dto.CreateProductRequest{Code: "BRG-001", Name: "Kertas A4", Type: entity.ProductTypeGoods, Price: decimal.NewFromInt(55000)}

	p, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByCode(ctx, "BRG-001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProductCreate_Validacion(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "X", Name: "Y", Type: "OTRO", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Code: "X", Name: "Y", Type: entity.ProductTypeService})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete(t *testing.T) {
	uc, s := newProductUseCase()
	ctx := context.Background()

	used, err := uc.Create(ctx, dto.CreateProductRequest{Code: "BRG-001", Name: "Kertas", Type: entity.ProductTypeGoods, Price: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	free, err := uc.Create(ctx, dto.CreateProductRequest{Code: "BRG-002", Name: "Tinta", Type: entity.ProductTypeGoods, Price: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "cus-1", InstitutionName: "SD 1", CreatedAt: now, UpdatedAt: now}))
	trx, err := entity.NewTransaction(entity.TransactionParams{
		ID: "trx-1", Code: "TRX-1-abcdefghi", CustomerID: "cus-1", Date: now,
		Flags: tax.Flags{VAT: true}, PaymentMethod: entity.PaymentMethodCash, CreatedAt: now,
		Lines: []entity.LineParams{{ID: "it-1", ProductID: used.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)}},
	})
	require.NoError(t, err)
	require.NoError(t, s.Transactions().Create(ctx, trx))

	t.Run("inexistente", func(t *testing.T) {
		assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)
	})
	t.Run("referenciado", func(t *testing.T) {
		assert.ErrorIs(t, uc.Delete(ctx, used.ID), domain.ErrReferentialConflict)
		_, err := uc.GetByID(ctx, used.ID)
		assert.NoError(t, err)
	})
	t.Run("libre", func(t *testing.T) {
		require.NoError(t, uc.Delete(ctx, free.ID))
		_, err := uc.GetByID(ctx, free.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProductList_Paginacion(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	for _, code := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Code: code, Name: code, Type: entity.ProductTypeGoods, Price: decimal.NewFromInt(10)})
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	_, err = uc.List(ctx, dto.PageRequest{Limit: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStoreProfile_UpsertYGet(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewStoreProfileUseCase(s.StoreProfile())
	ctx := context.Background()

	_, err := uc.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in := dto.StoreProfileRequest{StoreName: "Toko Sinar", Address: "Jl. Merdeka 1", Phone: "022", Email: "toko@example.com", TaxID: "01.234"}
	first, err := uc.Upsert(ctx, in)
	require.NoError(t, err)

	in.StoreName = "Toko Sinar Jaya"
	second, err := uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Toko Sinar Jaya", got.StoreName)

	_, err = uc.Upsert(ctx, dto.StoreProfileRequest{StoreName: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
