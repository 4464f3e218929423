package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/pos-backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacén en memoria con un cliente
// "cus-1", productos "p1" (BARANG) y "p2" (JASA) y el perfil de la tienda.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now().UTC()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "cus-1", InstitutionName: "SMA Negeri 1", Address: "Jl. Juanda", ContactPerson: "Sari", Phone: "022", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Code: "BRG-001", Name: "Kertas A4", Type: entity.ProductTypeGoods, Price: decimal.NewFromInt(100000), CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Code: "JSA-001", Name: "Instalasi", Type: entity.ProductTypeService, Price: decimal.NewFromInt(200000), CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.StoreProfile().Upsert(ctx, &entity.StoreProfile{ID: "store-1", StoreName: "Toko Sinar Jaya", Address: "Jl. Merdeka 1", Phone: "022-9", Email: "toko@example.com", TaxID: "01.234", CreatedAt: now, UpdatedAt: now}))

	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	log := logger.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.AccessLog(log))
	apphttp.Router(app, apphttp.RouterDeps{
		TransactionUC: billing.NewTransactionUseCase(s, s.Transactions(), s.Customers(), s.Products(), s.Documents(), log,
			billing.TransactionOptions{PriceDivergenceWarnPct: decimal.NewFromInt(20)}),
		DocumentUC: billing.NewDocumentUseCase(s, s.Transactions(), s.Customers(), s.Products(), s.StoreProfile(),
			s.Documents(), pdf.NewRenderer(), files, log),
		CustomerUC:     billing.NewCustomerUseCase(s.Customers()),
		ProductUC:      usecase.NewProductUseCase(s.Products(), s.Transactions()),
		StoreProfileUC: usecase.NewStoreProfileUseCase(s.StoreProfile()),
	})
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func transactionBody() map[string]any {
	return map[string]any{
		"customer_id":      "cus-1",
		"transaction_date": "2025-03-14",
		"ppn_enabled":      true,
		"payment_method":   "TUNAI",
		"items": []map[string]any{
			{"product_id": "p1", "quantity": "2", "unit_price": "100000", "discount": "10000"},
			{"product_id": "p2", "quantity": "1", "unit_price": "200000"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTaxPreview(t *testing.T) {
	app, _ := buildTestApp(t)
	body := transactionBody()
	delete(body, "customer_id")

	resp := doJSON(t, app, http.MethodPost, "/api/taxes/preview", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.TaxBreakdownResponse](t, resp)
	assert.True(t, out.TaxableBase.Equal(decimal.NewFromInt(390000)))
	assert.True(t, out.PPNAmount.Equal(decimal.NewFromInt(42900)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(432900)))
}

func TestCreateTransaction_YDocumento(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/transactions", transactionBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	trx := decode[dto.TransactionResponse](t, resp)
	assert.True(t, trx.TotalAmount.Equal(decimal.NewFromInt(432900)))
	assert.Len(t, trx.Items, 2)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/"+trx.ID+"/documents", map[string]string{"document_type": "INVOICE"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	assert.Regexp(t, `^INV/0001/\d{2}/\d{4}$`, doc.DocumentNumber)

	resp = doJSON(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/content", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "INV-0001-")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp = doJSON(t, app, http.MethodGet, "/api/transactions/"+trx.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.TransactionResponse](t, resp)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, doc.DocumentNumber, got.Documents[0].DocumentNumber)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions?customer_id=cus-1&date_from=2025-03-14&date_to=2025-03-14", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.TransactionListResponse](t, resp)
	assert.Equal(t, 1, list.Page.Total)
}

func TestCreateTransaction_Errores(t *testing.T) {
	app, s := buildTestApp(t)

	t.Run("cliente inexistente", func(t *testing.T) {
		body := transactionBody()
		body["customer_id"] = "nope"
		resp := doJSON(t, app, http.MethodPost, "/api/transactions", body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		out := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "NOT_FOUND", out.Code)
		assert.Contains(t, out.Message, "nope")
	})
	t.Run("cantidad cero", func(t *testing.T) {
		body := transactionBody()
		body["items"] = []map[string]any{{"product_id": "p1", "quantity": "0", "unit_price": "1000"}}
		resp := doJSON(t, app, http.MethodPost, "/api/transactions", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
	})
	t.Run("cuerpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
	})

	n, err := s.Transactions().CountItemsByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIssueDocument_TipoDesconocido(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/transactions", transactionBody())
	trx := decode[dto.TransactionResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/"+trx.ID+"/documents", map[string]string{"document_type": "MEMO"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/nope/documents", map[string]string{"document_type": "BAST"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteProduct_Referenciado(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/transactions", transactionBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/products/p1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "REFERENTIAL_CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"code": "BRG-009", "name": "Map", "type": "BARANG", "price": "5000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProduct_Duplicado(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"code": "BRG-001", "name": "Otro", "type": "BARANG", "price": "5000"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCustomersYStoreProfile(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{
		"institution_name": "SD Negeri 3", "address": "Jl. Asia Afrika", "contact_person": "Budi", "phone": "0812",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c := decode[dto.CustomerResponse](t, resp)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/"+c.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/customers?limit=10", nil)
	list := decode[dto.CustomerListResponse](t, resp)
	assert.Len(t, list.Items, 2)

	resp = doJSON(t, app, http.MethodPut, "/api/store-profile", map[string]any{
		"store_name": "Toko Baru", "address": "Jl. Braga", "phone": "022", "email": "baru@example.com", "npwp": "02.111",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/store-profile", nil)
	profile := decode[dto.StoreProfileResponse](t, resp)
	assert.Equal(t, "Toko Baru", profile.StoreName)
	assert.Equal(t, "store-1", profile.ID)
}

func TestRutaInexistente(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}
