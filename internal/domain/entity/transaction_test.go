package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/tax"
)

func baseParams() entity.TransactionParams {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return entity.TransactionParams{
		ID:            "trx-1",
		Code:          "TRX-1741944600000-abc123xyz",
		CustomerID:    "cus-1",
		Date:          now,
		TotalDiscount: decimal.Zero,
		Flags:         tax.Flags{VAT: true},
		PaymentMethod: entity.PaymentMethodCash,
		Lines: []entity.LineParams{
			{ID: "l1", ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100000), Discount: decimal.NewFromInt(10000)},
			{ID: "l2", ProductID: "p2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200000), Discount: decimal.Zero},
		},
		CreatedAt: now,
	}
}

func TestNewTransaction_MontosDesdeElMotor(t *testing.T) {
	trx, err := entity.NewTransaction(baseParams())
	require.NoError(t, err)

	assert.True(t, trx.Subtotal.Equal(decimal.NewFromInt(390000)))
	assert.True(t, trx.VATAmount.Equal(decimal.NewFromInt(42900)))
	assert.True(t, trx.TotalAmount.Equal(decimal.NewFromInt(432900)))
	assert.True(t, trx.VATEnabled)
	assert.Equal(t, tax.Flags{VAT: true}, trx.Flags())

	require.Len(t, trx.Items, 2)
	assert.True(t, trx.Items[0].Subtotal.Equal(decimal.NewFromInt(190000)))
	assert.True(t, trx.Items[1].Subtotal.Equal(decimal.NewFromInt(200000)))
	for _, it := range trx.Items {
		assert.Equal(t, "trx-1", it.TransactionID)
	}
}

func TestNewTransaction_Rechazos(t *testing.T) {
	cases := map[string]func(p *entity.TransactionParams){
		"sin líneas":         func(p *entity.TransactionParams) { p.Lines = nil },
		"sin cliente":        func(p *entity.TransactionParams) { p.CustomerID = "" },
		"método desconocido": func(p *entity.TransactionParams) { p.PaymentMethod = "CHEQUE" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := baseParams()
			mutate(&p)
			_, err := entity.NewTransaction(p)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}
