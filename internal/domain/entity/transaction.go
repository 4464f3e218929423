package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/tax"
)

// Métodos de pago.
const (
	PaymentMethodCash    = "TUNAI"
	PaymentMethodNonCash = "NON_TUNAI"
)

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodNonCash
}

// Transaction cabecera de una transacción comercial con sus líneas.
// Es un registro de solo escritura: se construye con NewTransaction y no existe
// operación de actualización en ningún repositorio.
type Transaction struct {
	ID                  string
	Code                string // TRX-<ms>-<token>, único
	CustomerID          string
	Date                time.Time
	Subtotal            decimal.Decimal
	TotalDiscount       decimal.Decimal
	VATEnabled          bool
	VATAmount           decimal.Decimal
	WithholdingAEnabled bool
	WithholdingAAmount  decimal.Decimal
	WithholdingBEnabled bool
	WithholdingBAmount  decimal.Decimal
	ServiceValue        *decimal.Decimal
	ServiceType         string
	RegionalTaxEnabled  bool
	RegionalTaxAmount   decimal.Decimal
	StampRequired       bool
	StampAmount         decimal.Decimal
	TotalAmount         decimal.Decimal
	PaymentMethod       string
	CreatedAt           time.Time
	Items               []LineItem
}

// LineItem línea de la transacción con precio y cantidad congelados al momento de la venta.
type LineItem struct {
	ID            string
	TransactionID string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	Subtotal      decimal.Decimal // Quantity * UnitPrice − Discount
	CreatedAt     time.Time
}

// LineParams datos de entrada de una línea.
type LineParams struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// TransactionParams todo lo necesario para construir una transacción.
type TransactionParams struct {
	ID            string
	Code          string
	CustomerID    string
	Date          time.Time
	TotalDiscount decimal.Decimal
	Flags         tax.Flags
	ServiceValue  *decimal.Decimal
	ServiceType   string
	PaymentMethod string
	Lines         []LineParams
	CreatedAt     time.Time
}

// TaxLines convierte las líneas de entrada al formato del motor de impuestos.
func (p TransactionParams) TaxLines() []tax.Line {
	lines := make([]tax.Line, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, tax.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice, Discount: l.Discount})
	}
	return lines
}

// NewTransaction construye la transacción aplicando el motor de impuestos.
// Es el único punto donde se asignan montos.
func NewTransaction(p TransactionParams) (*Transaction, error) {
	if p.ID == "" || p.Code == "" || p.CustomerID == "" {
		return nil, domain.Invalid("id, código y cliente son obligatorios")
	}
	if len(p.Lines) == 0 {
		return nil, domain.Invalid("la transacción debe tener al menos una línea")
	}
	if !ValidPaymentMethod(p.PaymentMethod) {
		return nil, domain.Invalid("método de pago desconocido %q", p.PaymentMethod)
	}

	b := tax.Compute(p.TaxLines(), p.TotalDiscount, p.Flags, p.ServiceValue)

	trx := &Transaction{
		ID:                  p.ID,
		Code:                p.Code,
		CustomerID:          p.CustomerID,
		Date:                p.Date,
		Subtotal:            b.Subtotal,
		TotalDiscount:       b.TotalDiscount,
		VATEnabled:          p.Flags.VAT,
		VATAmount:           b.VATAmount,
		WithholdingAEnabled: p.Flags.WithholdingA,
		WithholdingAAmount:  b.WithholdingAAmount,
		WithholdingBEnabled: p.Flags.WithholdingB,
		WithholdingBAmount:  b.WithholdingBAmount,
		ServiceValue:        p.ServiceValue,
		ServiceType:         p.ServiceType,
		RegionalTaxEnabled:  p.Flags.RegionalTax,
		RegionalTaxAmount:   b.RegionalTaxAmount,
		StampRequired:       b.StampRequired,
		StampAmount:         b.StampAmount,
		TotalAmount:         b.TotalAmount,
		PaymentMethod:       p.PaymentMethod,
		CreatedAt:           p.CreatedAt,
		Items:               make([]LineItem, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		trx.Items = append(trx.Items, LineItem{
			ID:            l.ID,
			TransactionID: p.ID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Discount:      l.Discount,
			Subtotal:      tax.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice, Discount: l.Discount}.Subtotal(),
			CreatedAt:     p.CreatedAt,
		})
	}
	return trx, nil
}

// Flags devuelve los flags de impuestos con los que se construyó.
func (t *Transaction) Flags() tax.Flags {
	return tax.Flags{
		VAT:          t.VATEnabled,
		WithholdingA: t.WithholdingAEnabled,
		WithholdingB: t.WithholdingBEnabled,
		RegionalTax:  t.RegionalTaxEnabled,
	}
}
