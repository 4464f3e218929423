package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxFlagsRequest toggles de impuestos compartidos por la vista previa y la creación.
type TaxFlagsRequest struct {
	PPNEnabled         bool `json:"ppn_enabled"`
	PPh22Enabled       bool `json:"pph22_enabled"`
	PPh23Enabled       bool `json:"pph23_enabled"`
	RegionalTaxEnabled bool `json:"regional_tax_enabled"`
}

// TransactionItemRequest línea enviada por el cliente (precio congelado).
type TransactionItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount" validate:"gte=0"`
}

// TaxPreviewRequest body para POST /api/taxes/preview.
type TaxPreviewRequest struct {
	TaxFlagsRequest
	TotalDiscount decimal.Decimal          `json:"total_discount" validate:"gte=0"`
	ServiceValue  *decimal.Decimal         `json:"service_value,omitempty" validate:"omitempty,gte=0"`
	Items         []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateTransactionRequest body para POST /api/transactions.
// TransactionDate acepta RFC3339 o YYYY-MM-DD; vacío usa la fecha actual.
type CreateTransactionRequest struct {
	TaxFlagsRequest
	CustomerID      string                   `json:"customer_id" validate:"required"`
	TransactionDate string                   `json:"transaction_date,omitempty"`
	TotalDiscount   decimal.Decimal          `json:"total_discount" validate:"gte=0"`
	ServiceValue    *decimal.Decimal         `json:"service_value,omitempty" validate:"omitempty,gte=0"`
	ServiceType     string                   `json:"service_type,omitempty" validate:"max=100"`
	PaymentMethod   string                   `json:"payment_method" validate:"required,oneof=TUNAI NON_TUNAI"`
	Items           []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Preview extrae la parte de cálculo de la solicitud.
func (r CreateTransactionRequest) Preview() TaxPreviewRequest {
	return TaxPreviewRequest{
		TaxFlagsRequest: r.TaxFlagsRequest,
		TotalDiscount:   r.TotalDiscount,
		ServiceValue:    r.ServiceValue,
		Items:           r.Items,
	}
}

// TaxBreakdownResponse desglose de impuestos y totales.
type TaxBreakdownResponse struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	TotalDiscount      decimal.Decimal `json:"total_discount"`
	TaxableBase        decimal.Decimal `json:"taxable_base"`
	PPNAmount          decimal.Decimal `json:"ppn_amount"`
	PPh22Amount        decimal.Decimal `json:"pph22_amount"`
	PPh23Amount        decimal.Decimal `json:"pph23_amount"`
	RegionalTaxAmount  decimal.Decimal `json:"regional_tax_amount"`
	TotalBeforeStamp   decimal.Decimal `json:"total_before_stamp"`
	StampRequired      bool            `json:"stamp_required"`
	StampAmount        decimal.Decimal `json:"stamp_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// TransactionItemResponse línea con los datos del producto.
type TransactionItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	ProductType string          `json:"product_type,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse transacción con cliente, líneas y documentos emitidos.
type TransactionResponse struct {
	ID                 string                    `json:"id"`
	TransactionCode    string                    `json:"transaction_code"`
	CustomerID         string                    `json:"customer_id"`
	Customer           *CustomerResponse         `json:"customer,omitempty"`
	TransactionDate    time.Time                 `json:"transaction_date"`
	Subtotal           decimal.Decimal           `json:"subtotal"`
	TotalDiscount      decimal.Decimal           `json:"total_discount"`
	PPNEnabled         bool                      `json:"ppn_enabled"`
	PPNAmount          decimal.Decimal           `json:"ppn_amount"`
	PPh22Enabled       bool                      `json:"pph22_enabled"`
	PPh22Amount        decimal.Decimal           `json:"pph22_amount"`
	PPh23Enabled       bool                      `json:"pph23_enabled"`
	PPh23Amount        decimal.Decimal           `json:"pph23_amount"`
	ServiceValue       *decimal.Decimal          `json:"service_value,omitempty"`
	ServiceType        string                    `json:"service_type,omitempty"`
	RegionalTaxEnabled bool                      `json:"regional_tax_enabled"`
	RegionalTaxAmount  decimal.Decimal           `json:"regional_tax_amount"`
	StampRequired      bool                      `json:"stamp_required"`
	StampAmount        decimal.Decimal           `json:"stamp_amount"`
	TotalAmount        decimal.Decimal           `json:"total_amount"`
	PaymentMethod      string                    `json:"payment_method"`
	CreatedAt          time.Time                 `json:"created_at"`
	Items              []TransactionItemResponse `json:"items"`
	Documents          []DocumentResponse        `json:"documents,omitempty"`
}

// ListTransactionsQuery parámetros de GET /api/transactions.
// DateFrom/DateTo en formato YYYY-MM-DD (ambos inclusive).
type ListTransactionsQuery struct {
	CustomerID string `query:"customer_id"`
	DateFrom   string `query:"date_from"`
	DateTo     string `query:"date_to"`
	Page       int    `query:"page" validate:"min=0"`
	Limit      int    `query:"limit" validate:"min=0,max=100"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
