package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/tax"
)

// PreviewTaxes calcula el desglose sin persistir nada. Usa la misma validación y la
// misma función de cálculo que CreateTransaction.
func PreviewTaxes(in dto.TaxPreviewRequest) (*dto.TaxBreakdownResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkAmounts(in); err != nil {
		return nil, err
	}
	b := tax.Compute(taxLines(in.Items), in.TotalDiscount, taxFlags(in.TaxFlagsRequest), in.ServiceValue)
	return toBreakdownResponse(b), nil
}

// checkAmounts reglas que no se expresan con etiquetas: escala de los importes (la de las
// columnas), descuento de línea no mayor que su importe bruto y descuento total no mayor
// que el subtotal.
func checkAmounts(in dto.TaxPreviewRequest) error {
	if err := checkScale("total_discount", in.TotalDiscount, tax.MoneyScale); err != nil {
		return err
	}
	if in.ServiceValue != nil {
		if err := checkScale("service_value", *in.ServiceValue, tax.MoneyScale); err != nil {
			return err
		}
	}
	subtotal := decimal.Zero
	for i, it := range in.Items {
		if err := checkScale(fmt.Sprintf("items[%d].quantity", i), it.Quantity, quantityScale); err != nil {
			return err
		}
		if err := checkScale(fmt.Sprintf("items[%d].unit_price", i), it.UnitPrice, tax.MoneyScale); err != nil {
			return err
		}
		if err := checkScale(fmt.Sprintf("items[%d].discount", i), it.Discount, tax.MoneyScale); err != nil {
			return err
		}
		l := tax.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, Discount: it.Discount}
		if it.Discount.GreaterThan(l.Gross()) {
			return domain.Invalid("items[%d].discount (%s) excede el importe de la línea (%s)", i, it.Discount, l.Gross())
		}
		subtotal = subtotal.Add(l.Subtotal())
	}
	if in.TotalDiscount.GreaterThan(subtotal) {
		return domain.Invalid("total_discount (%s) excede el subtotal (%s)", in.TotalDiscount, subtotal)
	}
	return nil
}

// quantityScale es la escala de transaction_items.quantity.
const quantityScale = 3

func checkScale(field string, d decimal.Decimal, places int32) error {
	if !d.Equal(d.Round(places)) {
		return domain.Invalid("%s admite como máximo %d decimales", field, places)
	}
	return nil
}

func taxLines(items []dto.TransactionItemRequest) []tax.Line {
	lines := make([]tax.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, tax.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, Discount: it.Discount})
	}
	return lines
}

func taxFlags(f dto.TaxFlagsRequest) tax.Flags {
	return tax.Flags{
		VAT:          f.PPNEnabled,
		WithholdingA: f.PPh22Enabled,
		WithholdingB: f.PPh23Enabled,
		RegionalTax:  f.RegionalTaxEnabled,
	}
}

func toBreakdownResponse(b tax.Breakdown) *dto.TaxBreakdownResponse {
	return &dto.TaxBreakdownResponse{
		Subtotal:          b.Subtotal,
		TotalDiscount:     b.TotalDiscount,
		TaxableBase:       b.TaxableBase,
		PPNAmount:         b.VATAmount,
		PPh22Amount:       b.WithholdingAAmount,
		PPh23Amount:       b.WithholdingBAmount,
		RegionalTaxAmount: b.RegionalTaxAmount,
		TotalBeforeStamp:  b.TotalBeforeStamp,
		StampRequired:     b.StampRequired,
		StampAmount:       b.StampAmount,
		TotalAmount:       b.TotalAmount,
	}
}
