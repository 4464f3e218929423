// Package tax contiene el motor de impuestos de una transacción (servicio de dominio puro).
//
// Orden fijo de cálculo; cada etapa usa la anterior:
//
//	subtotal          = Σ (cantidad * precio − descuento)
//	base imponible    = subtotal − descuento total
//	PPN               = base * 11%
//	PPh 22            = base * 1.5%
//	PPh 23            = valor del servicio * 2%
//	impuesto regional = base * 10%
//	total antes sello = base + PPN + regional − PPh22 − PPh23
//	sello (materai)   = 10.000 si total antes sello ≥ 5.000.000
//	total             = total antes sello + sello
package tax

import "github.com/shopspring/decimal"

// Tasas y umbrales. Se exponen para documentación y pruebas; no se deben mutar.
var (
	RateVAT          = decimal.RequireFromString("0.11")
	RateWithholdingA = decimal.RequireFromString("0.015")
	RateWithholdingB = decimal.RequireFromString("0.02")
	RateRegional     = decimal.RequireFromString("0.10")

	StampThreshold = decimal.NewFromInt(5_000_000)
	StampDuty      = decimal.NewFromInt(10_000)
)

// MoneyScale es la escala de las columnas NUMERIC(15,2).
const MoneyScale = 2

// Line es la parte de una línea que interviene en el cálculo.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Gross devuelve cantidad * precio unitario.
func (l Line) Gross() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Subtotal devuelve cantidad * precio − descuento, redondeado a la escala monetaria.
func (l Line) Subtotal() decimal.Decimal {
	return l.Gross().Sub(l.Discount).Round(MoneyScale)
}

// Flags activa cada impuesto de forma independiente.
type Flags struct {
	VAT          bool // PPN
	WithholdingA bool // PPh 22
	WithholdingB bool // PPh 23, sobre el valor del servicio
	RegionalTax  bool
}

// Breakdown resultado del motor.
type Breakdown struct {
	Subtotal           decimal.Decimal
	TotalDiscount      decimal.Decimal
	TaxableBase        decimal.Decimal
	VATAmount          decimal.Decimal
	WithholdingAAmount decimal.Decimal
	WithholdingBAmount decimal.Decimal
	RegionalTaxAmount  decimal.Decimal
	TotalBeforeStamp   decimal.Decimal
	StampRequired      bool
	StampAmount        decimal.Decimal
	TotalAmount        decimal.Decimal
}

// Compute aplica el cálculo completo. Es una función pura: sin I/O y sin errores.
// serviceValue nil significa "no informado"; en ese caso PPh 23 es 0 aunque el flag esté activo.
// Si totalDiscount supera el subtotal la base queda negativa y se calcula igual;
// el rechazo de ese caso corresponde a la capa de aplicación.
func Compute(items []Line, totalDiscount decimal.Decimal, flags Flags, serviceValue *decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}

	base := subtotal.Sub(totalDiscount)

	vat := decimal.Zero
	if flags.VAT {
		vat = percentOf(base, RateVAT)
	}
	whA := decimal.Zero
	if flags.WithholdingA {
		whA = percentOf(base, RateWithholdingA)
	}
	whB := decimal.Zero
	if flags.WithholdingB && serviceValue != nil {
		whB = percentOf(*serviceValue, RateWithholdingB)
	}
	regional := decimal.Zero
	if flags.RegionalTax {
		regional = percentOf(base, RateRegional)
	}

	beforeStamp := base.Add(vat).Add(regional).Sub(whA).Sub(whB)

	// El umbral se evalúa sobre el total antes del sello, no sobre el total final.
	stampRequired := beforeStamp.GreaterThanOrEqual(StampThreshold)
	stamp := decimal.Zero
	if stampRequired {
		stamp = StampDuty
	}

	return Breakdown{
		Subtotal:           subtotal,
		TotalDiscount:      totalDiscount,
		TaxableBase:        base,
		VATAmount:          vat,
		WithholdingAAmount: whA,
		WithholdingBAmount: whB,
		RegionalTaxAmount:  regional,
		TotalBeforeStamp:   beforeStamp,
		StampRequired:      stampRequired,
		StampAmount:        stamp,
		TotalAmount:        beforeStamp.Add(stamp),
	}
}

func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(MoneyScale)
}
