package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductTypeGoods   = "BARANG" // bienes
	ProductTypeService = "JASA"   // servicios
)

// Product representa un ítem del catálogo. El núcleo solo lo referencia;
// el precio de la línea se toma del request, no de aquí.
type Product struct {
	ID        string
	Code      string // código único del catálogo
	Name      string
	Type      string // ver constantes ProductType*
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidProductType indica si t es un tipo de producto conocido.
func ValidProductType(t string) bool {
	return t == ProductTypeGoods || t == ProductTypeService
}
