package entity

import "time"

// StoreProfile datos de la tienda emisora; se imprimen en la cabecera de cada documento.
type StoreProfile struct {
	ID        string
	StoreName string
	Address   string
	Phone     string
	Email     string
	TaxID     string // NPWP de la tienda
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
