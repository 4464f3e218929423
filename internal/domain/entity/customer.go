package entity

import "time"

// Customer representa la institución compradora.
type Customer struct {
	ID              string
	InstitutionName string
	Address         string
	ContactPerson   string
	Phone           string
	TaxID           string // NPWP, opcional
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
