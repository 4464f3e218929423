package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	InstitutionName string `json:"institution_name" validate:"required,max=200"`
	Address         string `json:"address" validate:"required"`
	ContactPerson   string `json:"contact_person" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"required,max=30"`
	TaxID           string `json:"npwp,omitempty" validate:"max=30"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID              string    `json:"id"`
	InstitutionName string    `json:"institution_name"`
	Address         string    `json:"address"`
	ContactPerson   string    `json:"contact_person"`
	Phone           string    `json:"phone"`
	TaxID           string    `json:"npwp,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StoreProfileRequest body para PUT /api/store-profile.
type StoreProfileRequest struct {
	StoreName string `json:"store_name" validate:"required,max=200"`
	Address   string `json:"address" validate:"required"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
	TaxID     string `json:"npwp" validate:"required,max=30"`
	LogoURL   string `json:"logo_url,omitempty"`
}

// StoreProfileResponse perfil de la tienda.
type StoreProfileResponse struct {
	ID        string    `json:"id"`
	StoreName string    `json:"store_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	TaxID     string    `json:"npwp"`
	LogoURL   string    `json:"logo_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
