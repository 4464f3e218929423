package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (instituciones compradoras).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:              uuid.New().String(),
		InstitutionName: in.InstitutionName,
		Address:         in.Address,
		ContactPerson:   in.ContactPerson,
		Phone:           in.Phone,
		TaxID:           in.TaxID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c == nil {
		return nil, domain.NewNotFound("customer", id)
	}
	return toCustomerResponse(c), nil
}

// List lista clientes por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:              c.ID,
		InstitutionName: c.InstitutionName,
		Address:         c.Address,
		ContactPerson:   c.ContactPerson,
		Phone:           c.Phone,
		TaxID:           c.TaxID,
		CreatedAt:       c.CreatedAt,
	}
}
