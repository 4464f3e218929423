package usecase

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

// StoreProfileUseCase lee y actualiza el perfil único de la tienda.
type StoreProfileUseCase struct {
	repo repository.StoreProfileRepository
}

// NewStoreProfileUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreProfileUseCase(repo repository.StoreProfileRepository) *StoreProfileUseCase {
	return &StoreProfileUseCase{repo: repo}
}

// Get devuelve el perfil o domain.ErrNotFound si aún no se ha configurado.
func (uc *StoreProfileUseCase) Get(ctx context.Context) (*dto.StoreProfileResponse, error) {
	p, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get store profile: %w", err)
	}
	if p == nil {
		return nil, domain.NewNotFound("store_profile", "")
	}
	return toStoreProfileResponse(p), nil
}

// Upsert crea el perfil la primera vez y lo reemplaza en las siguientes.
func (uc *StoreProfileUseCase) Upsert(ctx context.Context, in dto.StoreProfileRequest) (*dto.StoreProfileResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get store profile: %w", err)
	}
	now := time.Now().UTC()
	p := &entity.StoreProfile{ID: uuid.New().String(), CreatedAt: now}
	if current != nil {
		p.ID = current.ID
		p.CreatedAt = current.CreatedAt
	}
	p.StoreName = in.StoreName
	p.Address = in.Address
	p.Phone = in.Phone
	p.Email = in.Email
	p.TaxID = in.TaxID
	p.LogoURL = in.LogoURL
	p.UpdatedAt = now
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert store profile: %w", err)
	}
	return toStoreProfileResponse(p), nil
}

func toStoreProfileResponse(p *entity.StoreProfile) *dto.StoreProfileResponse {
	return &dto.StoreProfileResponse{
		ID:        p.ID,
		StoreName: p.StoreName,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		TaxID:     p.TaxID,
		LogoURL:   p.LogoURL,
		UpdatedAt: p.UpdatedAt,
	}
}
