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

// ProductUseCase casos de uso del catálogo. El borrado está protegido: un producto
// referenciado por alguna línea de transacción no se puede eliminar.
type ProductUseCase struct {
	repo    repository.ProductRepository
	trxRepo repository.TransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, trxRepo repository.TransactionRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, trxRepo: trxRepo}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: código de producto %q", domain.ErrDuplicate, in.Code)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.NewNotFound("product", id)
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por su código de catálogo.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	if product == nil {
		return nil, domain.NewNotFound("product", code)
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto sin referencias.
// La FK de las líneas cubre la carrera entre el conteo y el borrado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return domain.NewNotFound("product", id)
	}
	refs, err := uc.trxRepo.CountItemsByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("count product references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: producto %q usado en %d líneas", domain.ErrReferentialConflict, product.Code, refs)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Type:      p.Type,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
