package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase CRUD mínimo del catálogo de productos. El catálogo completo
// es un colaborador externo; aquí vive lo justo para que el libro de
// movimientos tenga referencias que validar.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	SKU          string
	Barcode      string
	Name         string
	Description  string
	UnitPrice    decimal.Decimal
	ReorderLevel int
	ActorID      string
}

// Create valida y persiste un producto nuevo. SKU duplicado -> ErrDuplicate.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Name:         in.Name,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice,
		ReorderLevel: in.ReorderLevel,
		IsActive:     true,
		CreatedBy:    in.ActorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}
