package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, companyRepo repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un producto para una empresa existente. El precio no puede ser negativo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if in.CompanyID == "" || name == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: company_id, name y price son obligatorios", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrNotFound)
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		Name:        name,
		Price:       *in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product, nil), nil
}

// GetByID obtiene un producto con su empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, product.CompanyID)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product, company), nil
}

// List lista todos los productos con su empresa.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	companies := newCompanyCache(uc.companyRepo)
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		company, err := companies.get(ctx, p.CompanyID)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto.NewProductResponse(p, company))
	}
	return out, nil
}

// ListByCompany lista los productos de una empresa.
func (uc *ProductUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.NewProductResponse(p, nil))
	}
	return out, nil
}

// companyCache evita releer la misma empresa al armar un listado.
type companyCache struct {
	repo repository.CompanyRepository
	byID map[string]*entity.Company
}

func newCompanyCache(repo repository.CompanyRepository) *companyCache {
	return &companyCache{repo: repo, byID: make(map[string]*entity.Company)}
}

func (c *companyCache) get(ctx context.Context, id string) (*entity.Company, error) {
	if company, ok := c.byID[id]; ok {
		return company, nil
	}
	company, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.byID[id] = company
	return company, nil
}
