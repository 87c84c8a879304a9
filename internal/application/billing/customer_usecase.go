package billing

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

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	companyRepo repository.CompanyRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, companyRepo repository.CompanyRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un nuevo cliente. La empresa dueña es obligatoria y no cambia después.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if in.CompanyID == "" || name == "" {
		return nil, fmt.Errorf("%w: company_id y name son obligatorios", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrNotFound)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Name:      name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(customer, nil), nil
}

// GetByID obtiene un cliente con su empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, customer.CompanyID)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(customer, company), nil
}

// List lista todos los clientes con su empresa.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := newLookup(uc.companyRepo, nil)
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		company, err := lookup.company(ctx, c.CompanyID)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto.NewCustomerResponse(c, company))
	}
	return out, nil
}

// ListByCompany lista los clientes de una empresa.
func (uc *CustomerUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.CustomerResponse, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.NewCustomerResponse(c, nil))
	}
	return out, nil
}
