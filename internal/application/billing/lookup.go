package billing

import (
	"context"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// lookup resuelve empresas y clientes al armar listados sin releer el mismo registro.
type lookup struct {
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	companies    map[string]*entity.Company
	customers    map[string]*entity.Customer
}

func newLookup(companyRepo repository.CompanyRepository, customerRepo repository.CustomerRepository) *lookup {
	return &lookup{
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		companies:    make(map[string]*entity.Company),
		customers:    make(map[string]*entity.Customer),
	}
}

func (l *lookup) company(ctx context.Context, id string) (*entity.Company, error) {
	if c, ok := l.companies[id]; ok {
		return c, nil
	}
	c, err := l.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.companies[id] = c
	return c, nil
}

func (l *lookup) customer(ctx context.Context, id string) (*entity.Customer, error) {
	if c, ok := l.customers[id]; ok {
		return c, nil
	}
	c, err := l.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.customers[id] = c
	return c, nil
}
