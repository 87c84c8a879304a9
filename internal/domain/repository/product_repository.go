package repository

import (
	"context"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
}
