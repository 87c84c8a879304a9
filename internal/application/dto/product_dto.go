package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CompanyID   string           `json:"company_id" validate:"required"`
	Name        string           `json:"name" validate:"required,max=200"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`
}

// ProductResponse salida de un producto. Company solo viene en los listados globales.
type ProductResponse struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	Company     *CompanyResponse `json:"company,omitempty"`
}
