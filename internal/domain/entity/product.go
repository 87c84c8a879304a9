package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// Price es el precio de catálogo; se copia (no se referencia) en las líneas de factura.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
