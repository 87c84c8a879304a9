package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice (las líneas van embebidas).
// Los listados vienen ordenados por fecha de emisión descendente.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Invoice, error)
	// UpdateStatus cambia solo el estado; ErrNotFound si la factura no existe.
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error
}

// InvoiceSequenceRepository entrega el siguiente consecutivo de factura por empresa.
// Debe ser atómico: dos llamadas concurrentes para la misma empresa nunca devuelven el mismo valor.
type InvoiceSequenceRepository interface {
	Next(ctx context.Context, companyID string) (int64, error)
}
