package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de la factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// InvoiceStatuses lista los estados en el orden en que se reportan.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
}

// Valid indica si el estado pertenece a la enumeración.
func (s InvoiceStatus) Valid() bool {
	for _, st := range InvoiceStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura con sus líneas embebidas.
// Los totales no se guardan: se recalculan desde Items (ver invoicing.Calculate).
type Invoice struct {
	ID         string
	Number     string
	CompanyID  string
	CustomerID string
	IssueDate  time.Time
	DueDate    *time.Time      // nil = sin fecha de vencimiento
	TaxRate    decimal.Decimal // porcentaje, ej. 8.5
	Discount   decimal.Decimal // monto fijo que se resta después de impuestos
	Items      []LineItem
	Status     InvoiceStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineItem es una línea de factura. Name y Price son una copia del producto al momento de facturar.
type LineItem struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int64           `json:"qty"`
}

// LineTotal devuelve price × qty.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Qty))
}

// InvoiceDocument agrupa la factura con la empresa y el cliente ya resueltos (entrada del PDF).
type InvoiceDocument struct {
	Invoice  *Invoice
	Company  *Company
	Customer *Customer
}
