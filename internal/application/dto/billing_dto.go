package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id"`
	Name      string           `json:"name"`
	Email     string           `json:"email,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	Address   string           `json:"address,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Company   *CompanyResponse `json:"company,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// TaxRate es un porcentaje (8.5 = 8,5 %); Discount es un monto fijo. Ambos por defecto 0.
// DueDate acepta "2006-01-02" o RFC 3339.
type CreateInvoiceRequest struct {
	CompanyID  string               `json:"company_id" validate:"required"`
	CustomerID string               `json:"customer_id" validate:"required"`
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate    *decimal.Decimal     `json:"tax_rate,omitempty"`
	Discount   *decimal.Decimal     `json:"discount,omitempty"`
	DueDate    string               `json:"due_date,omitempty"`
}

// InvoiceItemRequest línea de factura. Si trae product_id, name y price vacíos se copian del catálogo.
type InvoiceItemRequest struct {
	ProductID string           `json:"product_id,omitempty"`
	Name      string           `json:"name" validate:"required_without=ProductID"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Qty       int64            `json:"qty" validate:"min=1"`
}

// InvoiceResponse factura con líneas y totales recalculados.
type InvoiceResponse struct {
	ID         string             `json:"id"`
	Number     string             `json:"number"`
	CompanyID  string             `json:"company_id"`
	CustomerID string             `json:"customer_id"`
	IssueDate  time.Time          `json:"issue_date"`
	DueDate    *time.Time         `json:"due_date"`
	TaxRate    decimal.Decimal    `json:"tax_rate"`
	Discount   decimal.Decimal    `json:"discount"`
	Status     string             `json:"status"`
	Items      []LineItemResponse `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	TaxAmount  decimal.Decimal    `json:"tax_amount"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	Company    *CompanyResponse   `json:"company,omitempty"`
	Customer   *CustomerResponse  `json:"customer,omitempty"`
}

// LineItemResponse línea de factura en la respuesta.
type LineItemResponse struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int64           `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TotalsResponse totales de la factura.
type TotalsResponse struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// CreateInvoiceResponse respuesta de POST /api/invoices.
type CreateInvoiceResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Totals  TotalsResponse  `json:"totals"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT PAID OVERDUE"`
}
