package dto

import (
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
)

// NewCompanyResponse mapea una empresa; nil si c es nil.
func NewCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Email:     c.Email,
		Phone:     c.Phone,
		GSTNumber: c.GSTNumber,
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCustomerResponse mapea un cliente con su empresa (opcional).
func NewCustomerResponse(c *entity.Customer, company *entity.Company) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		Company:   NewCompanyResponse(company),
	}
}

// NewProductResponse mapea un producto con su empresa (opcional).
func NewProductResponse(p *entity.Product, company *entity.Company) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Company:     NewCompanyResponse(company),
	}
}

// NewTotalsResponse mapea los totales calculados.
func NewTotalsResponse(t invoicing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:  t.Subtotal,
		TaxAmount: t.TaxAmount,
		Discount:  t.Discount,
		Total:     t.Total,
	}
}

// NewInvoiceResponse mapea una factura y recalcula sus totales desde las líneas.
func NewInvoiceResponse(inv *entity.Invoice, company *entity.Company, customer *entity.Customer) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	totals := invoicing.InvoiceTotals(inv)
	items := make([]LineItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, LineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			LineTotal: it.LineTotal(),
		})
	}
	return &InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		CompanyID:  inv.CompanyID,
		CustomerID: inv.CustomerID,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		TaxRate:    inv.TaxRate,
		Discount:   inv.Discount,
		Status:     string(inv.Status),
		Items:      items,
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		CreatedAt:  inv.CreatedAt,
		Company:    NewCompanyResponse(company),
		Customer:   NewCustomerResponse(customer, nil),
	}
}
