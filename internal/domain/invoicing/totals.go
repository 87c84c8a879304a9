// Package invoicing contiene los servicios de dominio de la factura: cálculo de totales y
// formato del número de factura. No tiene dependencias de infraestructura.
package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo de una factura.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// Calculate calcula los totales de una factura a partir de sus líneas.
//
//	Subtotal  = Σ (Price × Qty)
//	TaxAmount = Subtotal × taxRate / 100
//	Total     = Subtotal + TaxAmount − discount
//
// Total no se limita a cero: un descuento mayor que subtotal + impuesto da un total negativo.
// Una lista vacía es válida (subtotal 0); rechazarla es responsabilidad del caller.
func Calculate(items []entity.LineItem, taxRate, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	taxAmount := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Discount:  discount,
		Total:     subtotal.Add(taxAmount).Sub(discount),
	}
}

// InvoiceTotals recalcula los totales de una factura persistida.
func InvoiceTotals(inv *entity.Invoice) Totals {
	return Calculate(inv.Items, inv.TaxRate, inv.Discount)
}
