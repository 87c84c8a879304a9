package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(name, price string, qty int64) entity.LineItem {
	return entity.LineItem{Name: name, Price: dec(price), Qty: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios conocidos
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_EscenarioA(t *testing.T) {
	items := []entity.LineItem{
		item("Web Development Service", "150", 10),
		item("Consulting Services", "100", 5),
	}

	got := invoicing.Calculate(items, dec("8.5"), dec("50"))

	assert.True(t, got.Subtotal.Equal(dec("2000")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(dec("170")), "tax: %s", got.TaxAmount)
	assert.True(t, got.Discount.Equal(dec("50")))
	assert.True(t, got.Total.Equal(dec("2120")), "total: %s", got.Total)
}

func TestCalculate_EscenarioB(t *testing.T) {
	items := []entity.LineItem{
		item("Mobile App Development", "200", 3),
		item("Cloud Hosting", "75", 12),
	}

	got := invoicing.Calculate(items, dec("8.5"), decimal.Zero)

	assert.True(t, got.Subtotal.Equal(dec("1500")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(dec("127.5")), "tax: %s", got.TaxAmount)
	assert.True(t, got.Total.Equal(dec("1627.5")), "total: %s", got.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_ListaVaciaDaTotalNegativoSiHayDescuento(t *testing.T) {
	got := invoicing.Calculate(nil, dec("19"), dec("25"))

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	// Total sin límite inferior: -descuento.
	assert.True(t, got.Total.Equal(dec("-25")), "total: %s", got.Total)
}

func TestCalculate_DescuentoMayorQueTotalNoSeLimita(t *testing.T) {
	items := []entity.LineItem{item("Soporte", "10", 1)}

	got := invoicing.Calculate(items, dec("10"), dec("100"))

	assert.True(t, got.Total.Equal(dec("-89")), "total: %s", got.Total)
	assert.True(t, got.Total.IsNegative())
}

func TestCalculate_Idempotente(t *testing.T) {
	items := []entity.LineItem{
		item("A", "19.99", 3),
		item("B", "0.01", 7),
		item("C", "1234.5", 2),
	}

	first := invoicing.Calculate(items, dec("12.25"), dec("3.10"))
	second := invoicing.Calculate(items, dec("12.25"), dec("3.10"))

	assert.Equal(t, first, second)
}

func TestCalculate_OrdenNoAfectaSubtotal(t *testing.T) {
	items := []entity.LineItem{
		item("A", "19.99", 3),
		item("B", "0.01", 7),
		item("C", "1234.5", 2),
		item("D", "0", 9),
	}
	reversed := make([]entity.LineItem, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}

	a := invoicing.Calculate(items, dec("5"), dec("1"))
	b := invoicing.Calculate(reversed, dec("5"), dec("1"))

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.Total.Equal(b.Total))
	// El cálculo no reordena las líneas del caller.
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "D", reversed[0].Name)
}

func TestCalculate_Formulas(t *testing.T) {
	cases := []struct {
		name     string
		items    []entity.LineItem
		taxRate  string
		discount string
	}{
		{"sin impuesto", []entity.LineItem{item("x", "33.33", 3)}, "0", "0"},
		{"impuesto decimal", []entity.LineItem{item("x", "9.99", 1), item("y", "0.5", 4)}, "7.25", "0"},
		{"con descuento", []entity.LineItem{item("x", "100", 1)}, "19", "19"},
		{"precio cero", []entity.LineItem{item("x", "0", 5)}, "10", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := invoicing.Calculate(tc.items, dec(tc.taxRate), dec(tc.discount))

			sum := decimal.Zero
			for _, it := range tc.items {
				sum = sum.Add(it.Price.Mul(decimal.NewFromInt(it.Qty)))
			}
			tax := sum.Mul(dec(tc.taxRate)).Div(decimal.NewFromInt(100))

			assert.True(t, got.Subtotal.Equal(sum))
			assert.True(t, got.TaxAmount.Equal(tax))
			assert.True(t, got.Total.Equal(sum.Add(tax).Sub(dec(tc.discount))))
		})
	}
}

func TestInvoiceTotals_UsaLineasDeLaFactura(t *testing.T) {
	inv := &entity.Invoice{
		Items:    []entity.LineItem{item("A", "150", 10), item("B", "100", 5)},
		TaxRate:  dec("8.5"),
		Discount: dec("50"),
	}

	got := invoicing.InvoiceTotals(inv)

	assert.Equal(t, invoicing.Calculate(inv.Items, inv.TaxRate, inv.Discount), got)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", invoicing.FormatNumber(1))
	assert.Equal(t, "INV-000042", invoicing.FormatNumber(42))
	assert.Equal(t, "INV-1234567", invoicing.FormatNumber(1234567))
	// Ordenables como texto dentro del rango de 6 dígitos.
	assert.Less(t, invoicing.FormatNumber(9), invoicing.FormatNumber(10))
}
