package pdf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
)

// missingDate se muestra cuando la fecha no existe (ej. factura sin vencimiento).
const missingDate = "-"

// invoiceView textos ya formateados que se pintan en el PDF.
// Los totales salen de invoicing.Calculate sobre las líneas, nunca de campos guardados.
type invoiceView struct {
	Number    string
	IssueDate string
	DueDate   string
	Items     []itemView
	TaxLabel  string
	Subtotal  string
	Tax       string
	Discount  string
	Total     string
}

type itemView struct {
	Name      string
	Qty       string
	Price     string
	LineTotal string
}

func buildView(inv *entity.Invoice, currency string) invoiceView {
	totals := invoicing.InvoiceTotals(inv)
	issue := inv.IssueDate
	v := invoiceView{
		Number:    inv.Number,
		IssueDate: formatDate(&issue),
		DueDate:   formatDate(inv.DueDate),
		Items:     make([]itemView, 0, len(inv.Items)),
		TaxLabel:  fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()),
		Subtotal:  formatCurrency(currency, totals.Subtotal),
		Tax:       formatCurrency(currency, totals.TaxAmount),
		Discount:  formatCurrency(currency, totals.Discount),
		Total:     formatCurrency(currency, totals.Total),
	}
	for _, it := range inv.Items {
		v.Items = append(v.Items, itemView{
			Name:      it.Name,
			Qty:       strconv.FormatInt(it.Qty, 10),
			Price:     formatCurrency(currency, it.Price),
			LineTotal: formatCurrency(currency, it.LineTotal()),
		})
	}
	return v
}

// formatCurrency antepone el prefijo y fija dos decimales. Ej: "Rs. " + 2120 → "Rs. 2120.00".
func formatCurrency(prefix string, amount decimal.Decimal) string {
	return prefix + amount.StringFixed(2)
}

// formatDate devuelve día/mes/año sin ceros a la izquierda (ej. "5/3/2026"); nil o cero → "-".
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return missingDate
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
