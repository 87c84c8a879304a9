package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 59, G: 130, B: 246, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newGenerator(t *testing.T) *MarotoPDFGenerator {
	t.Helper()
	g, err := NewMarotoPDFGenerator(Config{LogoPath: writeLogo(t)})
	require.NoError(t, err)
	return g
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument(items []entity.LineItem, due *time.Time) entity.InvoiceDocument {
	return entity.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID:        "inv-1",
			Number:    "INV-000001",
			IssueDate: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			DueDate:   due,
			TaxRate:   dec("8.5"),
			Discount:  dec("50"),
			Items:     items,
			Status:    entity.InvoiceStatusDraft,
		},
		Company: &entity.Company{
			Name:    "Acme Corporation",
			Email:   "contact@acme.com",
			Address: "123 Business Street, Suite 100, New York, NY 10001",
		},
		Customer: &entity.Customer{
			Name:    "John Smith",
			Email:   "john.smith@email.com",
			Address: "456 Customer Ave, Los Angeles, CA 90210",
		},
	}
}

func scenarioAItems() []entity.LineItem {
	return []entity.LineItem{
		{Name: "Web Development Service", Price: dec("150"), Qty: 10},
		{Name: "Consulting Services", Price: dec("100"), Qty: 5},
	}
}

func pageCount(t *testing.T, b []byte) int {
	t.Helper()
	n, err := api.PageCount(bytes.NewReader(b), nil)
	require.NoError(t, err)
	return n
}

// ── Formato ───────────────────────────────────────────────────────────────────

func TestFormatCurrency_DosDecimales(t *testing.T) {
	assert.Equal(t, "Rs. 2120.00", formatCurrency("Rs. ", dec("2120")))
	assert.Equal(t, "Rs. 127.50", formatCurrency("Rs. ", dec("127.5")))
	assert.Equal(t, "Rs. -50.00", formatCurrency("Rs. ", dec("-50")))
	assert.Equal(t, "$ 0.33", formatCurrency("$ ", dec("0.333")))
}

func TestFormatDate_SinCerosALaIzquierda(t *testing.T) {
	d := time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "5/3/2026", formatDate(&d))

	d2 := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31/12/2025", formatDate(&d2))
}

func TestFormatDate_SinFechaMuestraGuion(t *testing.T) {
	assert.Equal(t, "-", formatDate(nil))
	assert.Equal(t, "-", formatDate(&time.Time{}))
}

// ── Vista ─────────────────────────────────────────────────────────────────────

func TestBuildView_TotalesCoincidenConCalculadora(t *testing.T) {
	doc := sampleDocument(scenarioAItems(), nil)
	v := buildView(doc.Invoice, DefaultCurrencyPrefix)

	totals := invoicing.Calculate(doc.Invoice.Items, doc.Invoice.TaxRate, doc.Invoice.Discount)
	assert.Equal(t, formatCurrency(DefaultCurrencyPrefix, totals.Subtotal), v.Subtotal)
	assert.Equal(t, formatCurrency(DefaultCurrencyPrefix, totals.TaxAmount), v.Tax)
	assert.Equal(t, formatCurrency(DefaultCurrencyPrefix, totals.Total), v.Total)

	assert.Equal(t, "Rs. 2000.00", v.Subtotal)
	assert.Equal(t, "Rs. 170.00", v.Tax)
	assert.Equal(t, "Rs. 50.00", v.Discount)
	assert.Equal(t, "Rs. 2120.00", v.Total)
	assert.Equal(t, "Tax (8.5%)", v.TaxLabel)
}

func TestBuildView_ConservaOrdenDeLineas(t *testing.T) {
	doc := sampleDocument(scenarioAItems(), nil)
	v := buildView(doc.Invoice, DefaultCurrencyPrefix)

	require.Len(t, v.Items, 2)
	assert.Equal(t, itemView{Name: "Web Development Service", Qty: "10", Price: "Rs. 150.00", LineTotal: "Rs. 1500.00"}, v.Items[0])
	assert.Equal(t, itemView{Name: "Consulting Services", Qty: "5", Price: "Rs. 100.00", LineTotal: "Rs. 500.00"}, v.Items[1])
}

func TestBuildView_SinVencimiento(t *testing.T) {
	doc := sampleDocument(scenarioAItems(), nil)
	v := buildView(doc.Invoice, DefaultCurrencyPrefix)

	assert.Equal(t, "-", v.DueDate)
	assert.Equal(t, "5/3/2026", v.IssueDate)
	assert.Equal(t, "INV-000001", v.Number)
}

// ── Recursos ──────────────────────────────────────────────────────────────────

func TestNewMarotoPDFGenerator_LogoInexistente(t *testing.T) {
	_, err := NewMarotoPDFGenerator(Config{LogoPath: filepath.Join(t.TempDir(), "no-existe.png")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestNewMarotoPDFGenerator_LogoConExtensionNoSoportada(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a"), 0o600))

	_, err := NewMarotoPDFGenerator(Config{LogoPath: path})
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestNewMarotoPDFGenerator_FuenteInexistente(t *testing.T) {
	_, err := NewMarotoPDFGenerator(Config{
		LogoPath: writeLogo(t),
		FontPath: filepath.Join(t.TempDir(), "Roboto-Regular.ttf"),
	})
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestNewMarotoPDFGenerator_ValoresPorDefecto(t *testing.T) {
	g := newGenerator(t)
	assert.Equal(t, DefaultCurrencyPrefix, g.currency)
	assert.Equal(t, DefaultFooterText, g.footer)
}

// ── Render ────────────────────────────────────────────────────────────────────

func TestGenerateInvoicePDF_UnaPagina(t *testing.T) {
	g := newGenerator(t)
	due := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)

	b, err := g.GenerateInvoicePDF(context.Background(), sampleDocument(scenarioAItems(), &due))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(t, b))
}

func TestGenerateInvoicePDF_MuchasLineasPaginan(t *testing.T) {
	g := newGenerator(t)
	items := make([]entity.LineItem, 0, 120)
	for i := 0; i < 120; i++ {
		items = append(items, entity.LineItem{Name: fmt.Sprintf("Item %d", i+1), Price: dec("10"), Qty: 1})
	}

	b, err := g.GenerateInvoicePDF(context.Background(), sampleDocument(items, nil))
	require.NoError(t, err)
	assert.Greater(t, pageCount(t, b), 1)
}

func TestGenerateInvoicePDF_DocumentoIncompleto(t *testing.T) {
	g := newGenerator(t)
	doc := sampleDocument(scenarioAItems(), nil)
	doc.Customer = nil

	_, err := g.GenerateInvoicePDF(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestGenerateInvoicePDF_ContextoCancelado(t *testing.T) {
	g := newGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateInvoicePDF(ctx, sampleDocument(scenarioAItems(), nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateInvoicePDF_RendersConcurrentes(t *testing.T) {
	g := newGenerator(t)
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := g.GenerateInvoicePDF(context.Background(), sampleDocument(scenarioAItems(), nil))
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestWriteInvoicePDF_EscribeDocumentoCompleto(t *testing.T) {
	g := newGenerator(t)
	var buf bytes.Buffer

	err := g.WriteInvoicePDF(context.Background(), sampleDocument(scenarioAItems(), nil), &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, 1, pageCount(t, buf.Bytes()))
}
