package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/invoice-generator/internal/app"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/pkg/config"
)

type stubPDF struct{ err error }

func (s stubPDF) GenerateInvoicePDF(_ context.Context, doc entity.InvoiceDocument) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4 " + doc.Invoice.Number), nil
}

func (s stubPDF) WriteInvoicePDF(ctx context.Context, doc entity.InvoiceDocument, w io.Writer) error {
	b, err := s.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func memoryServices(t *testing.T, gen stubPDF) *app.Services {
	t.Helper()
	st, err := app.OpenStorage(context.Background(), config.DBConfig{Driver: config.DriverMemory}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return app.NewServices(st, gen, nil, zerolog.Nop())
}

// ── Catálogo CSV ──────────────────────────────────────────────────────────────

func TestReadCatalog_ConCabecera(t *testing.T) {
	in := "name,price,description\nWeb Development Service,150,Custom web development\nConsulting Services,100.50\n"
	rows, err := readCatalog(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Web Development Service", rows[0].Name)
	assert.True(t, rows[0].Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "Custom web development", rows[0].Description)
	assert.Equal(t, "100.5", rows[1].Price.String())
	assert.Empty(t, rows[1].Description)
	assert.Equal(t, 3, rows[1].Line)
}

func TestReadCatalog_QuitaBOM(t *testing.T) {
	rows, err := readCatalog(strings.NewReader("\ufeffDiseño,10\n"), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Diseño", rows[0].Name)
}

func TestReadCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Configuración anual,75,Soporte técnico\n")
	require.NoError(t, err)

	rows, err := readCatalog(strings.NewReader(raw), "iso-8859-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Configuración anual", rows[0].Name)
	assert.Equal(t, "Soporte técnico", rows[0].Description)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("X,abc\n"), "utf-8")
	assert.ErrorContains(t, err, "línea 1")

	_, err = readCatalog(strings.NewReader("solo-nombre\n"), "utf-8")
	assert.Error(t, err)

	_, err = readCatalog(strings.NewReader("X,1\n"), "ebcdic")
	assert.ErrorContains(t, err, "no soportado")
}

func TestImportProducts_SeDetieneEnElPrimerError(t *testing.T) {
	svc := memoryServices(t, stubPDF{})
	ctx := context.Background()
	res, err := seedDemo(ctx, svc, time.Now())
	require.NoError(t, err)

	rows, err := readCatalog(strings.NewReader("A,1\nB,-2\nC,3\n"), "utf-8")
	require.NoError(t, err)

	n, err := importProducts(ctx, svc.Products, res.CompanyID, rows)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := svc.Products.ListByCompany(ctx, res.CompanyID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

// ── Seed ──────────────────────────────────────────────────────────────────────

func TestSeedDemo_CreaConjuntoCompleto(t *testing.T) {
	svc := memoryServices(t, stubPDF{})
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	res, err := seedDemo(ctx, svc, now)
	require.NoError(t, err)
	assert.Len(t, res.CustomerIDs, 3)
	assert.Len(t, res.ProductIDs, 4)
	assert.Equal(t, []string{"INV-000001", "INV-000002"}, res.InvoiceNumbers)

	first, err := svc.Invoices.GetInvoice(ctx, res.InvoiceIDs[0])
	require.NoError(t, err)
	assert.Equal(t, string(entity.InvoiceStatusSent), first.Status)
	// 10×150 + 5×100 = 2000; +8.5% = 170; -50
	assert.Equal(t, "2120", first.Total.String())
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2026-11-14", first.DueDate.Format(time.DateOnly))

	second, err := svc.Invoices.GetInvoice(ctx, res.InvoiceIDs[1])
	require.NoError(t, err)
	assert.Equal(t, string(entity.InvoiceStatusDraft), second.Status)
	// 3×200 + 12×75 = 1500; +8.5% = 127.5
	assert.Equal(t, "1627.5", second.Total.String())
}

// ── Render ────────────────────────────────────────────────────────────────────

func TestRenderToFile_EscribeArchivo(t *testing.T) {
	svc := memoryServices(t, stubPDF{})
	ctx := context.Background()
	res, err := seedDemo(ctx, svc, time.Now())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "factura.pdf")
	path, err := renderToFile(ctx, svc.PDF, res.InvoiceIDs[0], out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestRenderToFile_FalloNoDejaArchivo(t *testing.T) {
	svc := memoryServices(t, stubPDF{err: domain.ErrRender})
	ctx := context.Background()
	res, err := seedDemo(ctx, svc, time.Now())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "factura.pdf")
	_, err = renderToFile(ctx, svc.PDF, res.InvoiceIDs[0], out)
	assert.ErrorIs(t, err, domain.ErrRender)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRenderToFile_FacturaInexistente(t *testing.T) {
	svc := memoryServices(t, stubPDF{})
	out := filepath.Join(t.TempDir(), "factura.pdf")

	_, err := renderToFile(context.Background(), svc.PDF, "nope", out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
