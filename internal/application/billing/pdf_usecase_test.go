package billing_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

type fakeGenerator struct {
	err  error
	docs []entity.InvoiceDocument
}

func (f *fakeGenerator) GenerateInvoicePDF(_ context.Context, doc entity.InvoiceDocument) ([]byte, error) {
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 " + doc.Invoice.Number), nil
}

func (f *fakeGenerator) WriteInvoicePDF(ctx context.Context, doc entity.InvoiceDocument, w io.Writer) error {
	b, err := f.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func newPDFUseCase(e *env, gen *fakeGenerator) *billing.PDFUseCase {
	return billing.NewPDFUseCase(e.store.Invoices(), e.store.Companies(), e.store.Customers(), gen, e.metrics, zerolog.Nop())
}

func createInvoice(t *testing.T, e *env) *dto.CreateInvoiceResponse {
	t.Helper()
	in := e.request(dto.InvoiceItemRequest{ProductID: e.web.ID, Qty: 10})
	in.TaxRate = dec("8.5")
	in.Discount = dec("50")
	out, err := e.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	return out
}

func TestDownloadInvoicePDF_ArmaDocumentoCompleto(t *testing.T) {
	e := newEnv(t)
	gen := &fakeGenerator{}
	uc := newPDFUseCase(e, gen)
	created := createInvoice(t, e)

	b, filename, err := uc.DownloadInvoicePDF(context.Background(), created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-000001.pdf", filename)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	require.Len(t, gen.docs, 1)
	doc := gen.docs[0]
	assert.Equal(t, "Acme Corporation", doc.Company.Name)
	assert.Equal(t, "John Smith", doc.Customer.Name)
	assert.Equal(t, created.Invoice.Number, doc.Invoice.Number)
	assert.Equal(t, 1, e.metrics.renders)
}

func TestDownloadInvoicePDF_FacturaInexistenteNoRenderiza(t *testing.T) {
	e := newEnv(t)
	gen := &fakeGenerator{}
	uc := newPDFUseCase(e, gen)

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gen.docs)
	assert.Equal(t, 0, e.metrics.renders+e.metrics.fails)
}

func TestDownloadInvoicePDF_FalloDeRender(t *testing.T) {
	e := newEnv(t)
	gen := &fakeGenerator{err: domain.ErrRender}
	uc := newPDFUseCase(e, gen)
	created := createInvoice(t, e)

	b, _, err := uc.DownloadInvoicePDF(context.Background(), created.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Nil(t, b)
	assert.Equal(t, 1, e.metrics.fails)
}

func TestWriteInvoicePDF_EscribeEnElDestino(t *testing.T) {
	e := newEnv(t)
	uc := newPDFUseCase(e, &fakeGenerator{})
	created := createInvoice(t, e)

	var buf bytes.Buffer
	filename, err := uc.WriteInvoicePDF(context.Background(), created.Invoice.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-000001.pdf", filename)
	assert.Equal(t, "%PDF-1.7 INV-000001", buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-000042.pdf", billing.Filename(&entity.Invoice{Number: "INV-000042"}))
}
