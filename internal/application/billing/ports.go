package billing

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye el consecutivo y la factura.
// Si fn retorna error se hace rollback: no queda factura ni consecutivo consumido.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		seqRepo repository.InvoiceSequenceRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator puerto del renderizador de la representación gráfica de la factura.
// El documento llega resuelto (factura, empresa y cliente no nulos).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc entity.InvoiceDocument) ([]byte, error)
	WriteInvoicePDF(ctx context.Context, doc entity.InvoiceDocument, w io.Writer) error
}

// InvoiceMetrics registra los eventos de facturación (implementación en infrastructure/metrics).
type InvoiceMetrics interface {
	InvoiceCreated(ok bool)
	PDFRendered(d time.Duration, err error)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) InvoiceCreated(bool) {}

func (NopMetrics) PDFRendered(time.Duration, error) {}
