package billing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
	metrics      InvoiceMetrics
	log          zerolog.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias. metrics puede ser nil.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
	metrics InvoiceMetrics,
	log zerolog.Logger,
) *PDFUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
		metrics:      metrics,
		log:          log,
	}
}

// DownloadInvoicePDF resuelve factura, empresa y cliente y genera el PDF en memoria.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura, su empresa o su cliente no existen; no se renderiza.
//   - domain.ErrRender           si la generación falla; nunca se entrega un PDF parcial.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.loadDocument(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	uc.observe(doc, start, err)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, Filename(doc.Invoice), nil
}

// WriteInvoicePDF igual que DownloadInvoicePDF pero escribe el documento en w (archivo, stream).
func (uc *PDFUseCase) WriteInvoicePDF(ctx context.Context, invoiceID string, w io.Writer) (filename string, err error) {
	doc, err := uc.loadDocument(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	err = uc.generator.WriteInvoicePDF(ctx, doc, w)
	uc.observe(doc, start, err)
	if err != nil {
		return "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return Filename(doc.Invoice), nil
}

// Filename nombre del adjunto: invoice-<número>.pdf.
func Filename(inv *entity.Invoice) string {
	return fmt.Sprintf("invoice-%s.pdf", inv.Number)
}

func (uc *PDFUseCase) loadDocument(ctx context.Context, invoiceID string) (entity.InvoiceDocument, error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return entity.InvoiceDocument{}, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return entity.InvoiceDocument{}, domain.ErrNotFound
	}

	// ── 2. Cargar empresa ─────────────────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(ctx, inv.CompanyID)
	if err != nil {
		return entity.InvoiceDocument{}, fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return entity.InvoiceDocument{}, fmt.Errorf("pdf: empresa %s: %w", inv.CompanyID, domain.ErrNotFound)
	}

	// ── 3. Cargar cliente ─────────────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return entity.InvoiceDocument{}, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return entity.InvoiceDocument{}, fmt.Errorf("pdf: cliente %s: %w", inv.CustomerID, domain.ErrNotFound)
	}

	return entity.InvoiceDocument{Invoice: inv, Company: company, Customer: customer}, nil
}

func (uc *PDFUseCase) observe(doc entity.InvoiceDocument, start time.Time, err error) {
	elapsed := time.Since(start)
	uc.metrics.PDFRendered(elapsed, err)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", doc.Invoice.ID).Msg("no se pudo generar el PDF")
		return
	}
	uc.log.Debug().
		Str("invoice_id", doc.Invoice.ID).
		Int("items", len(doc.Invoice.Items)).
		Dur("elapsed", elapsed).
		Msg("PDF generado")
}
