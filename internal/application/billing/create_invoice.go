package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// CreateInvoiceUseCase crea facturas (consecutivo + cabecera + líneas en una sola transacción)
// y las consulta con empresa, cliente y totales recalculados.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	metrics      InvoiceMetrics
	log          zerolog.Logger
	now          func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso. metrics puede ser nil.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	metrics InvoiceMetrics,
	log zerolog.Logger,
) *CreateInvoiceUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// CreateInvoice valida la entrada, congela nombre y precio de cada línea, calcula los totales,
// reserva el consecutivo de la empresa y guarda la factura en DRAFT.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	resp, err := uc.createInvoice(ctx, in)
	uc.metrics.InvoiceCreated(err == nil)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", in.CompanyID).Msg("factura no creada")
		return nil, err
	}
	uc.log.Info().
		Str("invoice_id", resp.Invoice.ID).
		Str("number", resp.Invoice.Number).
		Str("total", resp.Totals.Total.StringFixed(2)).
		Msg("factura creada")
	return resp, nil
}

func (uc *CreateInvoiceUseCase) createInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	if in.CompanyID == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("%w: company_id y customer_id son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}
	taxRate := decimal.Zero
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax_rate no puede ser negativo", domain.ErrInvalidInput)
	}
	discount := decimal.Zero
	if in.Discount != nil {
		discount = *in.Discount
	}
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount no puede ser negativo", domain.ErrInvalidInput)
	}
	dueDate, err := ParseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	// Empresa y cliente: el cliente debe pertenecer a la empresa de la factura
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrNotFound)
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	if customer.CompanyID != company.ID {
		return nil, fmt.Errorf("%w: el cliente no pertenece a la empresa", domain.ErrInvalidInput)
	}

	items, err := uc.resolveItems(ctx, company.ID, in.Items)
	if err != nil {
		return nil, err
	}
	totals := invoicing.Calculate(items, taxRate, discount)

	now := uc.now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  company.ID,
		CustomerID: customer.ID,
		IssueDate:  now,
		DueDate:    dueDate,
		TaxRate:    taxRate,
		Discount:   discount,
		Items:      items,
		Status:     entity.InvoiceStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.InvoiceSequenceRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		seq, err := seqRepo.Next(ctx, company.ID)
		if err != nil {
			return fmt.Errorf("reservar consecutivo: %w", err)
		}
		inv.Number = invoicing.FormatNumber(seq)
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateInvoiceResponse{
		Invoice: *dto.NewInvoiceResponse(inv, company, customer),
		Totals:  dto.NewTotalsResponse(totals),
	}, nil
}

// resolveItems arma las líneas en el orden recibido. Una línea con product_id toma del catálogo
// el nombre y el precio que no vengan en la petición; el producto debe ser de la misma empresa.
func (uc *CreateInvoiceUseCase) resolveItems(ctx context.Context, companyID string, in []dto.InvoiceItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for i, it := range in {
		if it.Qty < 1 {
			return nil, fmt.Errorf("%w: línea %d: qty debe ser al menos 1", domain.ErrInvalidInput, i+1)
		}
		item := entity.LineItem{
			ProductID: it.ProductID,
			Name:      strings.TrimSpace(it.Name),
			Qty:       it.Qty,
		}
		if it.Price != nil {
			item.Price = *it.Price
		}
		if it.ProductID != "" {
			product, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			if product.CompanyID != companyID {
				return nil, fmt.Errorf("%w: línea %d: el producto no pertenece a la empresa", domain.ErrInvalidInput, i+1)
			}
			if item.Name == "" {
				item.Name = product.Name
			}
			if it.Price == nil {
				item.Price = product.Price
			}
		} else if it.Price == nil {
			return nil, fmt.Errorf("%w: línea %d: price es obligatorio", domain.ErrInvalidInput, i+1)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("%w: línea %d: name es obligatorio", domain.ErrInvalidInput, i+1)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: price no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseDueDate interpreta la fecha de vencimiento ("2006-01-02" o RFC 3339). Vacía = sin vencimiento.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date %q no es una fecha válida", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// GetInvoice obtiene una factura por ID con empresa, cliente y totales.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	out, err := uc.toResponses(ctx, []*entity.Invoice{inv})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List lista todas las facturas (fecha de emisión descendente).
func (uc *CreateInvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, list)
}

// ListByCompany lista las facturas de una empresa.
func (uc *CreateInvoiceUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.InvoiceResponse, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.invoiceRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, list)
}

func (uc *CreateInvoiceUseCase) toResponses(ctx context.Context, list []*entity.Invoice) ([]dto.InvoiceResponse, error) {
	lk := newLookup(uc.companyRepo, uc.customerRepo)
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		company, err := lk.company(ctx, inv.CompanyID)
		if err != nil {
			return nil, err
		}
		customer, err := lk.customer(ctx, inv.CustomerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto.NewInvoiceResponse(inv, company, customer))
	}
	return out, nil
}

// UpdateStatus cambia el estado de la factura (DRAFT, SENT, PAID, OVERDUE).
// Líneas, montos y número no cambian.
func (uc *CreateInvoiceUseCase) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) (*dto.InvoiceResponse, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, status, uc.now()); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", id).Str("status", string(status)).Msg("estado de factura actualizado")
	return uc.GetInvoice(ctx, id)
}
