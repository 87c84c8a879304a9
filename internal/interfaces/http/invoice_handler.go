package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc  *billing.CreateInvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateInvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create crea una factura numerada y devuelve sus totales.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if ok, err := validateBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "empresa, cliente o producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene la factura con empresa, cliente y totales.
// GET /api/invoices/view/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.NewList(list))
}

// GET /api/invoices/company/:companyId
func (h *InvoiceHandler) ListByCompany(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	if companyID == "" {
		return missingID(c, "companyId")
	}
	list, err := h.uc.ListByCompany(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err, "empresa no encontrada")
	}
	return c.JSON(dto.NewList(list))
}

// UpdateStatus cambia el estado (DRAFT, SENT, PAID, OVERDUE).
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if ok, err := validateBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, entity.InvoiceStatus(in.Status))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// DownloadPDF genera el PDF de la factura y lo entrega como adjunto.
// GET /api/invoices/pdf/:id
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	b, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
