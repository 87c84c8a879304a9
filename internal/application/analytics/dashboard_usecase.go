// Package analytics contiene los casos de uso de reportes de negocio (dashboard de facturación).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

// DashboardUseCase genera el resumen de facturación (conteos por estado y montos).
//
// Los montos no se leen de la base: cada factura se recalcula desde sus líneas con invoicing.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(invoiceRepo repository.InvoiceRepository) *DashboardUseCase {
	return &DashboardUseCase{invoiceRepo: invoiceRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO. companyID vacío = todas las empresas.
//
//   - TotalRevenue:      facturas PAID
//   - TodayRevenue:      facturas PAID emitidas hoy
//   - OutstandingAmount: facturas SENT + OVERDUE
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	var (
		list []*entity.Invoice
		err  error
	)
	if companyID == "" {
		list, err = uc.invoiceRepo.List(ctx)
	} else {
		list, err = uc.invoiceRepo.ListByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar facturas: %w", err)
	}

	now := uc.now()
	// Hoy: 00:00:00 – 23:59:59.999 en la zona del reloj
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	out := &dto.DashboardSummaryDTO{
		CompanyID:         companyID,
		TotalInvoices:     len(list),
		ByStatus:          make(map[string]int, len(entity.InvoiceStatuses)),
		TotalRevenue:      decimal.Zero,
		TodayRevenue:      decimal.Zero,
		OutstandingAmount: decimal.Zero,
		DateLabel:         dateLabel(now),
	}
	for _, st := range entity.InvoiceStatuses {
		out.ByStatus[string(st)] = 0
	}

	for _, inv := range list {
		out.ByStatus[string(inv.Status)]++
		total := invoicing.InvoiceTotals(inv).Total
		switch inv.Status {
		case entity.InvoiceStatusPaid:
			out.TotalRevenue = out.TotalRevenue.Add(total)
			issued := inv.IssueDate.In(now.Location())
			if !issued.Before(todayStart) && issued.Before(todayEnd) {
				out.TodayRevenue = out.TodayRevenue.Add(total)
			}
		case entity.InvoiceStatusSent, entity.InvoiceStatusOverdue:
			out.OutstandingAmount = out.OutstandingAmount.Add(total)
		}
	}

	out.TotalRevenue = out.TotalRevenue.Round(2)
	out.TodayRevenue = out.TodayRevenue.Round(2)
	out.OutstandingAmount = out.OutstandingAmount.Round(2)
	return out, nil
}

// dateLabel devuelve la fecha como día/mes/año sin ceros a la izquierda, ej: "5/3/2026".
func dateLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
