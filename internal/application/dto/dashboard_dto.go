package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los montos salen de recalcular cada factura desde sus líneas.
type DashboardSummaryDTO struct {
	CompanyID     string         `json:"company_id,omitempty"` // vacío = todas las empresas
	TotalInvoices int            `json:"total_invoices"`
	ByStatus      map[string]int `json:"by_status"`

	TotalRevenue      decimal.Decimal `json:"total_revenue"`      // facturas PAID
	TodayRevenue      decimal.Decimal `json:"today_revenue"`      // facturas PAID emitidas hoy
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"` // SENT + OVERDUE

	DateLabel string `json:"date_label"` // ej: "15/10/2026"
}
