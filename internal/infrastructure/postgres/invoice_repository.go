package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.InvoiceSequenceRepository = (*InvoiceSequenceRepo)(nil)
)

const invoiceColumns = `id, number, company_id, customer_id, issue_date, due_date, tax_rate, discount, items, status, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las líneas se guardan como JSONB en invoices.items, en el orden de la factura.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. Un número repetido en la empresa devuelve ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.CompanyID, inv.CustomerID,
		inv.IssueDate, inv.DueDate, inv.TaxRate, inv.Discount,
		items, string(inv.Status), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert invoice", err)
	}
	return nil
}

// GetByID obtiene una factura completa por ID; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List lista todas las facturas por fecha de emisión descendente.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issue_date DESC, number DESC`)
}

// ListByCompany lista las facturas de una empresa por fecha de emisión descendente.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Invoice, error) {
	return r.list(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 ORDER BY issue_date DESC, number DESC`,
		companyID)
}

// UpdateStatus cambia el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt)
	if err != nil {
		return wrapWriteErr("update invoice status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*entity.Invoice{}, nil
		}
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		if isInvalidID(err) {
			return []*entity.Invoice{}, nil
		}
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return list, nil
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		items  []byte
		status string
	)
	if err := row.Scan(
		&inv.ID, &inv.Number, &inv.CompanyID, &inv.CustomerID,
		&inv.IssueDate, &inv.DueDate, &inv.TaxRate, &inv.Discount,
		&items, &status, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal invoice items: %w", err)
	}
	return &inv, nil
}

// InvoiceSequenceRepo consecutivo por empresa en invoice_sequences.
type InvoiceSequenceRepo struct {
	q Querier
}

// NewInvoiceSequenceRepository construye el adaptador; debe usarse dentro de la tx que crea la factura.
func NewInvoiceSequenceRepository(q Querier) *InvoiceSequenceRepo {
	return &InvoiceSequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo de la empresa (1 para la primera factura).
// El UPSERT toma un lock de fila que se libera al terminar la transacción.
func (r *InvoiceSequenceRepo) Next(ctx context.Context, companyID string) (int64, error) {
	const query = `
		INSERT INTO invoice_sequences (company_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE
		   SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var next int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&next); err != nil {
		return 0, wrapWriteErr("next invoice sequence", err)
	}
	return next, nil
}
