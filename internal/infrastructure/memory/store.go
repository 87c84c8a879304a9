// Package memory implementa los puertos de persistencia en memoria (demos locales y tests).
// Los repos devuelven copias: mutar una entidad leída no cambia lo guardado.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

var (
	_ repository.CompanyRepository         = (*CompanyRepo)(nil)
	_ repository.CustomerRepository        = (*CustomerRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.InvoiceSequenceRepository = (*sequenceTx)(nil)
	_ repository.InvoiceRepository         = (*invoiceTx)(nil)
	_ billing.BillingTxRunner              = (*Store)(nil)
)

// Store guarda todas las tablas; seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex // serializa RunBilling
	companies map[string]*entity.Company
	customers map[string]*entity.Customer
	products  map[string]*entity.Product
	invoices  map[string]*entity.Invoice
	sequences map[string]int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]*entity.Company),
		customers: make(map[string]*entity.Customer),
		products:  make(map[string]*entity.Product),
		invoices:  make(map[string]*entity.Invoice),
		sequences: make(map[string]int64),
	}
}

func (s *Store) Companies() *CompanyRepo  { return &CompanyRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }
func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Invoices() *InvoiceRepo   { return &InvoiceRepo{s: s} }

// RunBilling ejecuta fn con un consecutivo y una factura en borrador; solo si fn termina sin error
// se aplican al almacén (mismo contrato que la transacción de PostgreSQL).
func (s *Store) RunBilling(ctx context.Context, fn func(
	seqRepo repository.InvoiceSequenceRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	seq := &sequenceTx{s: s, staged: make(map[string]int64)}
	inv := &invoiceTx{InvoiceRepo: InvoiceRepo{s: s}}
	if err := fn(seq, inv); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, created := range inv.created {
		if err := s.checkInvoiceLocked(created); err != nil {
			return err
		}
	}
	for companyID, v := range seq.staged {
		s.sequences[companyID] = v
	}
	for _, created := range inv.created {
		s.invoices[created.ID] = created
	}
	return nil
}

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; ok {
		return fmt.Errorf("insert company: %w", domain.ErrDuplicate)
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *CompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

// ── Customers ────────────────────────────────────────────────────────────────

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.CompanyID]; !ok {
		return fmt.Errorf("insert customer: referencia inexistente: %w", domain.ErrNotFound)
	}
	if _, ok := r.s.customers[c.ID]; ok {
		return fmt.Errorf("insert customer: %w", domain.ErrDuplicate)
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	return r.filter(func(*entity.Customer) bool { return true }), nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Customer, error) {
	return r.filter(func(c *entity.Customer) bool { return c.CompanyID == companyID }), nil
}

func (r *CustomerRepo) filter(keep func(*entity.Customer) bool) []*entity.Customer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Customer, 0)
	for _, c := range r.s.customers {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[p.CompanyID]; !ok {
		return fmt.Errorf("insert product: referencia inexistente: %w", domain.ErrNotFound)
	}
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("insert product: %w", domain.ErrDuplicate)
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.CompanyID == companyID }), nil
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out
}

// ── Invoices ─────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria. Create fuera de RunBilling escribe directo.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkInvoiceLocked(inv); err != nil {
		return err
	}
	r.s.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	return r.filter(func(*entity.Invoice) bool { return true }), nil
}

func (r *InvoiceRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Invoice, error) {
	return r.filter(func(inv *entity.Invoice) bool { return inv.CompanyID == companyID }), nil
}

func (r *InvoiceRepo) UpdateStatus(_ context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *InvoiceRepo) filter(keep func(*entity.Invoice) bool) []*entity.Invoice {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range r.s.invoices {
		if keep(inv) {
			out = append(out, cloneInvoice(inv))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.After(out[j].IssueDate)
		}
		return out[i].Number > out[j].Number
	})
	return out
}

// checkInvoiceLocked valida llaves foráneas y unicidad de (empresa, número). Requiere s.mu tomado.
func (s *Store) checkInvoiceLocked(inv *entity.Invoice) error {
	if _, ok := s.companies[inv.CompanyID]; !ok {
		return fmt.Errorf("insert invoice: referencia inexistente: %w", domain.ErrNotFound)
	}
	if _, ok := s.customers[inv.CustomerID]; !ok {
		return fmt.Errorf("insert invoice: referencia inexistente: %w", domain.ErrNotFound)
	}
	if _, ok := s.invoices[inv.ID]; ok {
		return fmt.Errorf("insert invoice: %w", domain.ErrDuplicate)
	}
	for _, other := range s.invoices {
		if other.CompanyID == inv.CompanyID && other.Number == inv.Number {
			return fmt.Errorf("insert invoice: número %s: %w", inv.Number, domain.ErrDuplicate)
		}
	}
	return nil
}

// ── Transacción de facturación ───────────────────────────────────────────────

type sequenceTx struct {
	s      *Store
	staged map[string]int64
}

func (t *sequenceTx) Next(_ context.Context, companyID string) (int64, error) {
	v, ok := t.staged[companyID]
	if !ok {
		t.s.mu.RLock()
		v = t.s.sequences[companyID]
		t.s.mu.RUnlock()
	}
	v++
	t.staged[companyID] = v
	return v, nil
}

// invoiceTx lee del almacén y acumula las altas hasta el commit.
type invoiceTx struct {
	InvoiceRepo
	created []*entity.Invoice
}

func (t *invoiceTx) Create(_ context.Context, inv *entity.Invoice) error {
	t.created = append(t.created, cloneInvoice(inv))
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Items = append([]entity.LineItem(nil), inv.Items...)
	if inv.DueDate != nil {
		d := *inv.DueDate
		cp.DueDate = &d
	}
	return &cp
}

// newer ordena por fecha de creación descendente; el ID desempata para que el orden sea estable.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}
