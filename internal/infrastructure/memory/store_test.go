package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "co", Name: "Acme"}))
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "cu", CompanyID: "co", Name: "John"}))
	return s
}

func draft(id string) *entity.Invoice {
	return &entity.Invoice{
		ID:         id,
		CompanyID:  "co",
		CustomerID: "cu",
		IssueDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Items:      []entity.LineItem{{Name: "X", Price: decimal.NewFromInt(1), Qty: 1}},
		Status:     entity.InvoiceStatusDraft,
	}
}

func TestRunBilling_ConfirmaSoloSiNoHayError(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.RunBilling(ctx, func(seq repository.InvoiceSequenceRepository, inv repository.InvoiceRepository) error {
		n, err := seq.Next(ctx, "co")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		created := draft("a")
		created.Number = "INV-000001"
		require.NoError(t, inv.Create(ctx, created))
		return errors.New("rollback")
	})
	require.Error(t, err)

	got, err := s.Invoices().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	// El consecutivo tampoco avanzó
	err = s.RunBilling(ctx, func(seq repository.InvoiceSequenceRepository, _ repository.InvoiceRepository) error {
		n, err := seq.Next(ctx, "co")
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)
}

func TestRunBilling_NumeroDuplicadoEsConflicto(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	existing := draft("a")
	existing.Number = "INV-000001"
	require.NoError(t, s.Invoices().Create(ctx, existing))

	err := s.RunBilling(ctx, func(_ repository.InvoiceSequenceRepository, inv repository.InvoiceRepository) error {
		dup := draft("b")
		dup.Number = "INV-000001"
		return inv.Create(ctx, dup)
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvoiceRepo_DevuelveCopias(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, draft("a")))

	got, err := s.Invoices().GetByID(ctx, "a")
	require.NoError(t, err)
	got.Items[0].Name = "mutado"
	got.Status = entity.InvoiceStatusPaid

	again, err := s.Invoices().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "X", again.Items[0].Name)
	assert.Equal(t, entity.InvoiceStatusDraft, again.Status)
}

func TestInvoiceRepo_ReferenciasInexistentes(t *testing.T) {
	s := seededStore(t)
	inv := draft("a")
	inv.CustomerID = "nope"
	assert.ErrorIs(t, s.Invoices().Create(context.Background(), inv), domain.ErrNotFound)
}

func TestInvoiceRepo_OrdenPorEmisionDescendente(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	old := draft("old")
	old.Number = "INV-000001"
	recent := draft("recent")
	recent.Number = "INV-000002"
	recent.IssueDate = old.IssueDate.Add(time.Hour)
	require.NoError(t, s.Invoices().Create(ctx, old))
	require.NoError(t, s.Invoices().Create(ctx, recent))

	list, err := s.Invoices().ListByCompany(ctx, "co")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "recent", list[0].ID)
}

func TestInvoiceRepo_UpdateStatus(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, draft("a")))

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Invoices().UpdateStatus(ctx, "a", entity.InvoiceStatusSent, at))
	got, err := s.Invoices().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, got.Status)
	assert.Equal(t, at, got.UpdatedAt)

	assert.ErrorIs(t, s.Invoices().UpdateStatus(ctx, "nope", entity.InvoiceStatusSent, at), domain.ErrNotFound)
}

func TestCompanyRepo_UpdateInexistente(t *testing.T) {
	s := NewStore()
	err := s.Companies().Update(context.Background(), &entity.Company{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
