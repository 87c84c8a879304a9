//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/postgres"
)

// newTestPool levanta un PostgreSQL efímero y aplica las migraciones embebidas.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("invoices_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "iniciar contenedor PostgreSQL")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, postgres.PoolOptions{MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	version, err := postgres.Migrate(pool)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// Idempotente
	_, err = postgres.Migrate(pool)
	require.NoError(t, err)
	return pool
}

func seed(t *testing.T, pool *pgxpool.Pool) (*entity.Company, *entity.Customer, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	company := &entity.Company{ID: "00000000-0000-0000-0000-0000000000c1", Name: "Acme Corporation", Email: "contact@acme.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, company))

	customer := &entity.Customer{ID: "00000000-0000-0000-0000-0000000000d1", CompanyID: company.ID, Name: "John Smith", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCustomerRepository(pool).Create(ctx, customer))

	product := &entity.Product{ID: "00000000-0000-0000-0000-0000000000e1", CompanyID: company.ID, Name: "Web Development Service", Price: decimal.RequireFromString("150.00"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, product))
	return company, customer, product
}

func newCreateInvoice(pool *pgxpool.Pool) *billing.CreateInvoiceUseCase {
	return billing.NewCreateInvoiceUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewCompanyRepository(pool),
		postgres.NewCustomerRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewInvoiceRepository(pool),
		nil, zerolog.Nop(),
	)
}

func TestPostgres_RoundTripDeFactura(t *testing.T) {
	pool := newTestPool(t)
	company, customer, product := seed(t, pool)
	ctx := context.Background()
	uc := newCreateInvoice(pool)

	tax := decimal.RequireFromString("8.5")
	discount := decimal.RequireFromString("50")
	price := decimal.NewFromInt(100)
	out, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CompanyID:  company.ID,
		CustomerID: customer.ID,
		TaxRate:    &tax,
		Discount:   &discount,
		DueDate:    "2026-11-14",
		Items: []dto.InvoiceItemRequest{
			{ProductID: product.ID, Qty: 10},
			{Name: "Consulting Services", Price: &price, Qty: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", out.Invoice.Number)

	got, err := uc.GetInvoice(ctx, out.Invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(2120)), got.Total.String())
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Web Development Service", got.Items[0].Name)
	assert.Equal(t, "Consulting Services", got.Items[1].Name)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-11-14", got.DueDate.UTC().Format(time.DateOnly))

	updated, err := uc.UpdateStatus(ctx, out.Invoice.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "PAID", updated.Status)

	_, err = uc.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", entity.InvoiceStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_NumeracionConcurrente(t *testing.T) {
	pool := newTestPool(t)
	company, customer, _ := seed(t, pool)
	uc := newCreateInvoice(pool)
	price := decimal.NewFromInt(1)

	const n = 15
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
				CompanyID:  company.ID,
				CustomerID: customer.ID,
				Items:      []dto.InvoiceItemRequest{{Name: "X", Price: &price, Qty: 1}},
			})
			if assert.NoError(t, err) {
				numbers <- out.Invoice.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestPostgres_ErroresDeRepositorio(t *testing.T) {
	pool := newTestPool(t)
	company, _, _ := seed(t, pool)
	ctx := context.Background()

	err := postgres.NewCompanyRepository(pool).Create(ctx, company)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	orphan := &entity.Customer{ID: "00000000-0000-0000-0000-0000000000d9", CompanyID: "00000000-0000-0000-0000-000000000099", Name: "X"}
	err = postgres.NewCustomerRepository(pool).Create(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing, err := postgres.NewInvoiceRepository(pool).GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Un id que no es UUID se trata como inexistente
	malformed, err := postgres.NewCompanyRepository(pool).GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, malformed)

	products, err := postgres.NewProductRepository(pool).ListByCompany(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, products)
}
