// Package app arma el grafo de dependencias (almacenamiento, casos de uso, PDF, métricas)
// que comparten la API y la CLI de operación.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-generator/internal/application/analytics"
	"github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/application/usecase"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-generator/pkg/config"
)

// Storage repositorios y runner transaccional del driver elegido.
type Storage struct {
	Companies repository.CompanyRepository
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Invoices  repository.InvoiceRepository
	TxRunner  billing.BillingTxRunner

	close func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage abre el almacenamiento según DB_DRIVER. Con postgres y AutoMigrate aplica
// las migraciones embebidas antes de devolver los repositorios.
func OpenStorage(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Storage{
			Companies: store.Companies(),
			Customers: store.Customers(),
			Products:  store.Products(),
			Invoices:  store.Invoices(),
			TxRunner:  store,
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			version, err := postgres.Migrate(pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Uint("version", version).Msg("migraciones aplicadas")
		}
		return &Storage{
			Companies: postgres.NewCompanyRepository(pool),
			Customers: postgres.NewCustomerRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Invoices:  postgres.NewInvoiceRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("app: driver %q no soportado", cfg.Driver)
	}
}

// Services casos de uso listos para los adaptadores (HTTP, CLI).
type Services struct {
	Companies *usecase.CompanyUseCase
	Products  *usecase.ProductUseCase
	Customers *billing.CustomerUseCase
	Invoices  *billing.CreateInvoiceUseCase
	PDF       *billing.PDFUseCase
	Dashboard *analytics.DashboardUseCase
}

// NewServices construye los casos de uso sobre el almacenamiento. metrics puede ser nil.
func NewServices(st *Storage, gen billing.InvoicePDFGenerator, metrics billing.InvoiceMetrics, log zerolog.Logger) *Services {
	return &Services{
		Companies: usecase.NewCompanyUseCase(st.Companies),
		Products:  usecase.NewProductUseCase(st.Products, st.Companies),
		Customers: billing.NewCustomerUseCase(st.Customers, st.Companies),
		Invoices: billing.NewCreateInvoiceUseCase(
			st.TxRunner, st.Companies, st.Customers, st.Products, st.Invoices,
			metrics, log.With().Str("component", "billing").Logger(),
		),
		PDF: billing.NewPDFUseCase(
			st.Invoices, st.Companies, st.Customers, gen,
			metrics, log.With().Str("component", "pdf").Logger(),
		),
		Dashboard: analytics.NewDashboardUseCase(st.Invoices),
	}
}
