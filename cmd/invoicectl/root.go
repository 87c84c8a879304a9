package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-generator/internal/app"
	"github.com/jhoicas/invoice-generator/internal/application/billing"
	infrapdf "github.com/jhoicas/invoice-generator/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-generator/pkg/config"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

var version = "dev"

// cliEnv estado compartido por los subcomandos; se llena en PersistentPreRunE.
type cliEnv struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliEnv{}
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Herramientas de operación del generador de facturas",
		Long: `invoicectl usa la misma configuración que la API (variables de entorno o .env)
y los mismos casos de uso, de modo que lo que crea o renderiza es idéntico a lo que
devolvería el servidor.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: "development", Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "", "nivel de log (debug, info, warn, error)")

	root.AddCommand(
		newMigrateCmd(rt),
		newSeedCmd(rt),
		newImportProductsCmd(rt),
		newRenderCmd(rt),
	)
	return root
}

// services abre el almacenamiento configurado y arma los casos de uso.
// gen puede ser nil cuando el comando no genera PDFs.
func (rt *cliEnv) services(ctx context.Context, gen billing.InvoicePDFGenerator) (*app.Services, func(), error) {
	st, err := app.OpenStorage(ctx, rt.cfg.DB, rt.log.Component("storage"))
	if err != nil {
		return nil, nil, err
	}
	return app.NewServices(st, gen, nil, rt.log.Zerolog()), st.Close, nil
}

func (rt *cliEnv) pdfGenerator() (*infrapdf.MarotoPDFGenerator, error) {
	return infrapdf.NewMarotoPDFGenerator(infrapdf.Config{
		LogoPath:       rt.cfg.PDF.LogoPath,
		FontPath:       rt.cfg.PDF.FontPath,
		FontBoldPath:   rt.cfg.PDF.FontBoldPath,
		CurrencyPrefix: rt.cfg.PDF.CurrencyPrefix,
		FooterText:     rt.cfg.PDF.FooterText,
	})
}
