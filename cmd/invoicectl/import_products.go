package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-generator/internal/application/usecase"
)

func newImportProductsCmd(rt *cliEnv) *cobra.Command {
	var companyID, file, charset string
	cmd := &cobra.Command{
		Use:   "import-products",
		Short: "Crea productos de una empresa desde un CSV name,price,description",
		Example: `  invoicectl import-products --company 7c1e... --file catalog.csv
  invoicectl import-products --company 7c1e... --file legacy.csv --charset windows-1252`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := readCatalog(f, charset)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			svc, closeFn, err := rt.services(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := importProducts(cmd.Context(), svc.Products, companyID, rows)
			rt.log.Info().Str("company_id", companyID).Int("created", n).Int("rows", len(rows)).Msg("importación de productos")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products created\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa dueña del catálogo")
	cmd.Flags().StringVar(&file, "file", "", "ruta del CSV")
	cmd.Flags().StringVar(&charset, "charset", "utf-8", "codificación del CSV (utf-8 | iso-8859-1 | windows-1252)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// importProducts crea los productos en orden y se detiene en el primer error.
// Devuelve cuántos se crearon antes de fallar.
func importProducts(ctx context.Context, uc *usecase.ProductUseCase, companyID string, rows []catalogRow) (int, error) {
	for i, row := range rows {
		if _, err := uc.Create(ctx, row.request(companyID)); err != nil {
			return i, fmt.Errorf("línea %d (%s): %w", row.Line, row.Name, err)
		}
	}
	return len(rows), nil
}
