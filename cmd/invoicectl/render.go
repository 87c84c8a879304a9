package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
)

func newRenderCmd(rt *cliEnv) *cobra.Command {
	var invoiceID, out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera el PDF de una factura y lo escribe en un archivo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := rt.pdfGenerator()
			if err != nil {
				return err
			}
			svc, closeFn, err := rt.services(cmd.Context(), gen)
			if err != nil {
				return err
			}
			defer closeFn()

			path, err := renderToFile(cmd.Context(), svc.PDF, invoiceID, out)
			if err != nil {
				return err
			}
			rt.log.Info().Str("invoice_id", invoiceID).Str("file", path).Msg("factura renderizada")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&invoiceID, "invoice", "", "ID de la factura")
	cmd.Flags().StringVar(&out, "out", "", "archivo de salida (por defecto invoice-<número>.pdf)")
	_ = cmd.MarkFlagRequired("invoice")
	return cmd
}

// renderToFile escribe el PDF en out. Si falla no deja un archivo a medias.
func renderToFile(ctx context.Context, uc *billing.PDFUseCase, invoiceID, out string) (string, error) {
	if out == "" {
		b, filename, err := uc.DownloadInvoicePDF(ctx, invoiceID)
		if err != nil {
			return "", err
		}
		return filename, os.WriteFile(filename, b, 0o644)
	}

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if _, err := uc.WriteInvoicePDF(ctx, invoiceID, f); err != nil {
		f.Close()
		os.Remove(out)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}
