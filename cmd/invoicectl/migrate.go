package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-generator/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-generator/pkg/config"
)

func newMigrateCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas sobre PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requiere DB_DRIVER=%s (actual: %s)", config.DriverPostgres, rt.cfg.DB.Driver)
			}
			pool, err := postgres.NewPool(cmd.Context(), rt.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			version, err := postgres.Migrate(pool)
			if err != nil {
				return err
			}
			rt.log.Info().Uint("version", version).Msg("esquema actualizado")
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
