package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/invest-tips/internal/config"
	"github.com/pribylovaa/invest-tips/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate: driver %q has no migrations (indexes are created on connect)", cfg.DB.Driver)
			}

			if err := postgres.Migrate(cfg.DB.URL); err != nil {
				return err
			}

			logger.Info("migrations_applied")
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
