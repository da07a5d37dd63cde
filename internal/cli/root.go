// cli реализует команды администрирования tips-admin (cobra):
// применение миграций и загрузку идей из YAML.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/invest-tips/internal/config"
	"github.com/pribylovaa/invest-tips/internal/pkg/log"
)

var (
	flagConfig string

	cfg    *config.Config
	logger *slog.Logger
)

// NewRootCmd создаёт корневую команду tips-admin.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tips-admin",
		Short: "Administration tool for the investment tips service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = c
			logger = log.Setup(cfg.Env, os.Stderr)
			cmd.SetContext(log.Into(cmd.Context(), logger))
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (overrides CONFIG_PATH env)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
	)

	return root
}
