package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/invest-tips/internal/app"
	"github.com/pribylovaa/invest-tips/internal/service"
)

const seedTimeout = 2 * time.Minute

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load investment tips from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			defer f.Close()

			tips, err := service.LoadSeed(f)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			st, err := app.OpenStorage(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			// Без Redis сид всё равно выполняется: кэш только не будет сброшен.
			pc, err := app.OpenCache(ctx, cfg.Redis)
			if err != nil {
				logger.Warn("seed_cache_unavailable", slog.String("err", err.Error()))
			}
			if pc != nil {
				defer pc.Close()
			}

			svc := service.New(st, *cfg, service.WithCache(pc))

			saved, err := svc.SeedTips(ctx, tips)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tips\n", len(saved))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with tips")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
