package main

import (
	"fmt"

	"github.com/nikolayk812/cvshop/internal/config"
	"github.com/nikolayk812/cvshop/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres migrations for the cart_state table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Storage.Driver != config.DriverPostgres {
			return fmt.Errorf("storage driver is %q, migrations only apply to %q", cfg.Storage.Driver, config.DriverPostgres)
		}

		applied, err := migrations.Up(cfg.Storage.DSN)
		if err != nil {
			return err
		}

		logger.Info("migrations finished", zap.Bool("applied", applied))
		return nil
	},
}
