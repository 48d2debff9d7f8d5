package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	coreconfig "github.com/m3rciful/swapstream/core/config"
	coredatabase "github.com/m3rciful/swapstream/core/database"
	"github.com/m3rciful/swapstream/core/logger"
)

func newMigrateCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.LoadOffline(configPath())
			if err != nil {
				return err
			}
			if cfg.Database.Host == "" || cfg.Database.Name == "" {
				return errors.New("database.host and database.name are required")
			}
			if err := logger.InitLogger(cfg); err != nil {
				return err
			}
			defer func() { _ = logger.Shutdown() }()

			if err := coredatabase.RunMigrations(cfg.Database); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Migrations applied to %s", cfg.Database.Name))
			return nil
		},
	}
}
