package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/telemetry"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply (or with --down, revert one) screening log migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for migrate")
		}
		ctx := cmd.Context()

		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
		if err != nil {
			telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
			return err
		}
		defer sqlDB.Close()

		down, _ := cmd.Flags().GetBool("down")
		run := db.RunMigrations
		if down {
			run = db.RollbackMigration
		}
		version, err := run(ctx, sqlDB)
		if err != nil {
			telemetry.Error("migrate.failed", map[string]any{"error": err, "down": down})
			return err
		}
		telemetry.Info("migrate.done", map[string]any{"version": version, "down": down})
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("down", false, "revert the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}
