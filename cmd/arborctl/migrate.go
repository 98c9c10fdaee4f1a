package main

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/arbor/pkg/database"
)

var migrateVersion uint
var migrateForce int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("failed to create migration driver: %w", err)
		}

		ms := database.NewMigrationService(logger, &database.MigrationConfig{
			MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
			Version:             migrateVersion,
			Force:               migrateForce,
			AutoRollback:        cfg.DatabaseMigrationAutoRollback,
		})
		if err := ms.Migrate(cfg.DatabaseName, driver); err != nil {
			return err
		}

		logger.Info("Migrations complete")
		return nil
	},
}

func init() {
	migrateCmd.Flags().UintVar(&migrateVersion, "version", 0, "migrate to a specific version (0 = latest)")
	migrateCmd.Flags().IntVar(&migrateForce, "force", 0, "force the schema version before migrating")
}

func openDB() (*sqlx.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
		cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)
	return sqlx.Connect(cfg.DatabaseDriver, connStr)
}
