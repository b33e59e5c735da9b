package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/agenda/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the database schema, including the unique index
that keeps one live appointment per client and slot.

Examples:
  # Migrate the database in DATABASE_URL
  agenda migrate

  # Migrate a local SQLite file
  DB_DRIVER=sqlite DATABASE_URL=agenda.db agenda migrate`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	if err := dbpkg.Migrate(db); err != nil {
		return err
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("schema up to date")
	return nil
}
