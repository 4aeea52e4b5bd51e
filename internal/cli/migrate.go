package cli

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/pkg/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.MustDB()

			gdb, err := db.Open(cmd.Context(), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := models.AutoMigrate(gdb); err != nil {
				return err
			}
			log.Info("migrations_applied")
			return nil
		},
	}
}
