package cli

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/furnico/pkg/db"
)

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Push every product into the search index",
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

			a := buildApp(cmd.Context(), cfg, gdb, log)
			defer a.close(log)

			n, err := a.catalog.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("reindex_complete", "products", n)
			return nil
		},
	}
}
