// Package cli holds the furnico command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/furnico/internal/config"
	"github.com/Skotchmaster/furnico/pkg/logging"
)

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "furnico",
		Short: "Furnico storefront and back-office API",
		Long: `Furnico serves the furniture storefront API: catalog with 3D models,
cart, checkout, orders, reviews and the admin back-office.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedDemoCmd(), newReindexCmd())
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)
	return cfg, log, nil
}
