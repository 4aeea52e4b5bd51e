package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/pkg/db"
)

type demoAccount struct {
	name  string
	email string
	role  models.Role
}

var demoAccounts = []demoAccount{
	{"Demo Admin", "demo-admin@furnico.demo", models.RoleDemoAdmin},
	{"Demo User", "demo-user@furnico.demo", models.RoleDemoUser},
}

// seedDemo is idempotent: existing demo accounts get their role and password reset.
func seedDemo(ctx context.Context, auth *service.AuthService, password string) ([]*models.User, error) {
	out := make([]*models.User, 0, len(demoAccounts))
	for _, acc := range demoAccounts {
		u, err := auth.SeedUser(ctx, acc.name, acc.email, password, acc.role)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", acc.email, err)
		}
		out = append(out, u)
	}
	return out, nil
}

func newSeedDemoCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Create the demo admin and demo user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 8 {
				return fmt.Errorf("--password must be at least 8 characters")
			}
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

			a := buildApp(cmd.Context(), cfg, gdb, log)
			defer a.close(log)

			users, err := seedDemo(cmd.Context(), a.auth, password)
			if err != nil {
				return err
			}
			for _, u := range users {
				log.Info("demo_account_ready", "email", u.Email, "role", u.Role)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "demo1234", "password for both demo accounts")
	return cmd
}
