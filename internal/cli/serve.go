package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/furnico/internal/httpserver"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/pkg/db"
	jwthelp "github.com/Skotchmaster/furnico/pkg/jwt"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.MustServe()
			jwthelp.Secure = cfg.CookieSecure

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			gdb, err := db.Open(initCtx, cfg.DBDSN)
			cancel()
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(gdb); err != nil {
					log.Error("db_close_failed", "error", err)
				}
			}()
			if migrate {
				if err := models.AutoMigrate(gdb); err != nil {
					return err
				}
			}

			a := buildApp(ctx, cfg, gdb, log)
			defer a.close(log)

			e := httpserver.New(a.deps(cfg, log))
			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           e,
				ReadTimeout:       10 * time.Second,
				ReadHeaderTimeout: 3 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("http_listen", "addr", cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}

			log.Info("shutting_down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("http_shutdown_failed", "error", err)
			}
			log.Info("server_stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}
