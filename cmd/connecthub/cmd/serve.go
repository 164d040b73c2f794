package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/authz"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/bunx"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
	"github.com/jagan25-mj/startup-connect-hub/internal/server"
	"github.com/jagan25-mj/startup-connect-hub/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect Hub API server",
	Long:  `Starts the HTTP server with the auth, startup and interest endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Metrics export; a noop unless an OTLP endpoint is configured.
		telemetryShutdown, err := telemetry.Init(cmd.Context(), cfg.Observability)
		if err != nil {
			return fmt.Errorf("initialize telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetryShutdown(ctx); err != nil {
				log.Printf("Telemetry shutdown: %v", err)
			}
		}()

		metrics, err := telemetry.NewServerMetrics()
		if err != nil {
			return fmt.Errorf("create server metrics: %w", err)
		}

		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		// Initialize repositories
		userRepo := repository.NewBunUserRepository(db)
		startupRepo := repository.NewBunStartupRepository(db)
		interestRepo := repository.NewBunInterestRepository(db)

		// Token issuance and verification share one signing secret. A missing
		// secret is fatal here, before the server ever binds.
		issuer, err := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
		if err != nil {
			return fmt.Errorf("configure token issuer: %w", err)
		}
		verifier, err := auth.NewVerifier(cfg.JWT.Secret)
		if err != nil {
			return fmt.Errorf("configure token verifier: %w", err)
		}

		mediator := authz.NewMediator(authz.NewRepositoryStore(startupRepo, interestRepo))

		r := server.NewRouter(server.RouterOptions{
			Issuer:    issuer,
			Verifier:  verifier,
			Mediator:  mediator,
			Users:     userRepo,
			Startups:  startupRepo,
			Interests: interestRepo,
			Metrics:   metrics,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
