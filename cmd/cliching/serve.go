package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/cliching/internal/adapters/httpapi"
	"github.com/aretw0/cliching/internal/adapters/memory"
	redisstore "github.com/aretw0/cliching/internal/adapters/redis"
	"github.com/aretw0/cliching/internal/config"
	"github.com/aretw0/cliching/internal/logging"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/aretw0/cliching/pkg/persistence/middleware"
	"github.com/aretw0/cliching/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the divination HTTP server",
	Long: `Starts the divination table in server mode, exposing a JSON API over
HTTP. Sessions live in memory by default; a redis store can be configured
for multi-replica deployments. Sessions always expire, nothing is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		corpus, err := oracle.Load()
		if err != nil {
			return err
		}

		var store ports.SessionStore
		switch cfg.Store {
		case config.StoreRedis:
			redisStore := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redisstore.WithTTL(cfg.SessionTTL))
			defer redisStore.Close()
			store = redisStore
		default:
			store = memory.New()
		}

		// Encryption sits closest to the store; redaction masks the
		// question before the envelope is sealed.
		if key, _ := cfg.EncryptionKeyBytes(); key != nil {
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
				ActiveKey: key,
			})(store)
		}
		if len(cfg.RedactPatterns) > 0 {
			store = middleware.NewRedactionMiddleware(cfg.RedactPatterns)(store)
		}

		handler := httpapi.NewHandler(store, corpus, prometheus.NewRegistry(), logger)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("divination server listening",
				"addr", srv.Addr, "store", cfg.Store, "session_ttl", cfg.SessionTTL)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("divination server stopped gracefully")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("config", "", "Path to a yaml configuration file")
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides config)")
}
