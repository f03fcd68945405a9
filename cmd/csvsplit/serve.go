package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/infrastructure/api"
	"github.com/helixml/csvsplit/internal/config"
	"github.com/helixml/csvsplit/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and MCP server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 127.0.0.1)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: ~/.csvsplit)
  DB_URL                       History database URL (default: sqlite:///{data_dir}/csvsplit.db)
  DISABLE_HISTORY              Do not record split runs (default: false)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  DEFAULT_NUM_LINES            Chunk size when none is given or remembered (default: 10)
  CORS_ALLOWED_ORIGINS         Comma-separated allowed origins (default: *)
  REPORTING_LOG_TIME_INTERVAL  Seconds between progress log lines (default: 5)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), applyServeOverrides(cfg, host, port))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, cfg config.AppConfig) error {
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg, os.Stderr)
	attrs := append([]slog.Attr{slog.String("version", version), slog.String("addr", cfg.Addr())}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting csvsplit", attrs...)

	client, err := csvsplit.New(clientOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create csvsplit client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close csvsplit client", slog.Any("error", err))
		}
	}()

	server := api.NewAPIServer(client, cfg.Addr(), cfg.CORSAllowedOrigins(), version)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
