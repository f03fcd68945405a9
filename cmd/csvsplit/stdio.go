package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/internal/log"
	"github.com/helixml/csvsplit/internal/mcp"
	"github.com/spf13/cobra"
)

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This exposes the split_csv and list_runs tools to AI assistants. Logs go to
stderr because stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := log.Configure(cfg, os.Stderr)
			logger.Info("starting MCP server",
				slog.String("version", version),
				slog.String("data_dir", cfg.DataDir()),
			)

			client, err := csvsplit.New(clientOptions(cfg, logger)...)
			if err != nil {
				return fmt.Errorf("create csvsplit client: %w", err)
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close csvsplit client", slog.Any("error", err))
				}
			}()

			return mcp.NewServer(client.Splits, version, logger).ServeStdio()
		},
	}
}
