package main

import (
	"log/slog"
	"strings"

	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/internal/config"
	"github.com/helixml/csvsplit/internal/database"
)

// clientOptions returns the csvsplit.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []csvsplit.Option {
	opts := []csvsplit.Option{
		csvsplit.WithDataDir(cfg.DataDir()),
		csvsplit.WithLogger(logger),
		csvsplit.WithDefaultNumLines(cfg.DefaultNumLines()),
		csvsplit.WithReportingInterval(cfg.Reporting().LogTimeInterval()),
	}
	return append(opts, storageOptions(cfg)...)
}

// storageOptions returns the option selecting the history database.
func storageOptions(cfg config.AppConfig) []csvsplit.Option {
	if cfg.DisableHistory() {
		return []csvsplit.Option{csvsplit.WithoutHistory()}
	}

	dbURL := cfg.DBURL()
	if dbURL == "" {
		return nil
	}
	if database.IsSQLiteURL(dbURL) {
		if path, ok := strings.CutPrefix(dbURL, "sqlite:///"); ok {
			return []csvsplit.Option{csvsplit.WithSQLite(path)}
		}
	}
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return []csvsplit.Option{csvsplit.WithPostgres(dbURL)}
	}
	return []csvsplit.Option{csvsplit.WithDatabaseURL(dbURL)}
}
