// Package csvsplit splits line-oriented text files into numbered chunks,
// replaying a fixed number of header lines at the top of every chunk.
//
// Basic usage:
//
//	client, err := csvsplit.New(csvsplit.WithDataDir(".csvsplit"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Splits.Split(ctx, split.NewRequest("data.csv", 1000, split.WithHeader(true)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Files())
package csvsplit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/helixml/csvsplit/application/service"
	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/infrastructure/chunking"
	"github.com/helixml/csvsplit/infrastructure/persistence"
	"github.com/helixml/csvsplit/infrastructure/tracking"
	"github.com/helixml/csvsplit/internal/config"
	"github.com/helixml/csvsplit/internal/database"
)

// ErrClientClosed is returned by operations on a closed Client.
var ErrClientClosed = service.ErrClientClosed

// Client is the main entry point for the csvsplit library.
type Client struct {
	// Splits runs splits and exposes their history.
	Splits *service.Split

	db              *database.Database
	cooldown        *tracking.Cooldown
	logger          *slog.Logger
	dataDir         string
	defaultNumLines int
	closed          atomic.Bool
	mu              sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	client := &Client{
		logger:          logger,
		dataDir:         dataDir,
		defaultNumLines: cfg.defaultNumLines,
	}

	var runs split.RunStore
	if cfg.database != databaseNone {
		db, err := openHistory(context.Background(), cfg, dataDir, logger)
		if err != nil {
			return nil, err
		}
		client.db = &db
		runs = persistence.NewRunStore(db)
	}

	client.cooldown = tracking.NewCooldown(tracking.NewLoggingReporter(logger), cfg.reportingInterval)
	reporters := make([]tracking.Reporter, 0, len(cfg.reporters)+1)
	reporters = append(reporters, client.cooldown)
	reporters = append(reporters, cfg.reporters...)

	client.Splits = service.NewSplit(chunking.NewSplitter(logger), runs, reporters, &client.closed, logger)

	logger.Debug("csvsplit client ready",
		slog.String("data_dir", dataDir),
		slog.Bool("history", runs != nil),
	)
	return client, nil
}

// NumLines returns the chunk size to use when the caller gave none: the
// chunk size of the last successful run, or the configured default.
func (c *Client) NumLines(ctx context.Context) int {
	if n, ok := c.Splits.LastNumLines(ctx); ok {
		return n
	}
	return c.defaultNumLines
}

// DataDir returns the client's data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close flushes pending progress and closes the history database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if err := c.cooldown.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close reporter: %w", err))
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	c.logger.Debug("csvsplit client closed")
	return errors.Join(errs...)
}

func openHistory(ctx context.Context, cfg *clientConfig, dataDir string, logger *slog.Logger) (database.Database, error) {
	dbURL, err := buildDatabaseURL(cfg, dataDir)
	if err != nil {
		return database.Database{}, fmt.Errorf("build database url: %w", err)
	}

	db, err := database.NewDatabaseWithLogger(ctx, dbURL, logger)
	if err != nil {
		return database.Database{}, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return database.Database{}, errors.Join(err, errClose)
	}
	return db, nil
}

func buildDatabaseURL(cfg *clientConfig, dataDir string) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		path := cfg.dbPath
		if path == "" {
			path = filepath.Join(dataDir, config.DefaultDatabaseFile)
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return "", fmt.Errorf("create database directory: %w", err)
			}
		}
		return "sqlite:///" + path, nil
	case databasePostgres:
		return cfg.dbDSN, nil
	case databaseURL:
		return cfg.dbDSN, nil
	default:
		return "", fmt.Errorf("unknown database type %d", cfg.database)
	}
}
