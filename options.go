package csvsplit

import (
	"log/slog"
	"time"

	"github.com/helixml/csvsplit/infrastructure/tracking"
	"github.com/helixml/csvsplit/internal/config"
)

// databaseType identifies the history database.
type databaseType int

const (
	databaseSQLite databaseType = iota
	databasePostgres
	databaseURL
	databaseNone
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database          databaseType
	dbPath            string
	dbDSN             string
	dataDir           string
	defaultNumLines   int
	logger            *slog.Logger
	reporters         []tracking.Reporter
	reportingInterval time.Duration
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		database:          databaseSQLite,
		dataDir:           config.DefaultDataDir(),
		defaultNumLines:   config.DefaultNumLines,
		reportingInterval: config.DefaultReportingInterval,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDataDir sets the data directory. The default history database lives here.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithSQLite records run history in the SQLite database at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres records run history in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL records run history at a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.database = databaseURL
		c.dbDSN = url
	}
}

// WithoutHistory disables run history.
func WithoutHistory() Option {
	return func(c *clientConfig) {
		c.database = databaseNone
	}
}

// WithDefaultNumLines sets the chunk size used when none is given or remembered.
// Values < 1 are ignored.
func WithDefaultNumLines(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.defaultNumLines = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithReporter adds a reporter that receives every split status change.
func WithReporter(r tracking.Reporter) Option {
	return func(c *clientConfig) {
		c.reporters = append(c.reporters, r)
	}
}

// WithReportingInterval sets the minimum time between progress log lines.
func WithReportingInterval(d time.Duration) Option {
	return func(c *clientConfig) {
		c.reportingInterval = d
	}
}
