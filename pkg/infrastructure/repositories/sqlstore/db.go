// Package sqlstore reads fleet and parts snapshots from PostgreSQL or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Supported driver names
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// DB wraps the connection with the dialect its queries are written for
type DB struct {
	SQL    *sql.DB
	driver string
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// Connect opens and pings a database. pgx URLs go through a pgxpool; mysql://
// and mariadb:// URLs are converted to the go-sql-driver DSN format.
func Connect(ctx context.Context, driver, dsn string, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "sqlstore").Str("driver", driver).Logger()

	switch driver {
	case DriverPostgres:
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres url: %w", err)
		}
		cfg.MaxConns = 10
		cfg.HealthCheckPeriod = 30 * time.Second
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		return &DB{SQL: stdlib.OpenDBFromPool(pool), driver: driver, pool: pool, logger: logger}, nil

	case DriverMySQL:
		mysqlDSN, err := MySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open(DriverMySQL, mysqlDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping mysql: %w", err)
		}
		return &DB{SQL: db, driver: driver, logger: logger}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q (expected %s or %s)", driver, DriverPostgres, DriverMySQL)
	}
}

// Close releases the connection and, for postgres, the pool behind it
func (db *DB) Close() error {
	err := db.SQL.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

// Migrate applies the embedded schema migrations
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{db.logger})
	if err := goose.SetDialect(gooseDialect(db.driver)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.SQL, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MySQLDSN turns a mysql:// or mariadb:// URL into a driver DSN and forces
// parseTime so timestamp columns scan into time.Time. Native DSNs pass through
// the same options.
func MySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		cfg := mysql.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		if cfg.User == "" || cfg.Addr == "" || cfg.DBName == "" {
			return "", fmt.Errorf("incomplete mysql dsn: user, host and database are required")
		}
		dsn = cfg.FormatDSN()
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func gooseDialect(driver string) string {
	if driver == DriverMySQL {
		return "mysql"
	}
	return "postgres"
}

// rebind rewrites ? placeholders to $n for postgres
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(strings.TrimSpace(format), v...)
}
