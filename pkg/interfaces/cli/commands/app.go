// Package commands wires the fleetplan command line: global flags select the
// snapshot source, subcommands run one analysis each.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/fleetdesk/fleetplan/pkg/application/services/orchestration"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/logging"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/repositories/csv"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/repositories/sqlstore"
	"github.com/fleetdesk/fleetplan/pkg/interfaces/cli/output"
)

// Build metadata, set with -ldflags
var (
	version = "dev"
	commit  = "none"
)

// NewApp builds the fleetplan CLI. Results go to stdout, logs to stderr.
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "fleetplan",
		Usage:     "Fleet capacity and spare-parts procurement planning",
		Version:   fmt.Sprintf("%s (commit: %s)", version, commit),
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding sectors.csv, fleet.csv, parts.csv and movements.csv",
				EnvVars: []string{"FLEETPLAN_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "database-driver",
				Value:   sqlstore.DriverPostgres,
				Usage:   "Record store driver (pgx, mysql)",
				EnvVars: []string{"DATABASE_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Record store connection URL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   output.FormatText,
				Usage:   "Output format (text, json)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "Log format (console, json)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "as-of",
				Usage:   "Pin the analysis date (YYYY-MM-DD) instead of using today",
				EnvVars: []string{"FLEETPLAN_AS_OF"},
			},
		},

		Commands: []*cli.Command{
			capacityCommand(),
			partsCommand(),
			simulateCommand(),
			dashboardCommand(),
			sectorsCommand(),
			serveCommand(),
			migrateCommand(),
		},
	}
}

// runtime is everything a subcommand needs, built from the global flags
type runtime struct {
	cfg          config.Config
	logger       zerolog.Logger
	orchestrator *orchestration.AnalysisOrchestrator
	close        func() error
}

func newRuntime(c *cli.Context) (*runtime, error) {
	tables := config.DefaultTables()
	cfg, err := config.Load(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for flag, field := range map[string]*string{
		"data-dir":        &cfg.DataDir,
		"database-driver": &cfg.DatabaseDriver,
		"database-url":    &cfg.DatabaseURL,
		"log-level":       &cfg.LogLevel,
		"log-format":      &cfg.LogFormat,
	} {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}

	logger, err := logging.New(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	tables = cfg.ApplyTo(tables)
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planning tables: %w", err)
	}

	var clock orchestration.Clock
	if c.IsSet("as-of") {
		asOf, err := time.Parse(time.DateOnly, c.String("as-of"))
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of %q: %w", c.String("as-of"), err)
		}
		clock = func() time.Time { return asOf }
	}

	fleetRepo, partRepo, closeFn, err := openStore(c.Context, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orchestration.NewAnalysisOrchestrator(fleetRepo, partRepo, tables, clock, logger),
		close:        closeFn,
	}, nil
}

// openStore prefers a CSV snapshot directory and falls back to the database
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (repositories.FleetRepository, repositories.PartRepository, func() error, error) {
	if cfg.DataDir != "" {
		loader := csv.NewLoader()
		fleetRepo, partRepo, err := loader.LoadDir(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load snapshot from %s: %w", cfg.DataDir, err)
		}
		for _, warning := range loader.Warnings() {
			logger.Warn().Str("data_dir", cfg.DataDir).Msg(warning)
		}
		logger.Debug().Str("data_dir", cfg.DataDir).Msg("loaded CSV snapshot")
		return fleetRepo, partRepo, func() error { return nil }, nil
	}

	db, err := connect(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, db, db.Close, nil
}

func connect(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*sqlstore.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("no snapshot source: set --data-dir or --database-url")
	}
	return sqlstore.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, logger)
}

// withRuntime builds the runtime for one command action and releases the store afterwards
func withRuntime(fn func(c *cli.Context, rt *runtime) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := newRuntime(c)
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.close(); err != nil {
				rt.logger.Warn().Err(err).Msg("failed to close record store")
			}
		}()
		return fn(c, rt)
	}
}

func render(c *cli.Context, result any) error {
	return output.Render(c.App.Writer, c.String("format"), result)
}

// optionalDecimal parses a decimal flag; unset flags yield nil
func optionalDecimal(c *cli.Context, name string) (*decimal.Decimal, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	value, err := decimal.NewFromString(c.String(name))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, c.String(name), err)
	}
	return &value, nil
}

func decimalFlag(c *cli.Context, name string) (decimal.Decimal, error) {
	value, err := optionalDecimal(c, name)
	if err != nil || value == nil {
		return decimal.Zero, err
	}
	return *value, nil
}
