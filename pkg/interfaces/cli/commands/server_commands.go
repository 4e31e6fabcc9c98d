package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/logging"
	httpadapter "github.com/fleetdesk/fleetplan/pkg/interfaces/http"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the analyses as a JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Value:   ":8080",
				Usage:   "Listen address",
				EnvVars: []string{"LISTEN_ADDR"},
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := rt.cfg.ListenAddr
			if c.IsSet("listen") {
				addr = c.String("listen")
			}
			return httpadapter.New(rt.orchestrator, rt.logger).ListenAndServe(ctx, addr)
		}),
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the record store schema migrations",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(config.DefaultTables())
			if err != nil {
				return err
			}
			if c.IsSet("database-driver") {
				cfg.DatabaseDriver = c.String("database-driver")
			}
			if c.IsSet("database-url") {
				cfg.DatabaseURL = c.String("database-url")
			}
			logger, err := logging.New(c.App.ErrWriter, c.String("log-level"), c.String("log-format"))
			if err != nil {
				return err
			}

			db, err := connect(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(c.Context); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}
