// Package cli implements the farmcalc command tree.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Simplici0/farmyield/internal/config"
	"github.com/Simplici0/farmyield/internal/db"
	"github.com/Simplici0/farmyield/internal/logging"
	"github.com/Simplici0/farmyield/internal/migrations"
)

// app carries state shared by every subcommand.
type app struct {
	dbPath    string
	logLevel  string
	logFormat string
	logger    zerolog.Logger
}

// NewRootCmd creates the root farmcalc command with every subcommand attached.
// Flag defaults come from the environment (see config.Load).
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:          "farmcalc",
		Short:        "Farm yield, cost, revenue and profit calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = logging.Component(logging.New(logging.Options{
				Level:  a.logLevel,
				Format: a.logFormat,
				Out:    cmd.ErrOrStderr(),
			}), "cli")
			a.logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DBPath, "path to the SQLite catalog database")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", cfg.LogFormat, "log format (console, json)")

	cmd.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a, cfg.CatalogPath),
		newYieldCmd(a),
		newReportCmd(a),
	)

	return cmd
}

// openDB opens and migrates the catalog database.
func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	database, err := db.Open(ctx, a.dbPath)
	if err != nil {
		return nil, err
	}
	applied, err := migrations.Up(ctx, database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate %s: %w", a.dbPath, err)
	}
	if applied > 0 {
		a.logger.Info().Int("applied", applied).Str("db", a.dbPath).Msg("migrations applied")
	}
	return database, nil
}
