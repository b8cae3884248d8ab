// Command seed imports a roster CSV into the Postgres roster table so the
// dashboard can be started with DATABASE_URL instead of a local file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wcbustats/internal/config"
	"wcbustats/internal/db"
	"wcbustats/internal/logging"
	"wcbustats/internal/players"
)

var (
	csvPath     string
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a roster CSV into the dashboard database",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		defer logger.Sync()
		return seed(csvPath, databaseURL, logger)
	},
}

func init() {
	cfg := config.Load()
	rootCmd.Flags().StringVar(&csvPath, "csv", cfg.PlayersCSV, "roster CSV to import")
	rootCmd.Flags().StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func seed(path, dsn string, logger *zap.Logger) error {
	if dsn == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL or --database-url")
	}

	table, err := players.LoadFile(path)
	if err != nil {
		return err
	}

	database, err := db.Connect(dsn, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return err
	}
	if err := database.ReplaceRoster(table.Rows()); err != nil {
		return err
	}
	logger.Info("roster imported", zap.String("path", path), zap.Int("rows", table.Len()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
