// Command loomctl runs schema migrations, loads seed content and creates
// admin accounts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loomhouse/internal/config"
	"loomhouse/internal/database"
	"loomhouse/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "loomctl",
	Short: "Loomhouse maintenance commands",
	Long: `loomctl manages the Loomhouse database.

Database settings come from the same environment variables (and optional .env
file) the API server reads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
}

// openDatabase loads config and connects. Callers close the manager.
func openDatabase() (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return database.NewManager(cfg)
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, createAdminCmd)
}

func closeDatabase(m *database.Manager) {
	if err := m.Close(); err != nil {
		logger.Get().Warnf("database close error: %v", err)
	}
}
