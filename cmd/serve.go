package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindupgrade/internal/logging"
	"github.com/abhisek/mindupgrade/internal/server"
	"github.com/abhisek/mindupgrade/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the record service",
	Long: `Serve user records over HTTP until interrupted.

Records are kept in SQLite by default; --backend badger switches to an
embedded Badger database.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides MINDUP_LISTEN env var)")
	serveCmd.Flags().String("backend", "", "Storage backend: sqlite or badger")
	serveCmd.Flags().String("db", "", "Path to the SQLite file or Badger directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Server.Listen = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Store.Backend = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}

	logger, err := logging.New(cfg.Log, "stderr")
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	repo, err := store.Open(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, repo, logger).Run(ctx)
}
