package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/app"
	"github.com/abhisek/mindupgrade/internal/client"
	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/exercise"
	"github.com/abhisek/mindupgrade/internal/llm"
	"github.com/abhisek/mindupgrade/internal/logging"
	"github.com/abhisek/mindupgrade/internal/promptgen"
	"github.com/abhisek/mindupgrade/internal/session"
)

const pingTimeout = 2 * time.Second

// runApp builds dependencies and launches the TUI. The terminal belongs to
// the UI, so logs go to a file.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.DefaultFile()
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}
	logger, err := logging.New(cfg.Log, logFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	api, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := checkService(ctx, api, logger); err != nil {
		return err
	}

	markerPath, err := session.DefaultMarkerPath()
	if err != nil {
		return fmt.Errorf("resolve session marker: %w", err)
	}
	ctrl := session.New(api,
		session.WithMarker(session.NewFileMarker(markerPath)),
		session.WithLogger(logger),
	)

	bank := content.DefaultBank()
	opts := app.Options{
		Session:  ctrl,
		Selector: exercise.NewSelector(bank, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		Logger:   logger,
		Bank:     bank,
	}

	if cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
		if err != nil {
			logger.Warn("LLM provider not configured, using built-in prompts", zap.Error(err))
		} else {
			opts.Refresher = promptgen.NewRefresher(provider, logger)
		}
	}

	return app.Run(ctx, opts)
}

// checkService refuses to start against a service speaking another API
// version. An unreachable service is only logged: the UI reports it when
// the user logs in.
func checkService(ctx context.Context, api *client.Client, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	v, err := api.Ping(ctx)
	switch {
	case errors.Is(err, client.ErrIncompatible):
		return fmt.Errorf("record service at %s: %w", api.BaseURL(), err)
	case err != nil:
		logger.Warn("record service unreachable", zap.String("url", api.BaseURL()), zap.Error(err))
	default:
		logger.Info("record service", zap.String("url", api.BaseURL()), zap.String("version", v))
	}
	return nil
}
