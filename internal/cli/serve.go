package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nudge/internal/actions"
	"nudge/internal/engine"
	"nudge/internal/gateway"
	"nudge/internal/ident"
	"nudge/internal/provider/openai"
	"nudge/pkg/logger"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Nudge gateway server",
		Long: `Start the Nudge gateway server.

The server exposes POST /api/v1/chat for chat turns and GET /health
for liveness checks, listening on the configured host and port
(default: 127.0.0.1:8080).`,
		Example: `  # Start server with default configuration
  nudge serve

  # Start server with custom port
  nudge serve --port 9000

  # Start server with verbose logging
  nudge serve --verbose`,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	cmd.Flags().String("host", "", "host to bind to (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cliCtx := getCLIContext(cmd)
	if cliCtx == nil {
		return fmt.Errorf("CLI context not initialized")
	}

	cfg := cliCtx.Config

	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Gateway.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Gateway.Host = host
	}

	prov := openai.New(openai.Config{
		Endpoint: cfg.OpenAI.Endpoint,
		Model:    cfg.OpenAI.Model,
		APIKey:   cfg.OpenAI.APIKey,
		Timeout:  cfg.OpenAI.GetTimeout(),
	})

	dispatcher := actions.NewDispatcher(ident.NewGenerator(), *logger.Get())
	eng := engine.New(prov, dispatcher, engine.Config{
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.Engine.MaxTokens,
		Temperature: cfg.Engine.Temperature,
	}, *logger.Get())

	srv := gateway.NewServer(cfg, eng, Version)

	// Hot reload of the log level on config file changes
	if watcher, err := gateway.NewWatcher(cliCtx.ConfigPath); err != nil {
		logger.Warn().Err(err).Msg("Config watcher unavailable")
	} else if err := watcher.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start config watcher")
	} else {
		srv.SetWatcher(watcher)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info().Msg("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("Server error")
			return err
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
		return err
	}

	logger.Info().Msg("Server stopped")
	return nil
}
