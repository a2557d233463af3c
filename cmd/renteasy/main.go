package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"renteasy/internal/backend"
	"renteasy/internal/cli"
	"renteasy/internal/config"
	applog "renteasy/internal/log"
)

func main() {
	cli.LoadEnvFile()

	rootCmd := &cobra.Command{
		Use:           "renteasy",
		Short:         "Rental property management: tenants, rent, bills and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		reportCmd(),
		receiptCmd(),
		statementCmd(),
		exportCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every command needs: validated config, logger and backend.
type app struct {
	cfg     *config.Config
	logger  *applog.Logger
	backend *backend.Backend
}

func newApp(ctx context.Context, component string) (*app, error) {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger := cli.SetupLogger(cfg, component)

	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	b, err := backend.New(ctx, bc, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize backend: %w", err)
	}
	return &app{cfg: cfg, logger: logger, backend: b}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.ErrorContext(context.Background(), "Failed to close backend", "error", err)
	}
}
