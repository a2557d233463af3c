package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"renteasy/internal/backend"
	"renteasy/internal/cli"
	"renteasy/internal/config"
	"renteasy/internal/export"
	applog "renteasy/internal/log"
	"renteasy/internal/sheets"
	gsheet "renteasy/internal/sheets/google"
	"renteasy/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, applog.ComponentWorker)
	ctx, cancel := cli.SignalContext(context.Background(), logger.Logger)
	defer cancel()

	logger.InfoContext(ctx, "Starting receipt-worker", "backend", cfg.DataBackend, "export_dir", cfg.ExportDir)
	if cfg.DataBackend == config.BackendMemory && cfg.EventsEnabled() {
		logger.WarnContext(ctx, "Memory backend does not share records with the API process; events will reference unknown payments")
	}

	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	b, err := backend.New(ctx, bc, logger.Logger)
	if err != nil {
		return fmt.Errorf("initialize backend: %w", err)
	}
	defer b.Close()

	// Google Sheets mirror is optional
	var mirror sheets.PaymentMirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		mirror = client
		logger.InfoContext(ctx, "Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		logger.InfoContext(ctx, "Google Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	w := worker.NewReceiptWorker(b.Payments, b.Reports, export.NewDirSaver(cfg.ExportDir), mirror, cfg.BackfillBatchSize)

	// Catch up on payments recorded while the worker was down
	if err := w.StartupBackfill(ctx); err != nil {
		logger.ErrorContext(ctx, "Receipt backfill failed", "error", err)
	}

	if !cfg.EventsEnabled() {
		logger.InfoContext(ctx, "No AMQP_URL configured - backfill done, exiting")
		return nil
	}
	if b.Events == nil {
		return errors.New("AMQP client unavailable")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := b.Events.Consume(ctx, w.HandleMessage)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	logger.InfoContext(ctx, "Receipt worker stopped")
	return err
}
