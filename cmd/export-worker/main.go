package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/amqp"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/cli"
	gsheet "github.com/VBWEBcorp/Gestion-clients-vbweb/internal/sheets/google"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the export worker")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(store, sheetsClient)

	// Push a snapshot at startup so the sheet reflects any changes made while
	// the worker was down.
	if err := exportWorker.Export(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordChanges(ctx, exportWorker.HandleChangeMessage)
	})
	g.Go(func() error {
		return exportWorker.RunPeriodic(ctx, cfg.ExportInterval)
	})

	logger.Info("Export worker started", "interval", cfg.ExportInterval.String())
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Export worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Export worker stopped gracefully")
}
