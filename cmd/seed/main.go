package main

import (
	"context"
	"os"
	"time"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/amqp"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/cli"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/seed"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed.Run(ctx, store); err != nil {
		logger.Error("Seeding failed", "error", err, "db", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	logger.Info("Ledger seeded", "db", cfg.SQLiteDBPath)

	// Notify the export worker that the whole book changed.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, skipping reseed event", "error", err)
			return
		}
		defer amqpClient.Close()

		if err := amqpClient.PublishRecordChange(ctx, 0, amqp.ActionReseeded); err != nil {
			logger.Warn("Failed to publish reseed event", "error", err)
		}
	}
}
