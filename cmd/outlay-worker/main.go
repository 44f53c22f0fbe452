package main

import (
	"context"
	"errors"
	"os"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/cli"
	"outlay/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting outlay-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the journal worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	journal, err := worker.NewJournalWorker(cfg.JournalPath)
	if err != nil {
		logger.Error("Failed to open journal", "error", err, "path", cfg.JournalPath)
		os.Exit(1)
	}
	defer journal.Close()

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, nil)

	logger.Info("Journal worker ready",
		"queue", cfg.AMQPQueue,
		"journal_path", cfg.JournalPath)

	err = amqpClient.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		return journal.HandleChange(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
