package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wc-order-export/internal/config"
	"wc-order-export/internal/database"
	"wc-order-export/internal/export"
	"wc-order-export/internal/sink"
	"wc-order-export/internal/woocommerce"

	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "wc_credentials.json", "path to the store credentials file")
	authFile := flag.String("auth-file", "", "Google service account JSON file (enables spreadsheet upload)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runID := uuid.New()
	logger := config.NewLogger(cfg.Logger).With().Str("run_id", runID.String()).Logger()
	logger.Info().Str("after", cfg.Store.After).Msg("starting order export")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := woocommerce.NewClient(cfg.Store, logger)

	var resolver export.CostResolver = client
	if cfg.Export.CacheCosts {
		logger.Info().Msg("memoising product cost lookups for this run")
		resolver = export.NewCachingResolver(client)
	}

	pipeline := export.NewPipeline(client, resolver, logger)

	rows, err := pipeline.Run(ctx, cfg.Store.After)
	if err != nil {
		return fmt.Errorf("order export failed: %w", err)
	}

	sinks := []sink.Sink{sink.NewFileSink(cfg.Export.OutputPath, logger)}

	if *authFile != "" {
		sheetsSink, err := sink.NewSheetsSink(ctx, *authFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, logger)
		if err != nil {
			return fmt.Errorf("failed to initialise spreadsheet upload: %w", err)
		}
		sinks = append(sinks, sheetsSink)
	}

	if cfg.S3.Enabled {
		s3Sink, err := sink.NewS3Sink(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Key, logger)
		if err != nil {
			return fmt.Errorf("failed to initialise S3 upload: %w", err)
		}
		sinks = append(sinks, s3Sink)
	}

	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialise database sink: %w", err)
		}
		defer pool.Close()
		sinks = append(sinks, sink.NewPostgresSink(pool, runID, logger))
	}

	for _, s := range sinks {
		if err := s.Write(ctx, rows); err != nil {
			return err
		}
	}

	logger.Info().Int("row_count", len(rows)).Msg("order export complete")

	return nil
}
