package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volumeScope/internal/chain"
	"volumeScope/internal/config"
	"volumeScope/internal/engine"
	"volumeScope/internal/explorer"
	"volumeScope/internal/model"
	"volumeScope/internal/naming"
	"volumeScope/internal/storage"
	"volumeScope/internal/storage/postgres"
)

func runVolume(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if len(cfg.Chains) == 0 {
		return fmt.Errorf("at least one chain is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := strings.TrimSpace(args[0])
	if naming.IsName(address) {
		if cfg.RPCURL == "" {
			return fmt.Errorf("rpc url is required to resolve %s", address)
		}
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		resolver := naming.NewENSResolver(chainClient, logger)
		address, err = resolver.Resolve(ctx, address)
		if err != nil {
			return err
		}
	}

	client := explorer.NewClient(cfg.APIURL, cfg.APIKey, explorer.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBackoff,
		PageDelay:   cfg.PageDelay,
	}, logger)

	processor := engine.NewProcessor(client, logger)
	scheduler := engine.NewScheduler(engine.SchedulerConfig{
		Concurrency: cfg.Concurrency,
		BatchPause:  cfg.BatchPause,
	}, processor, logger)

	logger.Info("aggregation start",
		zap.String("address", address),
		zap.Int("chains", len(cfg.Chains)),
		zap.Int("concurrency", cfg.Concurrency),
		zap.String("api_url", cfg.APIURL),
	)

	report, err := scheduler.Run(ctx, address, cfg.Chains, cfg.Prices)
	if err != nil {
		return err
	}

	printReport(report)

	if cfg.Out != "" {
		var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutReport(report); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.InsertReport(ctx, report); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		if err := store.SaveState(ctx, report.Address, report.GeneratedAt); err != nil {
			return fmt.Errorf("save run state: %w", err)
		}
	}

	return nil
}

func printReport(report model.AggregateReport) {
	fmt.Printf("Address: %s\n", report.Address)
	fmt.Printf("Total volume: $%.2f\n", report.TotalUSD)
	for _, row := range report.Distribution {
		fmt.Printf("  %-12s $%.2f\n", row.Chain, row.VolumeUSD)
	}
	if report.Notice != "" {
		fmt.Printf("Note: %s\n", report.Notice)
	}
}
