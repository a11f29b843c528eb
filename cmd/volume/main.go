package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Optional .env keeps the explorer API key out of the shell environment.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "volume",
		Short:        "Multi-chain DEX router volume aggregator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run <address-or-name>",
		Short: "Aggregate router volume for a wallet across configured chains",
		Args:  cobra.ExactArgs(1),
		RunE:  runVolume,
	}

	runCmd.Flags().String("api-url", "https://api.etherscan.io/v2/api", "explorer API base URL")
	runCmd.Flags().String("api-key", "", "explorer API key")
	runCmd.Flags().String("rpc", "", "mainnet RPC URL for name resolution")
	runCmd.Flags().Int("concurrency", 2, "chains processed concurrently per batch")
	runCmd.Flags().Duration("batch-pause", time.Second, "pause between chain batches")
	runCmd.Flags().Duration("page-delay", 2*time.Second, "pause between successive pages")
	runCmd.Flags().Int("max-attempts", 3, "page request attempts before giving up")
	runCmd.Flags().Duration("retry-backoff", time.Second, "initial page retry backoff")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN for report history")
	runCmd.Flags().String("out", "", "output JSONL path for reports")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "Print the configured chain set",
		RunE:  runChains,
	}

	chainsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(chainsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
