package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "gasscope",
		Short:        "Smart-contract event log gas analyzer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run gas-waste detectors over an XES event log",
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().String("log", "", "input XES file (.xes or .xes.gz)")
	analyzeCmd.Flags().String("out", "", "findings JSONL output path")
	analyzeCmd.Flags().String("report", "", "plain-text report output path")
	analyzeCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for run history")
	analyzeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(analyzeCmd)

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Backfill a block range into an XES event log",
		RunE:  runIngest,
	}

	ingestCmd.Flags().String("rpc", "", "chain RPC URL")
	ingestCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	ingestCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	ingestCmd.Flags().Uint64("batch-size", 100, "blocks per batch")
	ingestCmd.Flags().String("out", "./data/log.xes", "output XES path")
	ingestCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	ingestCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	ingestCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	ingestCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	ingestCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(ingestCmd)

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
