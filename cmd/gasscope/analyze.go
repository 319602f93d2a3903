package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gasscope/internal/analyze"
	"gasscope/internal/config"
	"gasscope/internal/report"
	"gasscope/internal/storage"
	"gasscope/internal/storage/postgres"
	"gasscope/internal/xes"
)

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAnalyze(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.LogPath == "" {
		return fmt.Errorf("log path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	eventLog, err := xes.Parse(cfg.LogPath, cfg.Keys)
	if err != nil {
		return err
	}

	logger.Info("analyze start",
		zap.String("log", cfg.LogPath),
		zap.Int("traces", len(eventLog.Traces)),
		zap.Float64("time_threshold_seconds", cfg.TimeThresholdSeconds),
		zap.Float64("percentile", cfg.Percentile),
	)

	rep := analyze.New(cfg, logger).Run(eventLog)

	if cfg.Out != "" {
		sink := storage.NewJsonlStorage(cfg.Out)
		for _, result := range rep.Results {
			if err := sink.PutFindingBatch(result.Findings); err != nil {
				return fmt.Errorf("store findings: %w", err)
			}
		}
		if err := storage.WriteReportJSON(jsonReportPath(cfg.Out), rep); err != nil {
			return err
		}
	}

	if cfg.ReportPath != "" {
		if err := os.WriteFile(cfg.ReportPath, []byte(report.Render(rep, cfg)), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		fmt.Print(report.Render(rep, cfg))
	}

	if cfg.PGDSN != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		runID, err := store.InsertRun(ctx, rep)
		if err != nil {
			return err
		}
		if err := store.InsertResults(ctx, runID, rep.Results); err != nil {
			return err
		}
		logger.Info("run persisted", zap.Int64("run_id", runID))
	}

	return nil
}

func jsonReportPath(out string) string {
	return out + ".report.json"
}
