package analyze

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"gasscope/internal/config"
	"gasscope/internal/model"
)

// Analyzer runs the enabled detectors over a log and assembles the report.
type Analyzer struct {
	cfg    config.AnalyzeConfig
	logger *zap.Logger
}

// New builds an Analyzer. The configuration is expected to have passed
// Validate already.
func New(cfg config.AnalyzeConfig, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// resultOrder fixes the position of each detector in the report.
var resultOrder = []model.DetectorKind{
	model.KindMerge,
	model.KindRedundancy,
	model.KindSequence,
	model.KindLongTrace,
	model.KindOutOfGas,
}

// Run executes all enabled detectors and merges their results. Detectors
// run concurrently over the shared read-only log; each accumulates only
// local state, so no synchronization beyond the final join is needed.
func (a *Analyzer) Run(log model.Log) model.Report {
	if len(log.Traces) == 0 {
		a.logger.Warn("empty log, all detectors return empty results")
	}

	threshold := time.Duration(a.cfg.TimeThresholdSeconds * float64(time.Second))
	users := NewUserResolver(a.cfg).ResolveLog(log)

	slots := make(map[model.DetectorKind]*model.DetectionResult)
	var cutoff *float64
	var wg sync.WaitGroup

	run := func(kind model.DetectorKind, fn func() []model.Finding) {
		result := &model.DetectionResult{Kind: kind}
		slots[kind] = result
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.Findings = fn()
			result.Total = len(result.Findings)
		}()
	}

	if a.cfg.Features.Merge {
		run(model.KindMerge, func() []model.Finding {
			return detectMerges(log, users, threshold)
		})
	}
	if a.cfg.Features.Redundancy {
		run(model.KindRedundancy, func() []model.Finding {
			return detectRedundancy(log, users)
		})
	}
	if a.cfg.Features.Sequence {
		run(model.KindSequence, func() []model.Finding {
			return detectSequences(log, users, threshold, a.cfg.MaxSequenceLength, a.cfg.MaxSeqSuggestions)
		})
	}
	if a.cfg.Features.TraceLength {
		run(model.KindLongTrace, func() []model.Finding {
			findings, c := detectLongTraces(log, a.cfg.Percentile, a.cfg.MaxLongTraceSuggestions, a.cfg.LongTraceIdentifier)
			cutoff = &c
			return findings
		})
	}
	if a.cfg.Features.OutOfGas {
		run(model.KindOutOfGas, func() []model.Finding {
			return detectOutOfGas(log, a.cfg.FailureStatuses, a.cfg.MaxOutOfGasSuggestions)
		})
	}

	wg.Wait()

	report := model.Report{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		LogPath:         a.cfg.LogPath,
		Traces:          len(log.Traces),
		LongTraceCutoff: cutoff,
	}

	for _, kind := range resultOrder {
		result, ok := slots[kind]
		if !ok {
			continue
		}
		result.Severity = ClassifySeverity(result.Total, a.cfg.SeverityMedium, a.cfg.SeverityHigh)
		report.Results = append(report.Results, *result)

		a.logger.Info("detector complete",
			zap.String("kind", string(kind)),
			zap.Int("findings", result.Total),
			zap.String("severity", string(result.Severity)),
		)
	}

	return report
}
