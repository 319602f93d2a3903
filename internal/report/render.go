package report

import (
	"fmt"
	"strings"

	"gasscope/internal/config"
	"gasscope/internal/model"
)

var kindTitles = map[model.DetectorKind]string{
	model.KindMerge:      "Merges",
	model.KindRedundancy: "Redundancy",
	model.KindSequence:   "Sequences",
	model.KindLongTrace:  "Trace Length",
	model.KindOutOfGas:   "Out-of-Gas",
}

var severityTags = map[model.Severity]string{
	model.SeverityHigh:   "[HIGH]",
	model.SeverityMedium: "[MEDIUM]",
	model.SeverityLow:    "[LOW]",
}

// Render produces the plain-text optimization report: one section per
// detector that ran, followed by a summary table and a parameter snapshot
// for reproducibility.
func Render(rep model.Report, cfg config.AnalyzeConfig) string {
	var sb strings.Builder

	sb.WriteString("Gas Optimization Report\n")
	sb.WriteString("=======================\n\n")

	for _, result := range rep.Results {
		fmt.Fprintf(&sb, "%s %s (%d findings)\n", severityTags[result.Severity], kindTitles[result.Kind], result.Total)
		for _, finding := range result.Findings {
			fmt.Fprintf(&sb, "  • %s\n", finding.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary\n")
	sb.WriteString("-------\n")
	writeSummaryRow(&sb, "Traces analyzed", fmt.Sprintf("%d", rep.Traces))
	for _, result := range rep.Results {
		writeSummaryRow(&sb, kindTitles[result.Kind], fmt.Sprintf("%d (%s)", result.Total, result.Severity))
	}
	if rep.LongTraceCutoff != nil {
		writeSummaryRow(&sb, "Trace length cutoff", fmt.Sprintf("%.2f (p%.0f)", *rep.LongTraceCutoff, cfg.Percentile))
	}
	sb.WriteString("\n")

	sb.WriteString("Parameters\n")
	sb.WriteString("----------\n")
	writeSummaryRow(&sb, "time_threshold_seconds", fmt.Sprintf("%g", cfg.TimeThresholdSeconds))
	writeSummaryRow(&sb, "max_sequence_length", fmt.Sprintf("%d", cfg.MaxSequenceLength))
	writeSummaryRow(&sb, "max_seq_suggestions", fmt.Sprintf("%d", cfg.MaxSeqSuggestions))
	writeSummaryRow(&sb, "percentile", fmt.Sprintf("%g", cfg.Percentile))
	writeSummaryRow(&sb, "max_long_trace_suggestions", fmt.Sprintf("%d", cfg.MaxLongTraceSuggestions))
	writeSummaryRow(&sb, "max_out_of_gas_suggestions", fmt.Sprintf("%d", cfg.MaxOutOfGasSuggestions))
	writeSummaryRow(&sb, "severity_limits", fmt.Sprintf("medium=%d high=%d", cfg.SeverityMedium, cfg.SeverityHigh))
	writeSummaryRow(&sb, "fallback_user_from_trace", fmt.Sprintf("%t", cfg.FallbackUserFromTrace))
	writeSummaryRow(&sb, "trace_user_attr", cfg.TraceUserAttr)
	writeSummaryRow(&sb, "generated_at", rep.GeneratedAt)

	return sb.String()
}

func writeSummaryRow(sb *strings.Builder, key, value string) {
	fmt.Fprintf(sb, "  %-28s %s\n", key, value)
}
