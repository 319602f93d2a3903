package report

import (
	"strings"
	"testing"

	"gasscope/internal/config"
	"gasscope/internal/model"
)

func TestRenderSectionsAndSummary(t *testing.T) {
	cutoff := 2.99
	rep := model.Report{
		GeneratedAt: "2024-01-01T00:00:00Z",
		Traces:      2,
		Results: []model.DetectionResult{
			{
				Kind:     model.KindMerge,
				Total:    3,
				Severity: model.SeverityHigh,
				Findings: []model.Finding{
					{Kind: model.KindMerge, Description: "merge candidate: A → B within 10s"},
				},
			},
			{Kind: model.KindRedundancy, Total: 0, Severity: model.SeverityLow},
		},
		LongTraceCutoff: &cutoff,
	}

	cfg := config.AnalyzeConfig{
		TimeThresholdSeconds: 60,
		Percentile:           99,
		SeverityMedium:       2,
		SeverityHigh:         3,
		TraceUserAttr:        "concept:name",
	}

	out := Render(rep, cfg)

	for _, want := range []string{
		"[HIGH] Merges (3 findings)",
		"merge candidate: A → B within 10s",
		"[LOW] Redundancy (0 findings)",
		"Traces analyzed",
		"Trace length cutoff",
		"2.99",
		"time_threshold_seconds",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOmitsDetectorsThatDidNotRun(t *testing.T) {
	rep := model.Report{Traces: 1, Results: []model.DetectionResult{
		{Kind: model.KindMerge, Severity: model.SeverityLow},
	}}

	out := Render(rep, config.AnalyzeConfig{})
	if strings.Contains(out, "Out-of-Gas") {
		t.Fatalf("detectors that did not run must not appear:\n%s", out)
	}
}
