package config

import "testing"

func TestLoadAnalyzeDefaults(t *testing.T) {
	cfg, err := LoadAnalyze("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TimeThresholdSeconds != 60 {
		t.Fatalf("unexpected time threshold: %v", cfg.TimeThresholdSeconds)
	}
	if cfg.MaxSequenceLength != 5 {
		t.Fatalf("unexpected max sequence length: %d", cfg.MaxSequenceLength)
	}
	if cfg.Percentile != 99 {
		t.Fatalf("unexpected percentile: %v", cfg.Percentile)
	}
	if cfg.SeverityMedium != 2 || cfg.SeverityHigh != 3 {
		t.Fatalf("unexpected severity limits: %d/%d", cfg.SeverityMedium, cfg.SeverityHigh)
	}
	if cfg.Keys.Timestamp != "time:timestamp" || cfg.Keys.User != "org:resource" {
		t.Fatalf("unexpected attribute keys: %+v", cfg.Keys)
	}
	if !cfg.Features.Merge || !cfg.Features.OutOfGas {
		t.Fatalf("detectors must default to enabled: %+v", cfg.Features)
	}
	if !cfg.FallbackUserFromTrace || cfg.TraceUserAttr != "concept:name" {
		t.Fatalf("unexpected fallback settings: %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
