package config

import "fmt"

// ConfigurationError reports a detector that is enabled but missing a
// required attribute key. It is surfaced before any detector executes.
type ConfigurationError struct {
	Detector string
	Missing  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("detector %q is enabled but %s is not configured", e.Detector, e.Missing)
}

// Validate checks that every enabled detector has the attribute keys it
// depends on. Per-event attribute gaps are handled at detection time; this
// only catches schema-level misconfiguration.
func (c AnalyzeConfig) Validate() error {
	if c.SeverityMedium >= c.SeverityHigh {
		return fmt.Errorf("severity_limits.medium (%d) must be below severity_limits.high (%d)", c.SeverityMedium, c.SeverityHigh)
	}
	if c.TimeThresholdSeconds < 0 {
		return fmt.Errorf("time_threshold_seconds must be non-negative")
	}
	if c.Percentile < 0 || c.Percentile > 100 {
		return fmt.Errorf("percentile must be between 0 and 100")
	}

	if c.Features.Merge && c.Keys.Timestamp == "" {
		return &ConfigurationError{Detector: "merge", Missing: "timestamp_key"}
	}
	if c.Features.Redundancy && c.Keys.Activity == "" {
		return &ConfigurationError{Detector: "redundancy", Missing: "activity_key"}
	}
	if c.Features.Sequence {
		if c.Keys.Timestamp == "" {
			return &ConfigurationError{Detector: "sequence", Missing: "timestamp_key"}
		}
		if c.Keys.Activity == "" {
			return &ConfigurationError{Detector: "sequence", Missing: "activity_key"}
		}
		if c.MaxSequenceLength < 2 {
			return fmt.Errorf("max_sequence_length must be at least 2")
		}
	}
	if c.Features.OutOfGas {
		switch {
		case c.Keys.Status == "":
			return &ConfigurationError{Detector: "out_of_gas", Missing: "status_key"}
		case c.Keys.Gas == "":
			return &ConfigurationError{Detector: "out_of_gas", Missing: "gas_key"}
		case c.Keys.GasLimit == "":
			return &ConfigurationError{Detector: "out_of_gas", Missing: "gas_limit_key"}
		}
	}

	return nil
}
