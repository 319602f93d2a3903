package model

// DetectorKind identifies which analysis pass produced a finding.
type DetectorKind string

const (
	KindMerge      DetectorKind = "merge"
	KindRedundancy DetectorKind = "redundancy"
	KindSequence   DetectorKind = "sequence"
	KindLongTrace  DetectorKind = "long_trace"
	KindOutOfGas   DetectorKind = "out_of_gas"
)

// Severity buckets a detector's total finding count.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Occurrence points at a concrete location of a pattern inside the log.
type Occurrence struct {
	TraceIndex   int   `json:"trace_index"`
	EventIndexes []int `json:"event_indexes"`
}

// Finding is one detected instance of a gas-saving opportunity or anomaly.
// Findings are created by detectors and never mutated afterwards.
type Finding struct {
	Kind         DetectorKind `json:"kind"`
	TraceIndex   int          `json:"trace_index"`
	TraceID      string       `json:"trace_id,omitempty"`
	EventIndexes []int        `json:"event_indexes,omitempty"`
	Activities   []string     `json:"activities,omitempty"`
	User         string       `json:"user,omitempty"`
	Count        int          `json:"count,omitempty"`
	Occurrences  []Occurrence `json:"occurrences,omitempty"`
	Description  string       `json:"description"`
}

// DetectionResult is the ordered output of a single detector run.
type DetectionResult struct {
	Kind     DetectorKind `json:"kind"`
	Findings []Finding    `json:"findings"`
	Total    int          `json:"total"`
	Severity Severity     `json:"severity"`
}

// Report aggregates the results of all enabled detectors. Detectors disabled
// in configuration are absent from Results, so consumers can tell "ran, found
// nothing" apart from "did not run".
type Report struct {
	GeneratedAt     string            `json:"generated_at"`
	LogPath         string            `json:"log_path,omitempty"`
	Traces          int               `json:"traces"`
	Results         []DetectionResult `json:"results"`
	LongTraceCutoff *float64          `json:"long_trace_cutoff,omitempty"`
}

// Result returns the detection result for a kind, if present.
func (r Report) Result(kind DetectorKind) (DetectionResult, bool) {
	for _, res := range r.Results {
		if res.Kind == kind {
			return res, true
		}
	}
	return DetectionResult{}, false
}
