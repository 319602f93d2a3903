package analyze

import (
	"reflect"
	"testing"

	"gasscope/internal/model"
)

func smokeLog() model.Log {
	return model.Log{Traces: []model.Trace{
		{
			ID: "t1",
			Events: []model.Event{
				evt("u1", "A", at(0)),
				evt("u1", "B", at(10)),
				evt("u1", "B", at(15)),
			},
		},
		{
			ID: "t2",
			Events: []model.Event{
				evt("u2", "A", at(100)),
				evt("u2", "C", at(130)),
			},
		},
	}}
}

func TestAnalyzerSmokeScenario(t *testing.T) {
	rep := New(testConfig(), nil).Run(smokeLog())

	merge, ok := rep.Result(model.KindMerge)
	if !ok {
		t.Fatalf("merge result missing")
	}
	if merge.Total != 3 {
		t.Fatalf("expected 3 merge findings (A-B, B-B, A-C), got %d", merge.Total)
	}
	if merge.Severity != model.SeverityHigh {
		t.Fatalf("3 findings at limits medium=2 high=3 must be high, got %s", merge.Severity)
	}

	redundancy, ok := rep.Result(model.KindRedundancy)
	if !ok {
		t.Fatalf("redundancy result missing")
	}
	if redundancy.Total != 1 {
		t.Fatalf("expected 1 redundancy finding (the B-B run), got %d", redundancy.Total)
	}
	if redundancy.Findings[0].Count != 2 {
		t.Fatalf("B-B run must have repetition count 2, got %d", redundancy.Findings[0].Count)
	}

	sequence, ok := rep.Result(model.KindSequence)
	if !ok {
		t.Fatalf("sequence result missing")
	}
	if sequence.Total != 0 {
		t.Fatalf("no sub-sequence repeats across the log, got %d findings", sequence.Total)
	}

	if rep.Traces != 2 {
		t.Fatalf("expected 2 traces, got %d", rep.Traces)
	}
}

func TestAnalyzerDeterminism(t *testing.T) {
	cfg := testConfig()
	log := smokeLog()

	first := New(cfg, nil).Run(log)
	second := New(cfg, nil).Run(log)

	first.GeneratedAt = ""
	second.GeneratedAt = ""
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ between identical runs:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzerDisabledDetectorsAbsent(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Sequence = false
	cfg.Features.OutOfGas = false

	rep := New(cfg, nil).Run(smokeLog())

	if _, ok := rep.Result(model.KindSequence); ok {
		t.Fatalf("disabled sequence detector must be absent from the report")
	}
	if _, ok := rep.Result(model.KindOutOfGas); ok {
		t.Fatalf("disabled out-of-gas detector must be absent from the report")
	}
	if len(rep.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(rep.Results))
	}
}

func TestAnalyzerEmptyLog(t *testing.T) {
	rep := New(testConfig(), nil).Run(model.Log{})

	if rep.Traces != 0 {
		t.Fatalf("expected 0 traces, got %d", rep.Traces)
	}
	for _, result := range rep.Results {
		if result.Total != 0 {
			t.Fatalf("empty log must produce empty results, %s has %d", result.Kind, result.Total)
		}
		if result.Severity != model.SeverityLow {
			t.Fatalf("zero findings must be low severity, %s is %s", result.Kind, result.Severity)
		}
	}
}

func TestAnalyzerResultOrderFixed(t *testing.T) {
	rep := New(testConfig(), nil).Run(smokeLog())

	var kinds []model.DetectorKind
	for _, result := range rep.Results {
		kinds = append(kinds, result.Kind)
	}
	want := []model.DetectorKind{
		model.KindMerge,
		model.KindRedundancy,
		model.KindSequence,
		model.KindLongTrace,
		model.KindOutOfGas,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("result order mismatch: %v", kinds)
	}
}
