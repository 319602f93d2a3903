package analyze

import (
	"testing"
	"time"

	"gasscope/internal/model"
)

func TestMergeAtThreshold(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{
		ID:     "t0",
		Events: []model.Event{evt("u1", "A", at(0)), evt("u1", "B", at(60))},
	}}}

	findings := detectMerges(log, resolveAll(log, cfg), 60*time.Second)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding at exact threshold, got %d", len(findings))
	}
	if got := findings[0].EventIndexes; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("unexpected event indexes: %v", got)
	}
}

func TestMergeBeyondThreshold(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{evt("u1", "A", at(0)), evt("u1", "B", at(61))},
	}}}

	findings := detectMerges(log, resolveAll(log, cfg), 60*time.Second)
	if len(findings) != 0 {
		t.Fatalf("expected no findings past threshold, got %d", len(findings))
	}
}

func TestMergeZeroThreshold(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{
			evt("u1", "A", at(0)),
			evt("u1", "B", at(0)),
			evt("u1", "C", at(1)),
		},
	}}}

	findings := detectMerges(log, resolveAll(log, cfg), 0)
	if len(findings) != 1 {
		t.Fatalf("expected only the simultaneous pair, got %d findings", len(findings))
	}
}

func TestMergeRequiresSameUser(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{evt("u1", "A", at(0)), evt("u2", "B", at(1))},
	}}}

	findings := detectMerges(log, resolveAll(log, cfg), 60*time.Second)
	if len(findings) != 0 {
		t.Fatalf("expected no findings for different users, got %d", len(findings))
	}
}

func TestMergeSkipsMissingTimestamps(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{evt("u1", "A", at(0)), evt("u1", "B", nil), evt("u1", "C", at(5))},
	}}}

	findings := detectMerges(log, resolveAll(log, cfg), 60*time.Second)
	if len(findings) != 0 {
		t.Fatalf("pairs with a missing timestamp must be skipped, got %d findings", len(findings))
	}
}

func TestMergeSingleEventTrace(t *testing.T) {
	cfg := testConfig()
	log := model.Log{Traces: []model.Trace{{Events: []model.Event{evt("u1", "A", at(0))}}}}

	if findings := detectMerges(log, resolveAll(log, cfg), time.Minute); len(findings) != 0 {
		t.Fatalf("trace with one event must produce no findings")
	}
}
