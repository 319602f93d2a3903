package analyze

import (
	"testing"

	"gasscope/internal/model"
)

func gasEvent(activity, status string, gas, limit uint64) model.Event {
	return model.Event{
		Activity: activity,
		Status:   status,
		GasUsed:  &gas,
		GasLimit: &limit,
	}
}

func TestOutOfGasAtLimit(t *testing.T) {
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{gasEvent("transfer", "failed", 21000, 21000)},
	}}}

	findings := detectOutOfGas(log, []string{"failed"}, 10)
	if len(findings) != 1 {
		t.Fatalf("gas at limit with failed status must be flagged, got %d", len(findings))
	}
}

func TestOutOfGasBelowLimit(t *testing.T) {
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{gasEvent("transfer", "failed", 20999, 21000)},
	}}}

	if findings := detectOutOfGas(log, []string{"failed"}, 10); len(findings) != 0 {
		t.Fatalf("gas below limit must not be flagged, got %d", len(findings))
	}
}

func TestOutOfGasRequiresFailureStatus(t *testing.T) {
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{gasEvent("transfer", "0x1", 21000, 21000)},
	}}}

	if findings := detectOutOfGas(log, []string{"0x0", "false"}, 10); len(findings) != 0 {
		t.Fatalf("success status must not be flagged, got %d", len(findings))
	}
}

func TestOutOfGasSkipsIncompleteEvents(t *testing.T) {
	gas := uint64(21000)
	log := model.Log{Traces: []model.Trace{{
		Events: []model.Event{
			{Activity: "a", Status: "0x0", GasUsed: &gas},
			{Activity: "b", Status: "0x0", GasLimit: &gas},
			{Activity: "c", GasUsed: &gas, GasLimit: &gas},
		},
	}}}

	if findings := detectOutOfGas(log, []string{"0x0"}, 10); len(findings) != 0 {
		t.Fatalf("events missing attributes must be skipped, got %d findings", len(findings))
	}
}

func TestOutOfGasOrderedByOvershoot(t *testing.T) {
	log := model.Log{Traces: []model.Trace{
		{Events: []model.Event{gasEvent("a", "0x0", 21000, 21000)}},
		{Events: []model.Event{gasEvent("b", "0x0", 30000, 21000)}},
		{Events: []model.Event{gasEvent("c", "0x0", 25000, 21000)}},
	}}

	findings := detectOutOfGas(log, []string{"0x0"}, 2)
	if len(findings) != 2 {
		t.Fatalf("cap must limit findings, got %d", len(findings))
	}
	if findings[0].Activities[0] != "b" || findings[1].Activities[0] != "c" {
		t.Fatalf("findings must be ordered by overshoot: %+v", findings)
	}
}
