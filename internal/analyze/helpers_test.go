package analyze

import (
	"time"

	"gasscope/internal/config"
	"gasscope/internal/model"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(seconds int) *time.Time {
	ts := testEpoch.Add(time.Duration(seconds) * time.Second)
	return &ts
}

func evt(user, activity string, ts *time.Time) model.Event {
	return model.Event{Activity: activity, User: user, Timestamp: ts}
}

func testConfig() config.AnalyzeConfig {
	return config.AnalyzeConfig{
		TimeThresholdSeconds:    60,
		MaxSequenceLength:       5,
		MaxSeqSuggestions:       10,
		Percentile:              99,
		MaxLongTraceSuggestions: 5,
		MaxOutOfGasSuggestions:  10,
		SeverityMedium:          2,
		SeverityHigh:            3,
		FallbackUserFromTrace:   true,
		TraceUserAttr:           "concept:name",
		LongTraceIdentifier:     "blockNumber",
		FailureStatuses:         []string{"0x0", "false"},
		Keys: config.AttributeKeys{
			Timestamp: "time:timestamp",
			Activity:  "concept:name",
			User:      "org:resource",
			Status:    "status",
			Gas:       "gas",
			GasLimit:  "gasLimit",
		},
		Features: config.Features{
			Merge:       true,
			Redundancy:  true,
			Sequence:    true,
			TraceLength: true,
			OutOfGas:    true,
		},
	}
}

func resolveAll(log model.Log, cfg config.AnalyzeConfig) [][]string {
	return NewUserResolver(cfg).ResolveLog(log)
}
