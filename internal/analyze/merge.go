package analyze

import (
	"fmt"
	"time"

	"gasscope/internal/model"
)

// detectMerges flags immediately consecutive event pairs in a trace that
// share a resolved user and lie within the time threshold of each other.
// Pairs with a missing timestamp, or arriving out of timestamp order, are
// skipped rather than treated as errors.
func detectMerges(log model.Log, users [][]string, threshold time.Duration) []model.Finding {
	var findings []model.Finding

	for traceIdx, trace := range log.Traces {
		for i := 1; i < len(trace.Events); i++ {
			prev := trace.Events[i-1]
			curr := trace.Events[i]
			if users[traceIdx][i-1] != users[traceIdx][i] {
				continue
			}
			if prev.Timestamp == nil || curr.Timestamp == nil {
				continue
			}

			delta := curr.Timestamp.Sub(*prev.Timestamp)
			if delta < 0 || delta > threshold {
				continue
			}

			findings = append(findings, model.Finding{
				Kind:         model.KindMerge,
				TraceIndex:   traceIdx,
				TraceID:      trace.ID,
				EventIndexes: []int{i - 1, i},
				Activities:   []string{prev.Activity, curr.Activity},
				User:         users[traceIdx][i],
				Count:        1,
				Description: fmt.Sprintf("merge candidate: %s → %s within %s",
					prev.Activity, curr.Activity, delta),
			})
		}
	}

	return findings
}
