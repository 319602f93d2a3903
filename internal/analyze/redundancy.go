package analyze

import (
	"fmt"

	"gasscope/internal/model"
)

// detectRedundancy flags runs of 2+ consecutive events in a trace that share
// both resolved user and activity. A run of length n yields one finding with
// repetition count n; runs never overlap.
func detectRedundancy(log model.Log, users [][]string) []model.Finding {
	var findings []model.Finding

	for traceIdx, trace := range log.Traces {
		runStart := 0
		for i := 1; i <= len(trace.Events); i++ {
			if i < len(trace.Events) &&
				trace.Events[i].Activity == trace.Events[runStart].Activity &&
				users[traceIdx][i] == users[traceIdx][runStart] {
				continue
			}

			if runLen := i - runStart; runLen >= 2 {
				indexes := make([]int, 0, runLen)
				for j := runStart; j < i; j++ {
					indexes = append(indexes, j)
				}
				findings = append(findings, model.Finding{
					Kind:         model.KindRedundancy,
					TraceIndex:   traceIdx,
					TraceID:      trace.ID,
					EventIndexes: indexes,
					Activities:   []string{trace.Events[runStart].Activity},
					User:         users[traceIdx][runStart],
					Count:        runLen,
					Description: fmt.Sprintf("'%s' repeated %d times in a row",
						trace.Events[runStart].Activity, runLen),
				})
			}
			runStart = i
		}
	}

	return findings
}
