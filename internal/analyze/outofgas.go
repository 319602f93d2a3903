package analyze

import (
	"fmt"
	"sort"

	"gasscope/internal/model"
)

// detectOutOfGas flags events whose status marks a failure and whose gas
// used reached the gas limit. Events missing any of status, gas, or gas
// limit are skipped. Findings are ordered by how far gas used overshoots the
// limit, ties by trace then event order, capped at maxSuggestions.
func detectOutOfGas(log model.Log, failureStatuses []string, maxSuggestions int) []model.Finding {
	failed := make(map[string]struct{}, len(failureStatuses))
	for _, status := range failureStatuses {
		failed[status] = struct{}{}
	}

	type oogEntry struct {
		finding model.Finding
		over    uint64
	}
	var entries []oogEntry

	for traceIdx, trace := range log.Traces {
		for eventIdx, event := range trace.Events {
			if event.Status == "" || event.GasUsed == nil || event.GasLimit == nil {
				continue
			}
			if _, ok := failed[event.Status]; !ok {
				continue
			}
			if *event.GasUsed < *event.GasLimit {
				continue
			}

			entries = append(entries, oogEntry{
				over: *event.GasUsed - *event.GasLimit,
				finding: model.Finding{
					Kind:         model.KindOutOfGas,
					TraceIndex:   traceIdx,
					TraceID:      trace.ID,
					EventIndexes: []int{eventIdx},
					Activities:   []string{event.Activity},
					Count:        1,
					Description: fmt.Sprintf("'%s' failed with gas %d at limit %d",
						event.Activity, *event.GasUsed, *event.GasLimit),
				},
			})
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].over > entries[b].over
	})
	if maxSuggestions >= 0 && len(entries) > maxSuggestions {
		entries = entries[:maxSuggestions]
	}

	findings := make([]model.Finding, 0, len(entries))
	for _, entry := range entries {
		findings = append(findings, entry.finding)
	}
	return findings
}
