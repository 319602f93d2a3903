package analyze

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gasscope/internal/model"
)

const sequenceKeySep = "\x1f"

type sequenceCandidate struct {
	activities  []string
	occurrences []model.Occurrence
}

// detectSequences mines recurring activity sub-sequences of length 2 up to
// maxLen performed by one user within the time threshold. Occurrence counts
// are log-global; a sub-sequence qualifies when it occurs at least twice.
// Emitted findings are capped at maxSuggestions, highest count first, ties
// broken by longer sequence then lexicographic activity order.
func detectSequences(log model.Log, users [][]string, threshold time.Duration, maxLen, maxSuggestions int) []model.Finding {
	candidates := make(map[string]*sequenceCandidate)

	for traceIdx, trace := range log.Traces {
		// User-contiguous windows: maximal runs of consecutive events
		// sharing a resolved user. Windows never cross trace boundaries.
		runStart := 0
		for i := 1; i <= len(trace.Events); i++ {
			if i < len(trace.Events) && users[traceIdx][i] == users[traceIdx][runStart] {
				continue
			}
			collectRunSequences(trace, traceIdx, runStart, i, threshold, maxLen, candidates)
			runStart = i
		}
	}

	keys := make([]string, 0, len(candidates))
	for key, cand := range candidates {
		if len(cand.occurrences) >= 2 {
			keys = append(keys, key)
		}
	}

	sort.Slice(keys, func(a, b int) bool {
		ca, cb := candidates[keys[a]], candidates[keys[b]]
		if len(ca.occurrences) != len(cb.occurrences) {
			return len(ca.occurrences) > len(cb.occurrences)
		}
		if len(ca.activities) != len(cb.activities) {
			return len(ca.activities) > len(cb.activities)
		}
		return keys[a] < keys[b]
	})

	if maxSuggestions >= 0 && len(keys) > maxSuggestions {
		keys = keys[:maxSuggestions]
	}

	findings := make([]model.Finding, 0, len(keys))
	for _, key := range keys {
		cand := candidates[key]
		first := cand.occurrences[0]
		findings = append(findings, model.Finding{
			Kind:         model.KindSequence,
			TraceIndex:   first.TraceIndex,
			TraceID:      log.Traces[first.TraceIndex].ID,
			EventIndexes: first.EventIndexes,
			Activities:   cand.activities,
			Count:        len(cand.occurrences),
			Occurrences:  cand.occurrences,
			Description: fmt.Sprintf("%d× %s", len(cand.occurrences),
				strings.Join(cand.activities, " → ")),
		})
	}

	return findings
}

func collectRunSequences(trace model.Trace, traceIdx, start, end int, threshold time.Duration, maxLen int, candidates map[string]*sequenceCandidate) {
	runLen := end - start
	if runLen < 2 {
		return
	}
	if maxLen > runLen {
		maxLen = runLen
	}

	for length := 2; length <= maxLen; length++ {
		for i := start; i+length <= end; i++ {
			first := trace.Events[i].Timestamp
			last := trace.Events[i+length-1].Timestamp
			if first == nil || last == nil {
				continue
			}
			span := last.Sub(*first)
			if span < 0 || span > threshold {
				continue
			}

			activities := make([]string, 0, length)
			indexes := make([]int, 0, length)
			for j := i; j < i+length; j++ {
				activities = append(activities, trace.Events[j].Activity)
				indexes = append(indexes, j)
			}

			key := strings.Join(activities, sequenceKeySep)
			cand := candidates[key]
			if cand == nil {
				cand = &sequenceCandidate{activities: activities}
				candidates[key] = cand
			}
			cand.occurrences = append(cand.occurrences, model.Occurrence{
				TraceIndex:   traceIdx,
				EventIndexes: indexes,
			})
		}
	}
}
