package analyze

import (
	"fmt"
	"math"
	"sort"

	"gasscope/internal/model"
)

// percentile computes the interpolated percentile of values:
// rank = p/100 × (n−1), linearly interpolated between the bounding
// sorted values. Matches the numpy default.
func percentile(values []int, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	if len(sorted) == 1 {
		return float64(sorted[0])
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}

// detectLongTraces flags traces strictly longer than the configured
// percentile of trace lengths, longest first, capped at maxSuggestions.
// Returns the findings and the cutoff used.
func detectLongTraces(log model.Log, p float64, maxSuggestions int, identifierAttr string) ([]model.Finding, float64) {
	if len(log.Traces) == 0 {
		return nil, 0
	}

	lengths := make([]int, len(log.Traces))
	for i, trace := range log.Traces {
		lengths[i] = len(trace.Events)
	}
	cutoff := percentile(lengths, p)

	type longTrace struct {
		index  int
		length int
	}
	var long []longTrace
	for i, length := range lengths {
		if float64(length) > cutoff {
			long = append(long, longTrace{index: i, length: length})
		}
	}

	sort.SliceStable(long, func(a, b int) bool {
		return long[a].length > long[b].length
	})
	if maxSuggestions >= 0 && len(long) > maxSuggestions {
		long = long[:maxSuggestions]
	}

	findings := make([]model.Finding, 0, len(long))
	for _, entry := range long {
		trace := log.Traces[entry.index]
		desc := fmt.Sprintf("trace #%d: %d activities (cutoff %.2f)", entry.index, entry.length, cutoff)
		if ident := trace.Attrs[identifierAttr]; ident != "" {
			desc = fmt.Sprintf("%s / %s=%s", desc, identifierAttr, ident)
		}
		findings = append(findings, model.Finding{
			Kind:        model.KindLongTrace,
			TraceIndex:  entry.index,
			TraceID:     trace.ID,
			Count:       entry.length,
			Description: desc,
		})
	}

	return findings, cutoff
}
