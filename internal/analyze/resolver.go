package analyze

import (
	"gasscope/internal/config"
	"gasscope/internal/model"
)

// UnknownUser is the sentinel for events whose user cannot be resolved.
const UnknownUser = "unknown"

// UserResolver computes the effective user for every event. The same
// resolution is shared by all detectors that group by user; resolving
// per-detector would be a correctness bug.
type UserResolver struct {
	Fallback      bool
	TraceUserAttr string
}

// NewUserResolver builds a resolver from the analyze configuration.
func NewUserResolver(cfg config.AnalyzeConfig) UserResolver {
	return UserResolver{
		Fallback:      cfg.FallbackUserFromTrace,
		TraceUserAttr: cfg.TraceUserAttr,
	}
}

// Resolve returns the effective user for one event of a trace: the event's
// own user if present, else the configured trace attribute when fallback is
// enabled, else the unknown sentinel.
func (r UserResolver) Resolve(trace model.Trace, event model.Event) string {
	if event.User != "" {
		return event.User
	}
	if r.Fallback {
		if user := trace.Attrs[r.TraceUserAttr]; user != "" {
			return user
		}
	}
	return UnknownUser
}

// ResolveTrace resolves all events of a trace in order.
func (r UserResolver) ResolveTrace(trace model.Trace) []string {
	users := make([]string, len(trace.Events))
	for i, event := range trace.Events {
		users[i] = r.Resolve(trace, event)
	}
	return users
}

// ResolveLog memoizes the resolved user of every event, indexed by trace
// then event position.
func (r UserResolver) ResolveLog(log model.Log) [][]string {
	users := make([][]string, len(log.Traces))
	for i, trace := range log.Traces {
		users[i] = r.ResolveTrace(trace)
	}
	return users
}
