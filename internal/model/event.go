package model

import "time"

// Event is one recorded action inside a trace. Semantic fields are decoded
// once by the parser from the configured attribute keys; Attrs keeps the raw
// key/value pairs for re-serialization and ad-hoc lookups.
type Event struct {
	Activity  string            `json:"activity"`
	User      string            `json:"user,omitempty"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Status    string            `json:"status,omitempty"`
	GasUsed   *uint64           `json:"gas_used,omitempty"`
	GasLimit  *uint64           `json:"gas_limit,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Trace is an ordered sequence of events plus trace-level attributes.
// Event order is the input order and is never re-sorted.
type Trace struct {
	ID     string            `json:"id"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Events []Event           `json:"events"`
}

// Log is an ordered sequence of traces as read from the input file.
type Log struct {
	Traces []Trace `json:"traces"`
}
