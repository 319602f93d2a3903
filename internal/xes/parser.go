package xes

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/klauspost/compress/gzip"

	"gasscope/internal/config"
	"gasscope/internal/model"
)

type xesAttr struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type xesEvent struct {
	Strings  []xesAttr `xml:"string"`
	Dates    []xesAttr `xml:"date"`
	Ints     []xesAttr `xml:"int"`
	Floats   []xesAttr `xml:"float"`
	Booleans []xesAttr `xml:"boolean"`
}

type xesTrace struct {
	Strings  []xesAttr  `xml:"string"`
	Dates    []xesAttr  `xml:"date"`
	Ints     []xesAttr  `xml:"int"`
	Floats   []xesAttr  `xml:"float"`
	Booleans []xesAttr  `xml:"boolean"`
	Events   []xesEvent `xml:"event"`
}

type xesLog struct {
	Traces []xesTrace `xml:"trace"`
}

// Parse reads an XES file (optionally gzip-compressed) and decodes events
// into the semantic fields named by the configured attribute keys.
func Parse(path string, keys config.AttributeKeys) (model.Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Log{}, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return model.Log{}, fmt.Errorf("open gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Decode(reader, keys)
}

// Decode parses XES from a reader.
func Decode(reader io.Reader, keys config.AttributeKeys) (model.Log, error) {
	var raw xesLog
	if err := xml.NewDecoder(reader).Decode(&raw); err != nil {
		return model.Log{}, fmt.Errorf("parse xes: %w", err)
	}

	log := model.Log{Traces: make([]model.Trace, 0, len(raw.Traces))}
	for idx, rawTrace := range raw.Traces {
		traceAttrs := collectAttrs(rawTrace.Strings, rawTrace.Dates, rawTrace.Ints, rawTrace.Floats, rawTrace.Booleans)

		trace := model.Trace{
			ID:     traceID(traceAttrs, idx),
			Attrs:  traceAttrs,
			Events: make([]model.Event, 0, len(rawTrace.Events)),
		}

		for _, rawEvent := range rawTrace.Events {
			attrs := collectAttrs(rawEvent.Strings, rawEvent.Dates, rawEvent.Ints, rawEvent.Floats, rawEvent.Booleans)
			trace.Events = append(trace.Events, decodeEvent(attrs, keys))
		}

		log.Traces = append(log.Traces, trace)
	}

	return log, nil
}

func decodeEvent(attrs map[string]string, keys config.AttributeKeys) model.Event {
	event := model.Event{
		Activity: attrs[keys.Activity],
		User:     attrs[keys.User],
		Status:   attrs[keys.Status],
		Attrs:    attrs,
	}
	if ts, ok := ParseTimestamp(attrs[keys.Timestamp]); ok {
		event.Timestamp = &ts
	}
	if gas, ok := ParseGasValue(attrs[keys.Gas]); ok {
		event.GasUsed = &gas
	}
	if limit, ok := ParseGasValue(attrs[keys.GasLimit]); ok {
		event.GasLimit = &limit
	}
	return event
}

func collectAttrs(groups ...[]xesAttr) map[string]string {
	attrs := make(map[string]string)
	for _, group := range groups {
		for _, attr := range group {
			if attr.Key == "" {
				continue
			}
			attrs[attr.Key] = attr.Value
		}
	}
	return attrs
}

func traceID(attrs map[string]string, idx int) string {
	if name := attrs["concept:name"]; name != "" {
		return name
	}
	return fmt.Sprintf("trace_%d", idx)
}

var fallbackTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
}

// ParseTimestamp parses RFC3339 timestamps plus a few plain date layouts.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, true
	}
	for _, layout := range fallbackTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseGasValue parses gas amounts in decimal or 0x-hex form.
func ParseGasValue(value string) (uint64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		parsed, err := hexutil.DecodeUint64(strings.ToLower(value))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
