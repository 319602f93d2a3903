package xes

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"gasscope/internal/model"
)

// WriteFile serializes a log to an XES file. A .gz suffix enables compression.
func WriteFile(path string, log model.Log) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz := gzip.NewWriter(file)
		if err := Write(gz, log); err != nil {
			gz.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close gzip: %w", err)
		}
		return nil
	}

	return Write(file, log)
}

// Write serializes a log as XES XML. Attributes are emitted in sorted key
// order so output is reproducible.
func Write(out io.Writer, log model.Log) error {
	w := bufio.NewWriter(out)

	fmt.Fprintln(w, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(w, `<log xes.version="1.0">`)

	for _, trace := range log.Traces {
		fmt.Fprintln(w, "  <trace>")
		writeAttrs(w, "    ", trace.Attrs)
		for _, event := range trace.Events {
			fmt.Fprintln(w, "    <event>")
			writeAttrs(w, "      ", event.Attrs)
			fmt.Fprintln(w, "    </event>")
		}
		fmt.Fprintln(w, "  </trace>")
	}

	fmt.Fprintln(w, "</log>")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func writeAttrs(w *bufio.Writer, indent string, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		tag := "string"
		if key == "time:timestamp" {
			tag = "date"
		}
		fmt.Fprintf(w, "%s<%s key=\"%s\" value=\"%s\"/>\n", indent, tag, escapeXML(key), escapeXML(attrs[key]))
	}
}

func escapeXML(value string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(value)); err != nil {
		return value
	}
	return sb.String()
}
