package emu

import (
	"encoding/json"
	"io"
)

// EventSink is the pluggable tagged-event logging collaborator (spec.md
// §9 "logging treated as a tagged event sink"). Grounded on the
// teacher's io.Writer-field sink pattern (emu/syscall.go's
// stdout/stderr fields) rather than a third-party structured-logging
// library — nothing in the teacher or pack imports one, so this stays a
// thin stdlib wrapper; see DESIGN.md.
type EventSink interface {
	Emit(tag string, fields map[string]any)
}

// NoopEventSink discards every event. The zero value is ready to use and
// is what every driver defaults to when no sink is supplied.
type NoopEventSink struct{}

// Emit does nothing.
func (NoopEventSink) Emit(string, map[string]any) {}

// JSONEventSink writes one JSON object per event to w, used by the CLI's
// --trace flag.
type JSONEventSink struct {
	w io.Writer
}

// NewJSONEventSink wraps w as a JSON-lines EventSink.
func NewJSONEventSink(w io.Writer) *JSONEventSink {
	return &JSONEventSink{w: w}
}

// Emit writes {"tag": tag, ...fields} as a single JSON line, silently
// dropping the event on a marshal or write failure — logging must never
// abort a run.
func (s *JSONEventSink) Emit(tag string, fields map[string]any) {
	record := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		record[k] = v
	}
	record["tag"] = tag

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = s.w.Write(data)
}
