package emu

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// OutputSink is the r29/r30 side-channel collaborator (spec.md §3, §4.9,
// §9 Design Notes). Grounded on emu/syscall.go's io.Writer-field,
// functional-option-overridable pattern from the teacher.
type OutputSink interface {
	WriteChar(b byte)
	WriteHex(v int32)
}

// WriterSink emits characters verbatim and hex-formats IMM writes,
// without char coercion (spec.md §9 Open Questions).
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w as an OutputSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// DefaultOutputSink returns the default stdout-backed sink used by the
// CLI run tool.
func DefaultOutputSink() *WriterSink {
	return NewWriterSink(os.Stdout)
}

// WriteChar emits the low byte of v as an ASCII character.
func (s *WriterSink) WriteChar(b byte) {
	_, _ = s.w.Write([]byte{b})
}

// WriteHex hex-formats the signed 32-bit value directly.
func (s *WriterSink) WriteHex(v int32) {
	_, _ = fmt.Fprintf(s.w, "%x", uint32(v))
}

// BufferSink is an in-memory OutputSink for tests, mirroring the
// teacher's bytes.Buffer-based emulator test fixtures.
type BufferSink struct {
	buf bytes.Buffer
}

// NewBufferSink creates an empty in-memory sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// WriteChar appends the character to the buffer.
func (s *BufferSink) WriteChar(b byte) {
	s.buf.WriteByte(b)
}

// WriteHex appends the hex-formatted value to the buffer.
func (s *BufferSink) WriteHex(v int32) {
	fmt.Fprintf(&s.buf, "%x", uint32(v))
}

// String returns everything written so far.
func (s *BufferSink) String() string {
	return s.buf.String()
}
