package emitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yairfalse/sagescan/pkg/record"
)

// envelope is one JSON line of the record stream.
type envelope struct {
	Kind   record.Kind   `json:"kind"`
	URN    string        `json:"urn"`
	Record record.Record `json:"record"`
}

// StdoutEmitter writes records as JSON lines, one per record, so a
// consumer can checkpoint after each line.
type StdoutEmitter struct {
	enc *json.Encoder
}

// NewStdoutEmitter creates a JSON-lines emitter writing to w.
func NewStdoutEmitter(w io.Writer) *StdoutEmitter {
	return &StdoutEmitter{enc: json.NewEncoder(w)}
}

// Emit writes one record as a JSON line.
func (e *StdoutEmitter) Emit(_ context.Context, rec record.Record) error {
	env := envelope{
		Kind:   rec.RecordKind(),
		URN:    rec.RecordURN(),
		Record: rec,
	}
	if err := e.enc.Encode(env); err != nil {
		return fmt.Errorf("encode record %s: %w", rec.RecordURN(), err)
	}
	return nil
}

// Close is a no-op for the stdout emitter.
func (e *StdoutEmitter) Close() error {
	return nil
}
