package audit

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-production-service/internal/model"
)

// Sink receives audit entries. Implementations must treat entries as
// immutable.
type Sink interface {
	Name() string
	Append(ctx context.Context, entry *model.AuditLog) error
}

// Failure is one entry a sink could not accept.
type Failure struct {
	Sink    string
	EntryID string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("audit sink %s: entry %s: %v", f.Sink, f.EntryID, f.Err)
}

// Outcome reports what happened to a batch of audit entries. It is kept apart
// from the result of the mutation that produced the entries.
type Outcome struct {
	Entries  int
	Failures []Failure
}

func (o Outcome) OK() bool {
	return len(o.Failures) == 0
}

// MultiSink appends every entry to every sink, in order, and never stops early.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &MultiSink{sinks: out}
}

func (m *MultiSink) Append(ctx context.Context, entries []*model.AuditLog) Outcome {
	o := Outcome{Entries: len(entries)}
	for _, e := range entries {
		for _, s := range m.sinks {
			if err := s.Append(ctx, e); err != nil {
				o.Failures = append(o.Failures, Failure{Sink: s.Name(), EntryID: e.ID, Err: err})
			}
		}
	}
	return o
}
