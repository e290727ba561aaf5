package evaluation

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Sink receives the progress of a run. A sink error aborts the run.
type Sink interface {
	Begin(info RunInfo) error
	Fold(result FoldResult) error
	End(report *Report) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Begin(RunInfo) error { return nil }
func (NopSink) Fold(FoldResult) error { return nil }
func (NopSink) End(*Report) error { return nil }

// MultiSink forwards each event to every sink in order and stops at the
// first error.
type MultiSink []Sink

func (m MultiSink) Begin(info RunInfo) error {
	for _, s := range m {
		if err := s.Begin(info); err != nil {
			return errors.Wrap(err, "sink begin")
		}
	}
	return nil
}

func (m MultiSink) Fold(result FoldResult) error {
	for _, s := range m {
		if err := s.Fold(result); err != nil {
			return errors.Wrap(err, "sink fold")
		}
	}
	return nil
}

func (m MultiSink) End(report *Report) error {
	for _, s := range m {
		if err := s.End(report); err != nil {
			return errors.Wrap(err, "sink end")
		}
	}
	return nil
}
