// Package report contains the evaluation.Sink implementations used by the
// command line: console text, structured logs, a SQLite run history and
// a fold score chart.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mlsys/evaluation"
)

// TextSink prints the classic console transcript of a run.
type TextSink struct {
	w       io.Writer
	verbose bool
	seed    uint64
	err     error
}

var _ evaluation.Sink = (*TextSink)(nil)

// NewTextSink writes to w. When verbose is set, the confusion matrix is
// printed after the scores. seed is echoed in the header.
func NewTextSink(w io.Writer, verbose bool, seed uint64) *TextSink {
	return &TextSink{w: w, verbose: verbose, seed: seed}
}

func (s *TextSink) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// Begin implements evaluation.Sink.
func (s *TextSink) Begin(info evaluation.RunInfo) error {
	if info.Normalized {
		s.printf("Using normalized data\n\n")
	}
	s.printf("\n")
	s.printf("Dataset name: %s\n", info.Dataset)
	s.printf("Number of instances: %d\n", info.Instances)
	s.printf("Number of attributes: %d\n", info.Attributes)
	s.printf("Random seed: %d\n", s.seed)
	s.printf("Learning algorithm: %s\n", info.Learner)
	s.printf("Evaluation method: %s\n", info.Protocol)
	s.printf("\n")

	switch info.Protocol {
	case evaluation.Training:
		s.printf("Calculating accuracy on training set...\n")
	case evaluation.Static:
		s.printf("Calculating accuracy on separate test set...\n")
		s.printf("Test set name: %s\n", info.TestDataset)
		s.printf("Number of test instances: %d\n", info.TestInstances)
	case evaluation.Random:
		s.printf("Calculating accuracy on a random hold-out set...\n")
		s.printf("Percentage used for training: %s\n", javaFloat(info.TrainFraction))
		s.printf("Percentage used for testing: %s\n", javaFloat(1-info.TrainFraction))
	case evaluation.Cross:
		s.printf("Calculating accuracy using cross-validation...\n")
		s.printf("Number of folds: %d\n", info.Folds)
	}
	return s.err
}

// Fold implements evaluation.Sink.
func (s *TextSink) Fold(r evaluation.FoldResult) error {
	s.printf("Rep=%d, Fold=%d, Accuracy=%s\n", r.Repetition, r.Fold, scoreText(r.Score))
	return s.err
}

// End implements evaluation.Sink.
func (s *TextSink) End(r *evaluation.Report) error {
	switch r.Protocol {
	case evaluation.Cross:
		s.printf("Average time to train (in seconds): %s\n", javaFloat(r.TrainTime.Seconds()))
		s.printf("Mean accuracy=%s\n", scoreText(r.MeanScore))
	default:
		s.printf("Time to train (in seconds): %s\n", javaFloat(r.TrainTime.Seconds()))
		s.printf("Training set accuracy: %s\n", scoreText(r.TrainingScore))
		if r.Protocol != evaluation.Training {
			s.printf("Test set accuracy: %s\n", scoreText(r.TestScore))
		}
	}
	if s.verbose && r.Confusion != nil {
		s.printf("\nConfusion matrix: (Row=target value, Col=predicted value)\n")
		s.printf("%s", r.Confusion.String())
		s.printf("\n\n")
	}
	return s.err
}

func scoreText(sc *evaluation.Score) string {
	if sc == nil {
		return "n/a"
	}
	return javaFloat(sc.Value)
}

// javaFloat formats v in shortest form, keeping a trailing ".0" on whole
// numbers so transcripts stay comparable with older runs.
func javaFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
