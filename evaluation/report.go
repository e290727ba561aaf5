package evaluation

import (
	"time"

	"github.com/YuminosukeSato/mlsys/core/relation"
)

// Metric names the quantity a Score holds.
type Metric string

const (
	// MetricAccuracy is the fraction of exact nominal matches, in [0, 1].
	MetricAccuracy Metric = "accuracy"
	// MetricRMSE is the root-mean-squared error of a continuous label.
	MetricRMSE Metric = "rmse"
)

// Score is one measurement of predictive accuracy.
type Score struct {
	Metric Metric
	Value  float64
}

// RunInfo describes a run before it starts.
type RunInfo struct {
	Protocol      Protocol
	Learner       string
	Dataset       string
	TestDataset   string
	TestInstances int
	Instances     int
	Attributes    int
	Metric        Metric
	TrainFraction float64
	Folds         int
	Repetitions   int
	Normalized    bool
}

// FoldResult is the outcome of one cross-validation fold. Score is nil
// when the fold held no rows.
type FoldResult struct {
	Repetition int
	Fold       int
	TrainRows  int
	TestRows   int
	Score      *Score
	TrainTime  time.Duration
}

// Report is the structured result of Evaluate. Scores that were not
// measured are nil.
type Report struct {
	Protocol   Protocol
	Learner    string
	Instances  int
	Attributes int
	Metric     Metric

	TrainingScore *Score
	TestScore     *Score

	Folds     []FoldResult
	MeanScore *Score

	// TrainTime is the training time of the run, or the mean over folds
	// for the cross protocol.
	TrainTime time.Duration

	// Confusion is indexed [actual][predicted]; its columns are named after
	// the label categories.
	Confusion *relation.Matrix
}
