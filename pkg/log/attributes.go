// Standard attribute keys for evaluation runs.
//
// Keys follow the hierarchical "group.name" convention so that log
// records from the loader, the learners and the harness can be filtered
// uniformly.

package log

// Run context
const (
	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"

	// OperationKey is the operation being performed: "load", "train", "measure", ...
	OperationKey = "ml.operation"

	// PhaseKey is the evaluation phase: "training", "testing".
	PhaseKey = "ml.phase"

	// ProtocolKey is the evaluation protocol: "training", "static", "random", "cross".
	ProtocolKey = "eval.protocol"

	// LearnerKey is the learner name as registered in the learner registry.
	LearnerKey = "eval.learner"

	// RepetitionKey and FoldKey locate a cross-validation fold.
	RepetitionKey = "eval.repetition"
	FoldKey       = "eval.fold"

	// FoldsKey is the requested fold count.
	FoldsKey = "eval.folds"

	// RepetitionsKey is the requested number of cross-validation repetitions.
	RepetitionsKey = "eval.repetitions"

	// TrainRowsKey and TestRowsKey are the partition sizes of a fold.
	TrainRowsKey = "eval.train_rows"
	TestRowsKey  = "eval.test_rows"

	// TrainFractionKey is the fraction of rows used for training in a random split.
	TrainFractionKey = "eval.train_fraction"

	// RandomSeedKey records the seed of the run's random stream.
	RandomSeedKey = "config.random_seed"
)

// Data shape
const (
	// DatasetKey is the path of the dataset being processed.
	DatasetKey = "data.path"

	// SamplesKey is the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// AttributesKey is the total number of columns, label included.
	AttributesKey = "data.attributes"

	// ColumnKey identifies a single column by name.
	ColumnKey = "data.column"

	// LineKey is a 1-based line number in a source file.
	LineKey = "data.line"
)

// Performance and metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds.
	DurationSecondsKey = "perf.duration_seconds"

	// AccuracyKey records predictive accuracy for nominal labels, in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// RMSEKey records root mean squared error for continuous labels.
	RMSEKey = "metrics.rmse"

	// MetricKey names the metric reported by a score.
	MetricKey = "metrics.name"

	// ScoreKey records a score value whose metric is given by MetricKey.
	ScoreKey = "metrics.score"

	// TrainingScoreKey, TestScoreKey and MeanScoreKey summarize a finished run.
	TrainingScoreKey = "metrics.training_score"
	TestScoreKey     = "metrics.test_score"
	MeanScoreKey     = "metrics.mean_score"
)

// Errors
const (
	// ErrorKey holds the error value of an error record.
	ErrorKey = "error"

	// ErrorTypeKey categorizes the error: "ParseError", "PreconditionViolation", ...
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationNormalize = "normalize"
	OperationTrain     = "train"
	OperationMeasure   = "measure"
	OperationShuffle   = "shuffle"

	PhaseTraining = "training"
	PhaseTesting  = "testing"
)
