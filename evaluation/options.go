package evaluation

import (
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

type config struct {
	rng           relation.Source
	testSet       *relation.Matrix
	trainFraction float64
	folds         int
	repetitions   int
	normalize     bool
	confusion     bool
	sink          Sink
	logger        log.Logger
	dataset       string
	testDataset   string
}

func defaultConfig() config {
	return config{
		trainFraction: -1,
		repetitions:   1,
		sink:          NopSink{},
	}
}

// Option configures a run of Evaluate.
type Option func(*config)

// WithRand sets the random stream used by every shuffle of the run.
func WithRand(r relation.Source) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithTestSet sets the held-out dataset of the static protocol.
func WithTestSet(m *relation.Matrix) Option {
	return func(c *config) {
		c.testSet = m
	}
}

// WithTrainFraction sets the share of rows used for training by the
// random protocol. It must lie in [0, 1].
func WithTrainFraction(p float64) Option {
	return func(c *config) {
		c.trainFraction = p
	}
}

// WithFolds sets the fold count of the cross protocol.
func WithFolds(k int) Option {
	return func(c *config) {
		c.folds = k
	}
}

// WithRepetitions sets how many times cross-validation is repeated, each
// time after a fresh shuffle. Defaults to 1.
func WithRepetitions(n int) Option {
	return func(c *config) {
		c.repetitions = n
	}
}

// WithNormalization min-max scales the continuous columns of the dataset
// before any split. The static test set is scaled with the same ranges.
func WithNormalization(on bool) Option {
	return func(c *config) {
		c.normalize = on
	}
}

// WithConfusionMatrix requests a confusion matrix for nominal labels.
func WithConfusionMatrix(on bool) Option {
	return func(c *config) {
		c.confusion = on
	}
}

// WithSink receives the run's progress and final report.
func WithSink(s Sink) Option {
	return func(c *config) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger overrides the "evaluation" component logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithDatasetName labels the run with the dataset it was loaded from.
func WithDatasetName(name string) Option {
	return func(c *config) {
		c.dataset = name
	}
}

// WithTestSetName labels the static test set with the file it was loaded from.
func WithTestSetName(name string) Option {
	return func(c *config) {
		c.testDataset = name
	}
}
