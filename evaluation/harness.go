package evaluation

import (
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
	"github.com/YuminosukeSato/mlsys/preprocessing"
)

// Evaluate runs protocol p over data with learner. The last column of data
// is the label; every other column is a feature.
//
// The random and cross protocols shuffle data in place, and normalization
// rescales it in place. Any error, including a panic inside the learner,
// aborts the whole run and no report is returned.
func Evaluate(p Protocol, data *relation.Matrix, learner model.Learner, opts ...Option) (report *Report, err error) {
	defer func() {
		if err != nil {
			report = nil
		}
	}()
	defer errors.Recover(&err, "evaluation.Evaluate")

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := newRun(p, data, learner, cfg)
	if err != nil {
		return nil, err
	}
	return r.execute()
}

type run struct {
	protocol Protocol
	data     *relation.Matrix
	learner  model.Learner
	cfg      config
	logger   log.Logger
	report   *Report
}

func newRun(p Protocol, data *relation.Matrix, learner model.Learner, cfg config) (*run, error) {
	const op = "evaluation.Evaluate"

	if learner == nil {
		return nil, errors.NewValidationError("learner", "must not be nil", nil)
	}
	if data == nil || data.Cols() == 0 {
		return nil, errors.NewValidationError("data", "needs at least a label column", nil)
	}
	if data.Rows() == 0 {
		return nil, errors.NewModelError(op, "", errors.ErrEmptyData)
	}
	if cfg.rng == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.rng = rand.New(rand.NewPCG(seed, seed))
	}

	switch p {
	case Training:
	case Static:
		if cfg.testSet == nil {
			return nil, errors.NewValidationError("test set", "required by the static protocol", nil)
		}
		if err := data.Compatible(cfg.testSet); err != nil {
			return nil, err
		}
	case Random:
		if cfg.trainFraction < 0 || cfg.trainFraction > 1 {
			return nil, errors.NewValidationError("train fraction", "must be in [0, 1]", cfg.trainFraction)
		}
	case Cross:
		if cfg.folds <= 0 {
			return nil, errors.NewValidationError("folds", "must be at least 1", cfg.folds)
		}
		if cfg.repetitions <= 0 {
			return nil, errors.NewValidationError("repetitions", "must be at least 1", cfg.repetitions)
		}
	default:
		return nil, errors.NewValidationError("protocol", "unknown protocol", int(p))
	}

	name := model.NameOf(learner)
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("evaluation")
	}
	logger = logger.With(log.ProtocolKey, p.String(), log.LearnerKey, name)

	labelCol := data.Cols() - 1
	metric := MetricAccuracy
	if data.IsContinuous(labelCol) {
		metric = MetricRMSE
	}

	return &run{
		protocol: p,
		data:     data,
		learner:  learner,
		cfg:      cfg,
		logger:   logger,
		report: &Report{
			Protocol:   p,
			Learner:    name,
			Instances:  data.Rows(),
			Attributes: data.Cols(),
			Metric:     metric,
		},
	}, nil
}

func (r *run) execute() (*Report, error) {
	if r.cfg.normalize {
		if err := r.normalize(); err != nil {
			return nil, err
		}
	}

	info := RunInfo{
		Protocol:    r.protocol,
		Learner:     r.report.Learner,
		Dataset:     r.cfg.dataset,
		Instances:   r.report.Instances,
		Attributes:  r.report.Attributes,
		Metric:      r.report.Metric,
		Repetitions: 1,
		Normalized:  r.cfg.normalize,
	}
	switch r.protocol {
	case Static:
		info.TestDataset = r.cfg.testDataset
		info.TestInstances = r.cfg.testSet.Rows()
	case Random:
		info.TrainFraction = r.cfg.trainFraction
	case Cross:
		info.Folds = r.cfg.folds
		info.Repetitions = r.cfg.repetitions
	}
	if err := r.emit("sink.Begin", func() error { return r.cfg.sink.Begin(info) }); err != nil {
		return nil, err
	}
	r.logger.Info("Evaluation started",
		log.DatasetKey, r.cfg.dataset,
		log.SamplesKey, r.report.Instances,
		log.AttributesKey, r.report.Attributes,
	)

	var err error
	switch r.protocol {
	case Training:
		err = r.training()
	case Static:
		err = r.static()
	case Random:
		err = r.random()
	case Cross:
		err = r.cross()
	}
	if err != nil {
		r.logger.Error("Evaluation failed", err)
		return nil, err
	}

	if err := r.emit("sink.End", func() error { return r.cfg.sink.End(r.report) }); err != nil {
		return nil, err
	}
	r.logger.Info("Evaluation finished", log.DurationSecondsKey, r.report.TrainTime.Seconds())
	return r.report, nil
}

// emit delivers one event to the sink. A panicking sink becomes a
// PanicError naming the event.
func (r *run) emit(operation string, fn func() error) error {
	return errors.SafeExecute(operation, fn)
}

func (r *run) normalize() error {
	scaler := preprocessing.NewMinMaxScaler()
	if err := scaler.FitTransform(r.data); err != nil {
		return err
	}
	if r.protocol == Static {
		return scaler.Transform(r.cfg.testSet)
	}
	return nil
}

// split returns the feature and label copies of rows [lo, hi) of m.
func split(m *relation.Matrix, lo, hi int) (features, labels *relation.Matrix) {
	last := m.Cols() - 1
	return relation.Slice(m, lo, 0, hi-lo, last), relation.Slice(m, lo, last, hi-lo, 1)
}

func (r *run) train(features, labels *relation.Matrix) (time.Duration, error) {
	start := time.Now()
	if err := r.learner.Train(features, labels); err != nil {
		return 0, errors.NewModelError("evaluation.train", r.report.Learner, err)
	}
	elapsed := time.Since(start)
	r.logger.Debug("Learner trained",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, features.Rows(),
		log.DurationMsKey, elapsed.Milliseconds(),
	)
	return elapsed, nil
}

func (r *run) measure(phase string, features, labels *relation.Matrix, withConfusion bool) (*Score, *relation.Matrix, error) {
	score, cm, err := MeasureAccuracy(r.learner, features, labels, withConfusion)
	if err != nil {
		return nil, nil, err
	}
	r.logger.Debug("Accuracy measured",
		log.OperationKey, log.OperationMeasure,
		log.PhaseKey, phase,
		log.MetricKey, string(score.Metric),
		log.ScoreKey, score.Value,
	)
	return &score, cm, nil
}

func (r *run) shuffle(rep int) {
	r.data.Shuffle(r.cfg.rng)
	r.logger.Debug("Data shuffled", log.OperationKey, log.OperationShuffle, log.RepetitionKey, rep)
}

func (r *run) training() error {
	features, labels := split(r.data, 0, r.data.Rows())
	elapsed, err := r.train(features, labels)
	if err != nil {
		return err
	}
	r.report.TrainTime = elapsed
	r.report.TrainingScore, r.report.Confusion, err = r.measure(log.PhaseTraining, features, labels, r.cfg.confusion)
	return err
}

func (r *run) static() error {
	features, labels := split(r.data, 0, r.data.Rows())
	elapsed, err := r.train(features, labels)
	if err != nil {
		return err
	}
	r.report.TrainTime = elapsed
	if r.report.TrainingScore, _, err = r.measure(log.PhaseTraining, features, labels, false); err != nil {
		return err
	}

	test := r.cfg.testSet
	testFeatures, testLabels := split(test, 0, test.Rows())
	r.report.TestScore, r.report.Confusion, err = r.measure(log.PhaseTesting, testFeatures, testLabels, r.cfg.confusion)
	return err
}

func (r *run) random() error {
	r.shuffle(0)
	n := r.data.Rows()
	trainCount := int(r.cfg.trainFraction * float64(n))

	trainFeatures, trainLabels := split(r.data, 0, trainCount)
	testFeatures, testLabels := split(r.data, trainCount, n)

	elapsed, err := r.train(trainFeatures, trainLabels)
	if err != nil {
		return err
	}
	r.report.TrainTime = elapsed

	if trainCount == 0 {
		r.logger.Warn("Training partition is empty, skipping measurement", log.PhaseKey, log.PhaseTraining)
	} else if r.report.TrainingScore, _, err = r.measure(log.PhaseTraining, trainFeatures, trainLabels, false); err != nil {
		return err
	}

	if trainCount == n {
		r.logger.Warn("Test partition is empty, skipping measurement", log.PhaseKey, log.PhaseTesting)
		return nil
	}
	r.report.TestScore, r.report.Confusion, err = r.measure(log.PhaseTesting, testFeatures, testLabels, r.cfg.confusion)
	return err
}

func (r *run) cross() error {
	n := r.data.Rows()
	folds, err := FoldBounds(n, r.cfg.folds)
	if err != nil {
		return err
	}

	var (
		sum       float64
		measured  int
		totalTime time.Duration
	)
	for rep := 0; rep < r.cfg.repetitions; rep++ {
		r.shuffle(rep)
		for _, f := range folds {
			testFeatures, testLabels := split(r.data, f.Lo, f.Hi)

			// 学習用データは前半 [0, lo) と後半 [hi, n) を連結して作る
			trainFeatures, trainLabels := split(r.data, 0, f.Lo)
			last := r.data.Cols() - 1
			if err := trainFeatures.Append(r.data, f.Hi, 0, n-f.Hi); err != nil {
				return err
			}
			if err := trainLabels.Append(r.data, f.Hi, last, n-f.Hi); err != nil {
				return err
			}

			elapsed, err := r.train(trainFeatures, trainLabels)
			if err != nil {
				return err
			}
			totalTime += elapsed

			result := FoldResult{
				Repetition: rep,
				Fold:       f.Index,
				TrainRows:  trainFeatures.Rows(),
				TestRows:   f.Size(),
				TrainTime:  elapsed,
			}
			if f.Size() == 0 {
				r.logger.Warn("Fold is empty, skipping measurement", log.RepetitionKey, rep, log.FoldKey, f.Index)
			} else {
				score, _, err := r.measure(log.PhaseTesting, testFeatures, testLabels, false)
				if err != nil {
					return err
				}
				result.Score = score
				sum += score.Value
				measured++
			}
			r.report.Folds = append(r.report.Folds, result)
			if err := r.emit("sink.Fold", func() error { return r.cfg.sink.Fold(result) }); err != nil {
				return err
			}
		}
	}

	r.report.TrainTime = totalTime / time.Duration(len(r.report.Folds))
	if measured > 0 {
		r.report.MeanScore = &Score{Metric: r.report.Metric, Value: sum / float64(measured)}
	}
	return nil
}
