package report

import (
	"github.com/YuminosukeSato/mlsys/evaluation"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

// LogSink records the progress of a run as structured log records.
type LogSink struct {
	logger log.Logger
}

var _ evaluation.Sink = (*LogSink)(nil)

// NewLogSink returns a sink writing to logger, or to the "report"
// component logger when logger is nil.
func NewLogSink(logger log.Logger) *LogSink {
	if logger == nil {
		logger = log.GetLoggerWithName("report")
	}
	return &LogSink{logger: logger}
}

// Begin implements evaluation.Sink.
func (s *LogSink) Begin(info evaluation.RunInfo) error {
	s.logger = s.logger.With(log.ProtocolKey, info.Protocol.String(), log.LearnerKey, info.Learner)
	fields := []any{
		log.DatasetKey, info.Dataset,
		log.SamplesKey, info.Instances,
		log.AttributesKey, info.Attributes,
		log.MetricKey, string(info.Metric),
	}
	switch info.Protocol {
	case evaluation.Random:
		fields = append(fields, log.TrainFractionKey, info.TrainFraction)
	case evaluation.Cross:
		fields = append(fields, log.FoldsKey, info.Folds, log.RepetitionsKey, info.Repetitions)
	}
	s.logger.Info("Run started", fields...)
	return nil
}

// Fold implements evaluation.Sink.
func (s *LogSink) Fold(r evaluation.FoldResult) error {
	fields := []any{
		log.RepetitionKey, r.Repetition,
		log.FoldKey, r.Fold,
		log.TrainRowsKey, r.TrainRows,
		log.TestRowsKey, r.TestRows,
		log.DurationMsKey, r.TrainTime.Milliseconds(),
	}
	if r.Score == nil {
		s.logger.Warn("Fold not measured", fields...)
		return nil
	}
	s.logger.Info("Fold evaluated", append(fields, log.ScoreKey, r.Score.Value)...)
	return nil
}

// End implements evaluation.Sink.
func (s *LogSink) End(r *evaluation.Report) error {
	fields := []any{log.DurationSecondsKey, r.TrainTime.Seconds()}
	for _, sc := range []struct {
		key   string
		score *evaluation.Score
	}{
		{log.TrainingScoreKey, r.TrainingScore},
		{log.TestScoreKey, r.TestScore},
		{log.MeanScoreKey, r.MeanScore},
	} {
		if sc.score != nil {
			fields = append(fields, sc.key, sc.score.Value)
		}
	}
	s.logger.Info("Run completed", fields...)
	return nil
}
