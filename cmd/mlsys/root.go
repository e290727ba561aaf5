package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/evaluation"
	"github.com/YuminosukeSato/mlsys/learners"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
	"github.com/YuminosukeSato/mlsys/report"
)

const usageExamples = `  mlsys -L [learner] -A [file.arff] -E training
  mlsys -L [learner] -A [file.arff] -E static [test.arff]
  mlsys -L [learner] -A [file.arff] -E random [fractionForTraining]
  mlsys -L [learner] -A [file.arff] -E cross [folds]`

// usageError marks command line mistakes; they print the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: errors.Newf(format, args...)}
}

// execute runs the command and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %s\n\n", ue.err)
		cmd.SetOut(stderr)
		_ = cmd.Usage()
		return 1
	}
	logFailure(err)
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		flags      = defaultConfig()
	)

	cmd := &cobra.Command{
		Use:           "mlsys",
		Short:         "Evaluate a learner on an ARFF dataset",
		Example:       usageExamples,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("expected one evaluation parameter, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Evaluation.Parameter = args[0]
			}
			return run(cfg, stdout, stderr)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&flags.Learner, "learner", "L", "", "learning algorithm: "+strings.Join(learners.Names(), ", "))
	f.StringVarP(&flags.ARFF, "arff", "A", "", "ARFF dataset file")
	f.StringVarP(&flags.Evaluation.Method, "eval", "E", "", "evaluation method: training, static, random, cross")
	f.BoolVarP(&flags.Verbose, "verbose", "V", false, "print the confusion matrix")
	f.BoolVarP(&flags.Normalize, "normalize", "N", false, "scale continuous features to [0, 1]")
	f.Uint64VarP(&flags.Seed, "seed", "S", 0, "random seed; 0 seeds from the clock")
	f.IntVar(&flags.Repetitions, "repetitions", 1, "cross-validation repetitions")
	f.StringVar(&configPath, "config", "", "YAML run file; flags override its values")
	f.StringVar(&flags.Log.Level, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&flags.Log.File, "log-file", "", "write JSON logs to a rotating file")
	f.StringVar(&flags.History, "history", "", "record the run in a SQLite database")
	f.StringVar(&flags.Plot, "plot", "", "draw fold scores to an image file (.png, .svg, .pdf)")
	return cmd
}

// resolveConfig loads the run file, if any, and applies the flags that
// were set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, path string, set *Config) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"learner":     func() { cfg.Learner = set.Learner },
		"arff":        func() { cfg.ARFF = set.ARFF },
		"eval":        func() { cfg.Evaluation.Method = set.Evaluation.Method },
		"verbose":     func() { cfg.Verbose = set.Verbose },
		"normalize":   func() { cfg.Normalize = set.Normalize },
		"seed":        func() { cfg.Seed = set.Seed },
		"repetitions": func() { cfg.Repetitions = set.Repetitions },
		"log-level":   func() { cfg.Log.Level = set.Log.Level },
		"log-file":    func() { cfg.Log.File = set.Log.File },
		"history":     func() { cfg.History = set.History },
		"plot":        func() { cfg.Plot = set.Plot },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg, nil
}

func run(cfg *Config, stdout, stderr io.Writer) error {
	if cfg.Learner == "" {
		return usageErrorf("a learner is required (-L)")
	}
	if cfg.ARFF == "" {
		return usageErrorf("a dataset is required (-A)")
	}
	protocol, err := evaluation.ParseProtocol(cfg.Evaluation.Method)
	if err != nil {
		return &usageError{err: err}
	}
	opts, testPath, err := protocolOptions(protocol, cfg.Evaluation.Parameter)
	if err != nil {
		return err
	}

	closer, err := log.SetupLogger(log.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Writer:     stderr,
	})
	if err != nil {
		return &usageError{err: err}
	}
	defer closer.Close()
	logger := log.GetLoggerWithName("cli")

	kind, err := learners.Lookup(cfg.Learner)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	logger.Info("Starting evaluation",
		log.LearnerKey, kind.String(),
		log.ProtocolKey, protocol.String(),
		log.DatasetKey, cfg.ARFF,
		log.RandomSeedKey, seed,
	)

	data, err := relation.LoadARFF(cfg.ARFF)
	if err != nil {
		return err
	}
	if testPath != "" {
		test, err := relation.LoadARFF(testPath)
		if err != nil {
			return err
		}
		opts = append(opts, evaluation.WithTestSet(test), evaluation.WithTestSetName(testPath))
	}

	learner, err := learners.New(kind, rng)
	if err != nil {
		return err
	}

	sinks := evaluation.MultiSink{
		report.NewTextSink(stdout, cfg.Verbose, seed),
		report.NewLogSink(nil),
	}
	if cfg.History != "" {
		history, err := report.OpenHistory(cfg.History, report.RunMeta{Seed: seed})
		if err != nil {
			return err
		}
		defer history.Close()
		sinks = append(sinks, history)
	}
	if cfg.Plot != "" {
		sinks = append(sinks, report.NewFoldChart(cfg.Plot))
	}

	opts = append(opts,
		evaluation.WithRand(rng),
		evaluation.WithNormalization(cfg.Normalize),
		evaluation.WithConfusionMatrix(cfg.Verbose),
		evaluation.WithRepetitions(cfg.Repetitions),
		evaluation.WithDatasetName(cfg.ARFF),
		evaluation.WithSink(sinks),
	)
	r, err := evaluation.Evaluate(protocol, data, learner, opts...)
	if err != nil {
		return err
	}
	logResult(logger, r)
	return nil
}

// protocolOptions interprets the positional evaluation parameter. For the
// static protocol it returns the test set path instead of an option.
func protocolOptions(p evaluation.Protocol, param string) ([]evaluation.Option, string, error) {
	switch p {
	case evaluation.Training:
		if param != "" {
			return nil, "", usageErrorf("training takes no parameter, got %q", param)
		}
	case evaluation.Static:
		if param == "" {
			return nil, "", usageErrorf("static requires a test set file")
		}
		return nil, param, nil
	case evaluation.Random:
		fraction, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return nil, "", usageErrorf("random requires the fraction used for training, got %q", param)
		}
		return []evaluation.Option{evaluation.WithTrainFraction(fraction)}, "", nil
	case evaluation.Cross:
		folds, err := strconv.Atoi(param)
		if err != nil {
			return nil, "", usageErrorf("cross requires the number of folds, got %q", param)
		}
		return []evaluation.Option{evaluation.WithFolds(folds)}, "", nil
	}
	return nil, "", nil
}

func logResult(logger log.Logger, r *evaluation.Report) {
	score := r.TrainingScore
	switch r.Protocol {
	case evaluation.Static, evaluation.Random:
		score = r.TestScore
	case evaluation.Cross:
		score = r.MeanScore
	}
	if score == nil {
		return
	}
	key := log.AccuracyKey
	if score.Metric == evaluation.MetricRMSE {
		key = log.RMSEKey
	}
	logger.Info("Evaluation finished", key, score.Value, log.DurationSecondsKey, r.TrainTime.Seconds())
}

func logFailure(err error) {
	fields := []any{err, log.ErrorTypeKey, errorType(err)}
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		fields = append(fields, log.LineKey, pe.Line)
	}
	log.GetLoggerWithName("cli").Error("Run failed", fields...)
}

func errorType(err error) string {
	var (
		parse   *errors.ParseError
		learner *errors.UnrecognizedLearnerError
		panicky *errors.PanicError
		modelE  *errors.ModelError
	)
	switch {
	case errors.As(err, &parse):
		return "ParseError"
	case errors.As(err, &learner):
		return "UnrecognizedLearnerError"
	case errors.IsPrecondition(err):
		return "PreconditionViolation"
	case errors.As(err, &panicky):
		return "PanicError"
	case errors.As(err, &modelE):
		return "ModelError"
	default:
		return "InternalError"
	}
}
