// Package mlsys is a small machine learning workbench: it loads ARFF
// datasets into a relation matrix, trains a learner on them and measures
// the learner with one of four evaluation protocols.
//
// # Packages
//
//   - core/relation: the matrix, attribute dictionaries, ARFF reader and writer
//   - core/model: the Learner contract shared by every algorithm
//   - baseline, linear: learners
//   - learners: name to constructor registry
//   - evaluation: training, static, random and cross-validation protocols
//   - report: console, log, SQLite history and chart output for a run
//   - cmd/mlsys: the command line
//
// # Quick Start
//
//	data, err := relation.LoadARFF("iris.arff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := evaluation.Evaluate(evaluation.Cross, data, baseline.New(),
//	    evaluation.WithFolds(10),
//	    evaluation.WithSink(report.NewTextSink(os.Stdout, false, 0)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.MeanScore.Value)
//
// The same run from the command line:
//
//	mlsys -L baseline -A iris.arff -E cross 10
//
// # Error Handling
//
// Errors carry stack traces through github.com/cockroachdb/errors. ARFF
// problems are *errors.ParseError with the offending line; misuse of the
// API is a precondition error (errors.IsPrecondition). Recoverable oddities
// such as a column with no spread are reported through errors.Warn, which
// the log package routes to zerolog.
package mlsys
