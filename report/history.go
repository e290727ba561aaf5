package report

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YuminosukeSato/mlsys/evaluation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS evaluation_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT,
    learner VARCHAR(50),
    protocol VARCHAR(20),
    metric VARCHAR(20),
    instances INTEGER,
    attributes INTEGER,
    seed INTEGER,
    training_score REAL,
    test_score REAL,
    mean_score REAL,
    train_seconds REAL,
    started_at DATETIME
);
CREATE TABLE IF NOT EXISTS fold_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES evaluation_log(id),
    repetition INTEGER,
    fold INTEGER,
    train_rows INTEGER,
    test_rows INTEGER,
    score REAL,
    train_seconds REAL
);`

// RunMeta is stored with every run recorded by a History.
type RunMeta struct {
	Seed uint64
}

// RunRecord is one row of the evaluation log. Scores that were not
// measured are nil.
type RunRecord struct {
	ID            int64
	Dataset       string
	Learner       string
	Protocol      string
	Metric        string
	Instances     int
	Attributes    int
	Seed          uint64
	TrainingScore *float64
	TestScore     *float64
	MeanScore     *float64
	TrainTime     time.Duration
	StartedAt     time.Time
}

// History records evaluation runs in a SQLite database.
type History struct {
	db    *sql.DB
	meta  RunMeta
	info  evaluation.RunInfo
	start time.Time
	folds []evaluation.FoldResult
}

var _ evaluation.Sink = (*History)(nil)

// OpenHistory opens or creates the database at path.
func OpenHistory(path string, meta RunMeta) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "report: open history %s", path)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "report: create history tables")
	}
	return &History{db: db, meta: meta}, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// Begin implements evaluation.Sink.
func (h *History) Begin(info evaluation.RunInfo) error {
	h.info = info
	h.start = time.Now()
	h.folds = h.folds[:0]
	return nil
}

// Fold implements evaluation.Sink.
func (h *History) Fold(r evaluation.FoldResult) error {
	h.folds = append(h.folds, r)
	return nil
}

// End writes the run and its folds in one transaction.
func (h *History) End(r *evaluation.Report) error {
	tx, err := h.db.Begin()
	if err != nil {
		return errors.Wrap(err, "report: begin history transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO evaluation_log
        (dataset, learner, protocol, metric, instances, attributes, seed,
         training_score, test_score, mean_score, train_seconds, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.info.Dataset, r.Learner, r.Protocol.String(), string(r.Metric),
		r.Instances, r.Attributes, int64(h.meta.Seed),
		nullScore(r.TrainingScore), nullScore(r.TestScore), nullScore(r.MeanScore),
		r.TrainTime.Seconds(), h.start,
	)
	if err != nil {
		return errors.Wrap(err, "report: insert run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "report: run id")
	}

	for _, f := range h.folds {
		if _, err := tx.Exec(`INSERT INTO fold_log
            (run_id, repetition, fold, train_rows, test_rows, score, train_seconds)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, f.Repetition, f.Fold, f.TrainRows, f.TestRows,
			nullScore(f.Score), f.TrainTime.Seconds(),
		); err != nil {
			return errors.Wrap(err, "report: insert fold")
		}
	}
	return errors.Wrap(tx.Commit(), "report: commit history")
}

// Runs returns up to limit recorded runs, newest first. A limit of zero
// or less returns every run.
func (h *History) Runs(limit int) ([]RunRecord, error) {
	query := `SELECT id, dataset, learner, protocol, metric, instances, attributes, seed,
        training_score, test_score, mean_score, train_seconds, started_at
        FROM evaluation_log ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "report: query runs")
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec                  RunRecord
			seed                 int64
			training, test, mean sql.NullFloat64
			trainSeconds         float64
		)
		if err := rows.Scan(&rec.ID, &rec.Dataset, &rec.Learner, &rec.Protocol, &rec.Metric,
			&rec.Instances, &rec.Attributes, &seed, &training, &test, &mean,
			&trainSeconds, &rec.StartedAt); err != nil {
			return nil, errors.Wrap(err, "report: scan run")
		}
		rec.Seed = uint64(seed)
		rec.TrainingScore = scorePtr(training)
		rec.TestScore = scorePtr(test)
		rec.MeanScore = scorePtr(mean)
		rec.TrainTime = time.Duration(trainSeconds * float64(time.Second))
		out = append(out, rec)
	}
	return out, errors.Wrap(rows.Err(), "report: iterate runs")
}

// Folds returns the fold results recorded for run id, in run order.
func (h *History) Folds(runID int64) ([]evaluation.FoldResult, error) {
	rows, err := h.db.Query(`SELECT f.repetition, f.fold, f.train_rows, f.test_rows, f.score, f.train_seconds, r.metric
        FROM fold_log f JOIN evaluation_log r ON r.id = f.run_id
        WHERE f.run_id = ? ORDER BY f.id`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "report: query folds")
	}
	defer rows.Close()

	var out []evaluation.FoldResult
	for rows.Next() {
		var (
			f            evaluation.FoldResult
			score        sql.NullFloat64
			trainSeconds float64
			metric       string
		)
		if err := rows.Scan(&f.Repetition, &f.Fold, &f.TrainRows, &f.TestRows, &score, &trainSeconds, &metric); err != nil {
			return nil, errors.Wrap(err, "report: scan fold")
		}
		if score.Valid {
			f.Score = &evaluation.Score{Metric: evaluation.Metric(metric), Value: score.Float64}
		}
		f.TrainTime = time.Duration(trainSeconds * float64(time.Second))
		out = append(out, f)
	}
	return out, errors.Wrap(rows.Err(), "report: iterate folds")
}

func nullScore(s *evaluation.Score) sql.NullFloat64 {
	if s == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: s.Value, Valid: true}
}

func scorePtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
