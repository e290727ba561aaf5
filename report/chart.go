package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/mlsys/evaluation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// FoldChart renders the per-fold scores of a cross-validation run as a bar
// chart. The image format follows the file extension (.png, .svg, .pdf, ...).
// Runs without folds write nothing.
type FoldChart struct {
	path string
	info evaluation.RunInfo
}

var _ evaluation.Sink = (*FoldChart)(nil)

// NewFoldChart returns a chart sink writing to path.
func NewFoldChart(path string) *FoldChart {
	return &FoldChart{path: path}
}

// Begin implements evaluation.Sink.
func (c *FoldChart) Begin(info evaluation.RunInfo) error {
	c.info = info
	return nil
}

// Fold implements evaluation.Sink.
func (c *FoldChart) Fold(evaluation.FoldResult) error { return nil }

// End implements evaluation.Sink.
func (c *FoldChart) End(r *evaluation.Report) error {
	if len(r.Folds) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %d-fold cross-validation", r.Learner, c.info.Folds)
	p.X.Label.Text = "fold"
	p.Y.Label.Text = string(r.Metric)

	values := make(plotter.Values, len(r.Folds))
	names := make([]string, len(r.Folds))
	for i, f := range r.Folds {
		if f.Score != nil {
			values[i] = f.Score.Value
		}
		names[i] = fmt.Sprintf("%d/%d", f.Repetition, f.Fold)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "report: fold chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	if r.MeanScore != nil {
		mean, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: r.MeanScore.Value},
			{X: float64(len(values)) - 0.5, Y: r.MeanScore.Value},
		})
		if err != nil {
			return errors.Wrap(err, "report: fold chart")
		}
		mean.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(mean)
		p.Legend.Add("mean", mean)
	}

	width := vg.Length(len(values))*vg.Points(18) + 2*vg.Inch
	if err := p.Save(width, 4*vg.Inch, c.path); err != nil {
		return errors.Wrapf(err, "report: save fold chart %s", c.path)
	}
	return nil
}
