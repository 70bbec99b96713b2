package metrics

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// ThresholdCurve builds a plot of precision, recall and accuracy against the
// decision threshold from the output of ThresholdSweep.
func ThresholdCurve(points []*ConfusionStats) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.NewValueError("ThresholdCurve", "no sweep points")
	}

	precision := make(plotter.XYs, len(points))
	recall := make(plotter.XYs, len(points))
	accuracy := make(plotter.XYs, len(points))
	for i, s := range points {
		precision[i] = plotter.XY{X: s.Threshold, Y: s.Precision}
		recall[i] = plotter.XY{X: s.Threshold, Y: s.Recall}
		accuracy[i] = plotter.XY{X: s.Threshold, Y: s.Accuracy}
	}

	p := plot.New()
	p.Title.Text = "Classifier metrics by threshold"
	p.X.Label.Text = "threshold"
	p.Y.Label.Text = "score"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	if err := plotutil.AddLinePoints(p,
		"precision", precision,
		"recall", recall,
		"accuracy", accuracy,
	); err != nil {
		return nil, errors.Wrap(err, "ThresholdCurve")
	}
	return p, nil
}

// PlotThresholdCurve renders ThresholdCurve to path. The image format follows
// the file extension (png, svg, pdf, ...).
func PlotThresholdCurve(points []*ConfusionStats, path string) error {
	p, err := ThresholdCurve(points)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving threshold curve to %s", path)
	}
	return nil
}
