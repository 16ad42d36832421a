package export

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"motiontracker/stats"
)

const (
	plotTitle  = "Motion Paths of Tracked Objects"
	xAxisLabel = "X Position (pixels)"
	yAxisLabel = "Y Position (pixels)"
)

// NewTrajectoryPlot draws one line per trajectory with start and end labels.
// The Y axis is inverted so the plot matches image coordinates.
func NewTrajectoryPlot(trajectories []stats.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = xAxisLabel
	p.Y.Label.Text = yAxisLabel
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	for i, traj := range trajectories {
		pts := make(plotter.XYs, len(traj.Points))
		for j, pt := range traj.Points {
			pts[j] = plotter.XY{X: float64(pt.X), Y: float64(pt.Y)}
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "trajectory %d", traj.ID)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(0)

		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs: plotter.XYs{
				{X: float64(traj.Start.X), Y: float64(traj.Start.Y)},
				{X: float64(traj.End.X), Y: float64(traj.End.Y)},
			},
			Labels: []string{
				fmt.Sprintf("Start %d", traj.ID),
				fmt.Sprintf("End %d", traj.ID),
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "labels for trajectory %d", traj.ID)
		}

		p.Add(line, points, labels)
		p.Legend.Add(fmt.Sprintf("Object ID %d", traj.ID), line, points)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// SavePlotPNG renders the trajectories to an image file; the format follows the extension
func SavePlotPNG(path string, trajectories []stats.Trajectory) error {
	p, err := NewTrajectoryPlot(trajectories)
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 7*vg.Inch, path); err != nil {
		return errors.Wrap(err, "save trajectory plot")
	}
	return nil
}
