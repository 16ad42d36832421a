package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"motiontracker/stats"
)

// NewTrajectoryChart builds an interactive line chart with one series per
// trajectory, start/end mark points and an inverted Y axis.
func NewTrajectoryChart(trajectories []stats.Trajectory) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: plotTitle, Width: "1000px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: plotTitle, Subtitle: fmt.Sprintf("objects=%d", len(trajectories))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:         "value",
			Name:         xAxisLabel,
			NameLocation: "middle",
			NameGap:      25,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:         "value",
			Name:         yAxisLabel,
			NameLocation: "middle",
			NameGap:      40,
			Inverse:      opts.Bool(true),
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)

	for _, traj := range trajectories {
		data := make([]opts.LineData, 0, len(traj.Points))
		for _, pt := range traj.Points {
			data = append(data, opts.LineData{Value: []interface{}{pt.X, pt.Y}})
		}

		start := fmt.Sprintf("Start %d", traj.ID)
		end := fmt.Sprintf("End %d", traj.ID)
		line.AddSeries(fmt.Sprintf("Object ID %d", traj.ID), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
			charts.WithMarkPointNameCoordItemOpts(
				opts.MarkPointNameCoordItem{
					Name:       start,
					Coordinate: []interface{}{traj.Start.X, traj.Start.Y},
					Label:      &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
				},
				opts.MarkPointNameCoordItem{
					Name:       end,
					Coordinate: []interface{}{traj.End.X, traj.End.Y},
					Label:      &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
				},
			),
		)
	}

	return line
}

// RenderPlotHTML writes the interactive chart page to w
func RenderPlotHTML(w io.Writer, trajectories []stats.Trajectory) error {
	if err := NewTrajectoryChart(trajectories).Render(w); err != nil {
		return errors.Wrap(err, "render trajectory chart")
	}
	return nil
}

// SavePlotHTML writes the interactive chart page to path
func SavePlotHTML(path string, trajectories []stats.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chart file")
	}

	if err := RenderPlotHTML(f, trajectories); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close chart file")
}
