// Package stats reduces finished trajectories to distance and speed figures.
package stats

import (
	"image"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"motiontracker/types"
	"motiontracker/utils"
)

// Precision is the number of decimals kept in reported distances and speeds
const Precision = 2

// ObjectStats is the motion summary of one tracked object.
// TotalDistance is in pixels, AverageSpeed in pixels per frame.
type ObjectStats struct {
	ID            int
	Lifetime      int
	Samples       int
	TotalDistance float64
	AverageSpeed  float64
}

// Trajectory is the plottable path of an object with at least two positions
type Trajectory struct {
	ID     int
	Points []image.Point
	Start  image.Point
	End    image.Point
}

// Report is the outcome of a session
type Report struct {
	Objects      []ObjectStats
	Trajectories []Trajectory
}

// Compute builds one ObjectStats per object in history order, plus a
// Trajectory for every object that recorded more than one position.
func Compute(history []*types.TrackedObject) Report {
	report := Report{
		Objects: make([]ObjectStats, 0, len(history)),
	}

	for _, obj := range history {
		lifetime := obj.Lifetime()

		var total float64
		if len(obj.Positions) > 1 {
			total = PathLength(obj.Positions)

			points := make([]image.Point, len(obj.Positions))
			copy(points, obj.Positions)
			report.Trajectories = append(report.Trajectories, Trajectory{
				ID:     obj.ID,
				Points: points,
				Start:  points[0],
				End:    points[len(points)-1],
			})
		}

		var speed float64
		if lifetime > 0 {
			speed = total / float64(lifetime)
		}

		report.Objects = append(report.Objects, ObjectStats{
			ID:            obj.ID,
			Lifetime:      lifetime,
			Samples:       len(obj.Positions),
			TotalDistance: Round(total),
			AverageSpeed:  Round(speed),
		})
	}

	return report
}

// Round rounds x to Precision decimals. The exact binary value is rounded,
// so 0.175 (stored as 0.17499...) becomes 0.17.
func Round(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', Precision, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// PathLength sums the euclidean distances between consecutive points
func PathLength(points []image.Point) float64 {
	if len(points) < 2 {
		return 0
	}

	steps := make([]float64, len(points)-1)
	for i := range steps {
		steps[i] = utils.Distance(points[i], points[i+1])
	}
	return floats.Sum(steps)
}
