package capture

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

type translation struct {
	dx, dy float64
}

// stabilizeFrame cancels global camera shake by shifting frame against the
// median optical-flow translation from the previous frame.
func stabilizeFrame(frame *gocv.Mat, prevGray *gocv.Mat) {
	gray := gocv.NewMat()
	gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	defer func() {
		_ = prevGray.Close()
		*prevGray = gray
	}()

	if prevGray.Empty() {
		return
	}

	prevPts := gocv.NewMat()
	defer prevPts.Close()
	gocv.GoodFeaturesToTrack(*prevGray, &prevPts, 200, 0.01, 30)
	if prevPts.Empty() {
		return
	}

	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	flowErr := gocv.NewMat()
	defer flowErr.Close()
	gocv.CalcOpticalFlowPyrLK(*prevGray, gray, prevPts, nextPts, &status, &flowErr)

	var moves []translation
	for i := 0; i < status.Rows(); i++ {
		if status.GetUCharAt(i, 0) == 1 {
			dx := nextPts.GetFloatAt(i, 0) - prevPts.GetFloatAt(i, 0)
			dy := nextPts.GetFloatAt(i, 1) - prevPts.GetFloatAt(i, 1)
			moves = append(moves, translation{dx: float64(dx), dy: float64(dy)})
		}
	}
	if len(moves) == 0 {
		return
	}

	dx, dy := medianTranslation(moves)

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	m.SetDoubleAt(0, 0, 1)
	m.SetDoubleAt(0, 1, 0)
	m.SetDoubleAt(0, 2, -dx)
	m.SetDoubleAt(1, 0, 0)
	m.SetDoubleAt(1, 1, 1)
	m.SetDoubleAt(1, 2, -dy)

	shifted := gocv.NewMat()
	defer shifted.Close()
	gocv.WarpAffine(*frame, &shifted, m, image.Pt(frame.Cols(), frame.Rows()))
	shifted.CopyTo(frame)
}

func medianTranslation(moves []translation) (float64, float64) {
	if len(moves) == 0 {
		return 0, 0
	}
	xs := make([]float64, len(moves))
	ys := make([]float64, len(moves))
	for i, m := range moves {
		xs[i] = m.dx
		ys[i] = m.dy
	}
	return median(xs), median(ys)
}

func median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
