// Package opencv binds the tracking and recording interfaces to gocv.
package opencv

import (
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"motiontracker/tracking"
)

// NewTrackerFactory returns a factory for the named OpenCV tracker (csrt, kcf or mil)
func NewTrackerFactory(algorithm string) (tracking.Factory[gocv.Mat], error) {
	switch strings.ToLower(algorithm) {
	case "csrt":
		return func() tracking.Capability[gocv.Mat] { return contrib.NewTrackerCSRT() }, nil
	case "kcf":
		return func() tracking.Capability[gocv.Mat] { return contrib.NewTrackerKCF() }, nil
	case "mil":
		return func() tracking.Capability[gocv.Mat] { return gocv.NewTrackerMIL() }, nil
	default:
		return nil, errors.Errorf("unknown tracking algorithm %q", algorithm)
	}
}
