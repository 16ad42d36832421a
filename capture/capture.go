package capture

import (
	"image"
	"log"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"motiontracker/types"
	"motiontracker/utils"
)

// Source reads frames from a camera or a video file and preprocesses them.
// The returned Mat is reused between calls; callers must not keep it.
type Source struct {
	Name     string
	config   types.CaptureConfig
	capture  *gocv.VideoCapture
	raw      gocv.Mat
	frame    gocv.Mat
	prevGray gocv.Mat
}

// Open opens device, which is either a path to a video file or a camera ID
func Open(device string, config types.CaptureConfig) (*Source, error) {
	var capture *gocv.VideoCapture
	var err error
	if _, statErr := os.Stat(device); statErr == nil {
		capture, err = gocv.VideoCaptureFile(device)
	} else {
		id, idErr := parseCameraID(device)
		if idErr != nil {
			return nil, idErr
		}
		capture, err = gocv.VideoCaptureDevice(id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open capture device %s", device)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, errors.Errorf("capture device %s is not available", device)
	}

	log.Printf("Capture opened: %s", device)
	return &Source{
		Name:     device,
		config:   config,
		capture:  capture,
		raw:      gocv.NewMat(),
		frame:    gocv.NewMat(),
		prevGray: gocv.NewMat(),
	}, nil
}

// Next reads and preprocesses the next frame. It returns false at end of stream.
func (s *Source) Next() (gocv.Mat, bool) {
	if ok := s.capture.Read(&s.raw); !ok || s.raw.Empty() {
		return s.frame, false
	}

	size := utils.ScaledSize(s.raw.Cols(), s.raw.Rows(), s.config.FrameWidth)
	if size.X != s.raw.Cols() || size.Y != s.raw.Rows() {
		gocv.Resize(s.raw, &s.frame, size, 0, 0, gocv.InterpolationLinear)
	} else {
		s.raw.CopyTo(&s.frame)
	}

	if s.config.Mirror {
		gocv.Flip(s.frame, &s.frame, 1)
	}

	if s.config.Stabilize {
		stabilizeFrame(&s.frame, &s.prevGray)
	}

	return s.frame, true
}

// Close stops acquisition and releases the frame buffers
func (s *Source) Close() error {
	err := s.capture.Close()
	_ = s.raw.Close()
	_ = s.frame.Close()
	_ = s.prevGray.Close()
	if err != nil {
		return errors.Wrap(err, "close capture")
	}
	return nil
}

// FrameSize returns the width and height of a frame
func FrameSize(frame gocv.Mat) image.Point {
	return image.Pt(frame.Cols(), frame.Rows())
}

// parseCameraID accepts a non-negative camera index
func parseCameraID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, errors.Errorf("%q is neither a video file nor a camera ID", arg)
	}
	return id, nil
}
