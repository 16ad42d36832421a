package recording

import (
	"image"
	"log"
	"time"

	"github.com/pkg/errors"
)

// Writer receives annotated frames while a recording is active.
// *gocv.VideoWriter satisfies Writer[gocv.Mat].
type Writer[F any] interface {
	Write(frame F) error
	Close() error
}

// Opener creates a writer for path sized to the frame dimensions
type Opener[F any] func(path string, size image.Point) (Writer[F], error)

// Controller is the Idle/Recording state machine around one video writer
type Controller[F any] struct {
	path          string
	open          Opener[F]
	writer        Writer[F]
	startTime     time.Time
	framesWritten int
	now           func() time.Time
}

// NewController creates an idle controller that records to path
func NewController[F any](path string, open func(path string, size image.Point) (Writer[F], error)) *Controller[F] {
	return &Controller[F]{
		path: path,
		open: open,
		now:  time.Now,
	}
}

// IsRecording reports whether a writer is open
func (c *Controller[F]) IsRecording() bool {
	return c.writer != nil
}

// Path returns the output file of the recording
func (c *Controller[F]) Path() string {
	return c.path
}

// FramesWritten returns the number of frames written by the current or last recording
func (c *Controller[F]) FramesWritten() int {
	return c.framesWritten
}

// Duration returns the duration of the current recording
func (c *Controller[F]) Duration() time.Duration {
	if !c.IsRecording() {
		return 0
	}
	return c.now().Sub(c.startTime)
}

// Start opens a writer sized to the current frame. Starting twice is a no-op.
// When the writer cannot be opened the controller stays idle.
func (c *Controller[F]) Start(size image.Point) error {
	if c.IsRecording() {
		return nil
	}

	w, err := c.open(c.path, size)
	if err != nil {
		return errors.Wrapf(err, "open video writer %s", c.path)
	}

	c.writer = w
	c.framesWritten = 0
	c.startTime = c.now()
	log.Printf("Recording started: %s (%dx%d)", c.path, size.X, size.Y)
	return nil
}

// Stop closes the writer. Stopping while idle is a no-op.
// The controller is idle afterwards even if closing failed.
func (c *Controller[F]) Stop() error {
	if !c.IsRecording() {
		return nil
	}

	w := c.writer
	c.writer = nil
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close video writer")
	}

	log.Printf("Recording stopped and saved as %s (%d frames)", c.path, c.framesWritten)
	return nil
}

// WriteFrame forwards frame to the writer if recording is active.
// A write failure ends the recording; the session itself carries on.
func (c *Controller[F]) WriteFrame(frame F) error {
	if !c.IsRecording() {
		return nil
	}

	if err := c.writer.Write(frame); err != nil {
		werr := errors.Wrapf(err, "write frame %d", c.framesWritten+1)
		if cerr := c.Stop(); cerr != nil {
			log.Printf("Recording error: %v", cerr)
		}
		return werr
	}

	c.framesWritten++
	return nil
}
