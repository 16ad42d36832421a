package recording

import (
	"image"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	frames   []int
	closed   int
	failOn   int
	closeErr error
}

func (w *fakeWriter) Write(frame int) error {
	if w.failOn > 0 && len(w.frames)+1 == w.failOn {
		return errors.New("disk full")
	}
	w.frames = append(w.frames, frame)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed++
	return w.closeErr
}

type fakeOpener struct {
	writers  []*fakeWriter
	sizes    []image.Point
	paths    []string
	err      error
	template fakeWriter
}

func (o *fakeOpener) open(path string, size image.Point) (Writer[int], error) {
	if o.err != nil {
		return nil, o.err
	}
	w := &fakeWriter{failOn: o.template.failOn, closeErr: o.template.closeErr}
	o.writers = append(o.writers, w)
	o.sizes = append(o.sizes, size)
	o.paths = append(o.paths, path)
	return w, nil
}

func TestControllerRecordsFramesBetweenStartAndStop(t *testing.T) {
	o := &fakeOpener{}
	c := NewController("out.mp4", o.open)
	assert.False(t, c.IsRecording())

	require.NoError(t, c.WriteFrame(0))

	require.NoError(t, c.Start(image.Pt(900, 675)))
	assert.True(t, c.IsRecording())
	for f := 1; f <= 5; f++ {
		require.NoError(t, c.WriteFrame(f))
	}
	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
	require.NoError(t, c.WriteFrame(6))

	require.Len(t, o.writers, 1)
	w := o.writers[0]
	assert.Equal(t, []int{1, 2, 3, 4, 5}, w.frames)
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, 5, c.FramesWritten())
	assert.Equal(t, []image.Point{{900, 675}}, o.sizes)
	assert.Equal(t, []string{"out.mp4"}, o.paths)
	assert.False(t, c.IsRecording())
}

func TestControllerStartWhileRecordingIsNoOp(t *testing.T) {
	o := &fakeOpener{}
	c := NewController("out.mp4", o.open)

	require.NoError(t, c.Start(image.Pt(10, 10)))
	require.NoError(t, c.Start(image.Pt(20, 20)))
	assert.Len(t, o.writers, 1)
	assert.Equal(t, []image.Point{{10, 10}}, o.sizes)
}

func TestControllerOpenFailureStaysIdle(t *testing.T) {
	o := &fakeOpener{err: errors.New("no codec")}
	c := NewController("out.mp4", o.open)

	err := c.Start(image.Pt(10, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no codec")
	assert.False(t, c.IsRecording())
	require.NoError(t, c.WriteFrame(1))
}

func TestControllerWriteFailureFallsBackToIdle(t *testing.T) {
	o := &fakeOpener{template: fakeWriter{failOn: 3}}
	c := NewController("out.mp4", o.open)
	require.NoError(t, c.Start(image.Pt(10, 10)))

	require.NoError(t, c.WriteFrame(1))
	require.NoError(t, c.WriteFrame(2))
	require.Error(t, c.WriteFrame(3))

	assert.False(t, c.IsRecording())
	assert.Equal(t, 1, o.writers[0].closed)
	require.NoError(t, c.WriteFrame(4))
	assert.Equal(t, []int{1, 2}, o.writers[0].frames)

	require.NoError(t, c.Start(image.Pt(10, 10)))
	assert.Len(t, o.writers, 2)
}

func TestControllerCloseFailureStillStops(t *testing.T) {
	o := &fakeOpener{template: fakeWriter{closeErr: errors.New("flush failed")}}
	c := NewController("out.mp4", o.open)
	require.NoError(t, c.Start(image.Pt(10, 10)))

	require.Error(t, c.Stop())
	assert.False(t, c.IsRecording())
	require.NoError(t, c.Stop())
	assert.Equal(t, 1, o.writers[0].closed)
}

func TestControllerDuration(t *testing.T) {
	o := &fakeOpener{}
	c := NewController("out.mp4", o.open)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	assert.Zero(t, c.Duration())
	require.NoError(t, c.Start(image.Pt(10, 10)))
	clock = clock.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, c.Duration())

	require.NoError(t, c.Stop())
	assert.False(t, c.IsRecording())
	assert.Zero(t, c.Duration())
}
