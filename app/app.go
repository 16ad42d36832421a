// Package app runs the interactive tracking loop.
//
// The loop is single threaded: each iteration reads one frame, updates every
// active object, forwards the annotated frame to the recorder, draws the
// status, and polls one key with a short wait. That wait is the only
// suspension point and also throttles the frame rate.
package app

import (
	"image"
	"log"

	"github.com/pkg/errors"

	"motiontracker/input"
	"motiontracker/recording"
	"motiontracker/tracking"
	"motiontracker/types"
)

// FrameSource yields frames until the stream ends
type FrameSource[F any] interface {
	Next() (F, bool)
	Close() error
}

// Display draws on frames, shows them, polls keys and lets the user select a region
type Display[F any] interface {
	DrawOverlays(frame F, overlays []types.Overlay)
	DrawStatus(frame F, status types.Status)
	Show(frame F)
	WaitKey(delayMs int) int
	SelectRegion(frame F) image.Rectangle
	Close() error
}

// Loop wires the collaborators of one session. The loop owns the session
// and the recorder for its whole lifetime.
type Loop[F any] struct {
	Source    FrameSource[F]
	Display   Display[F]
	Session   *tracking.Session[F]
	Recorder  *recording.Controller[F]
	FrameSize func(F) image.Point
	Debug     *types.DebugLogger
	PollDelay int
}

// Result is what is left of a session once the loop has ended
type Result struct {
	History []*types.TrackedObject
	Frames  int
	Reason  string
}

// Run processes frames until the user quits or the stream ends, then shuts
// down in order: recording, frame acquisition, display, trackers.
// The history in the result is valid even when an error is returned.
func (l *Loop[F]) Run() (Result, error) {
	reason := "end of stream"

	for {
		frame, ok := l.Source.Next()
		if !ok {
			log.Println("End of stream")
			break
		}

		if l.step(frame) {
			reason = "quit"
			break
		}
	}

	err := l.shutdown()
	return Result{
		History: l.Session.History(),
		Frames:  l.Session.FrameCount(),
		Reason:  reason,
	}, err
}

// step runs one iteration and reports whether the user asked to quit
func (l *Loop[F]) step(frame F) bool {
	overlays := l.Session.AdvanceFrame(frame)
	l.Display.DrawOverlays(frame, overlays)

	if err := l.Recorder.WriteFrame(frame); err != nil {
		log.Printf("Recording error: %v", err)
	}

	l.Display.DrawStatus(frame, l.status())
	l.Display.Show(frame)

	cmd := input.ParseKey(l.Display.WaitKey(l.PollDelay))
	return l.handle(cmd, frame)
}

func (l *Loop[F]) handle(cmd input.Command, frame F) bool {
	switch cmd {
	case input.AddObject:
		region := l.Display.SelectRegion(frame)
		if _, ok := l.Session.AddObject(frame, region); !ok {
			log.Println("No object selected")
		}

	case input.ClearActive:
		l.Session.ClearActive()
		log.Println("Cleared all active objects")

	case input.RecordStart:
		if err := l.Recorder.Start(l.FrameSize(frame)); err != nil {
			log.Printf("Recording error: %v", err)
		}

	case input.RecordStop:
		if err := l.Recorder.Stop(); err != nil {
			log.Printf("Recording error: %v", err)
		}

	case input.ToggleDebug:
		if l.Debug != nil {
			if l.Debug.Toggle() {
				log.Println("Debug mode enabled - logs will appear on screen")
			} else {
				log.Println("Debug mode disabled")
			}
		}

	case input.Quit:
		return true
	}

	return false
}

func (l *Loop[F]) status() types.Status {
	st := types.Status{
		Recording:         l.Recorder.IsRecording(),
		RecordingDuration: l.Recorder.Duration(),
		ActiveCount:       len(l.Session.Active()),
		TotalCount:        len(l.Session.History()),
		FrameCount:        l.Session.FrameCount(),
	}
	if l.Debug != nil && l.Debug.Enabled() {
		st.DebugMode = true
		st.DebugLogs = l.Debug.GetLogs()
	}
	return st
}

func (l *Loop[F]) shutdown() error {
	var firstErr error
	keep := func(err error, what string) {
		if err == nil {
			return
		}
		log.Printf("Error closing %s: %v", what, err)
		if firstErr == nil {
			firstErr = errors.Wrapf(err, "close %s", what)
		}
	}

	keep(l.Recorder.Stop(), "recording")
	keep(l.Source.Close(), "frame source")
	keep(l.Display.Close(), "display")
	keep(l.Session.Close(), "trackers")

	return firstErr
}
