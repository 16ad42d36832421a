package tracking

import (
	"image"
	"log"

	"github.com/pkg/errors"

	"motiontracker/types"
	"motiontracker/utils"
)

// Capability is a stateful single-object tracker.
// gocv.Tracker satisfies Capability[gocv.Mat].
type Capability[F any] interface {
	Init(frame F, region image.Rectangle) bool
	Update(frame F) (image.Rectangle, bool)
	Close() error
}

// Factory creates a fresh Capability for every new object
type Factory[F any] func() Capability[F]

// entry pairs an object with the tracker instance it owns
type entry[F any] struct {
	object     *types.TrackedObject
	capability Capability[F]
}

// Session owns the frame counter, the object history and the active subset.
// It is driven by a single loop and is not safe for concurrent use.
type Session[F any] struct {
	newCapability Factory[F]
	frameCounter  int
	history       []*entry[F]
	active        []*entry[F]
}

// NewSession creates an empty session that builds trackers with factory
func NewSession[F any](factory func() Capability[F]) *Session[F] {
	return &Session[F]{newCapability: factory}
}

// AdvanceFrame processes one frame: every active object is updated against it.
// Objects whose tracker fails are deactivated for good. The returned overlays
// describe the boxes of the objects updated successfully, in activation order.
func (s *Session[F]) AdvanceFrame(frame F) []types.Overlay {
	s.frameCounter++

	snapshot := s.active
	next := make([]*entry[F], 0, len(snapshot))
	var overlays []types.Overlay

	for _, e := range snapshot {
		obj := e.object
		if !obj.Active {
			continue
		}

		box, ok := e.capability.Update(frame)
		if !ok {
			obj.Active = false
			log.Printf("Object %d lost at frame %d", obj.ID, s.frameCounter)
			continue
		}

		obj.Positions = append(obj.Positions, utils.Center(box))
		obj.LastFrame = s.frameCounter
		overlays = append(overlays, types.Overlay{ID: obj.ID, Box: box})
		next = append(next, e)
	}

	s.active = next
	return overlays
}

// AddObject starts tracking region on frame under the next free id.
// A degenerate region means nothing was selected and no object is created;
// neither is one created when the tracker refuses to initialize.
func (s *Session[F]) AddObject(frame F, region image.Rectangle) (*types.TrackedObject, bool) {
	if utils.IsDegenerate(region) {
		return nil, false
	}

	capability := s.newCapability()
	if !capability.Init(frame, region) {
		log.Printf("Failed to initialize tracker for region %v", region)
		if err := capability.Close(); err != nil {
			log.Printf("Error closing tracker: %v", err)
		}
		return nil, false
	}

	obj := &types.TrackedObject{
		ID:            len(s.history) + 1,
		CreationFrame: s.frameCounter,
		LastFrame:     s.frameCounter,
		Active:        true,
	}
	e := &entry[F]{object: obj, capability: capability}
	s.history = append(s.history, e)
	s.active = append(s.active, e)

	log.Printf("Object %d selected at frame %d: %dx%d at (%d,%d)", obj.ID, s.frameCounter, region.Dx(), region.Dy(), region.Min.X, region.Min.Y)
	return obj, true
}

// ClearActive stops updating every object currently tracked.
// History, active flags and recorded positions are left as they are.
func (s *Session[F]) ClearActive() {
	s.active = nil
}

// FrameCount returns the number of frames processed so far
func (s *Session[F]) FrameCount() int {
	return s.frameCounter
}

// History returns every object ever created, in creation order
func (s *Session[F]) History() []*types.TrackedObject {
	objects := make([]*types.TrackedObject, len(s.history))
	for i, e := range s.history {
		objects[i] = e.object
	}
	return objects
}

// Active returns the objects still receiving updates
func (s *Session[F]) Active() []*types.TrackedObject {
	objects := make([]*types.TrackedObject, len(s.active))
	for i, e := range s.active {
		objects[i] = e.object
	}
	return objects
}

// Close releases every tracker the session created
func (s *Session[F]) Close() error {
	var firstErr error
	for _, e := range s.history {
		if e.capability == nil {
			continue
		}
		if err := e.capability.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close tracker for object %d", e.object.ID)
		}
		e.capability = nil
	}
	s.active = nil
	return firstErr
}
