package tracking

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/viewer"
)

// Store is a live, mutable copy of the tracking state that session callbacks
// update from their own goroutine. CurrentFrame hands out deep copies, so a
// resolution running on a snapshot never observes later mutation.
type Store struct {
	mu       sync.RWMutex
	frame    Frame
	hasFrame bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// CurrentFrame implements Session
func (s *Store) CurrentFrame() (*Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasFrame {
		return nil, false
	}
	return s.frame.Clone(), true
}

// SetCamera records a new camera pose and timestamp
func (s *Store) SetCamera(ts time.Duration, camera viewer.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame.Timestamp = ts
	s.frame.Camera = &camera
	s.hasFrame = true
}

// SetTrackingState records the tracking quality
func (s *Store) SetTrackingState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Tracking = state
}

// SetFeatures replaces the feature cloud
func (s *Store) SetFeatures(points []geometry.Vector3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Features = append(s.frame.Features[:0:0], points...)
}

// SetLight records the ambient light estimate
func (s *Store) SetLight(light LightEstimate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Light = &light
}

// UpsertPlane adds a new anchor or replaces the one with the same identity
func (s *Store) UpsertPlane(anchor PlaneAnchor) error {
	if err := anchor.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.frame.Planes {
		if s.frame.Planes[i].ID == anchor.ID {
			s.frame.Planes[i] = anchor
			return nil
		}
	}
	s.frame.Planes = append(s.frame.Planes, anchor)
	return nil
}

// RemovePlane drops the anchor with the given identity.
// It reports whether an anchor was removed.
func (s *Store) RemovePlane(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.frame.Planes {
		if s.frame.Planes[i].ID == id {
			s.frame.Planes = append(s.frame.Planes[:i:i], s.frame.Planes[i+1:]...)
			return true
		}
	}
	return false
}
