package tracking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/viewer"
)

// State is the quality of world tracking reported with each frame
type State int

const (
	// NotAvailable means there is no usable camera pose
	NotAvailable State = iota
	// Limited means a pose exists but its quality is reduced
	Limited
	// Normal means tracking is fully working
	Normal
)

var stateNames = map[State]string{
	NotAvailable: "not_available",
	Limited:      "limited",
	Normal:       "normal",
}

// String returns the snake_case name used in recordings
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState parses a tracking state name
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return NotAvailable, fmt.Errorf("unknown tracking state %q", name)
}

// LightEstimate is the ambient light reported for a frame, in lumen.
// 1000 is a well lit environment.
type LightEstimate struct {
	AmbientIntensity float64
}

// Frame is an immutable snapshot of the tracking collaborator's output.
// Features and Planes must not be mutated while a query runs on the frame.
type Frame struct {
	Timestamp time.Duration
	Camera    *viewer.Camera
	Tracking  State
	Features  []geometry.Vector3
	Planes    []PlaneAnchor
	Light     *LightEstimate
}

// HitTestPlanes implements PlaneHitTester over the frame's plane snapshot
func (f *Frame) HitTestPlanes(ray geometry.Ray) (PlaneHit, bool) {
	var best PlaneHit
	found := false
	for _, anchor := range f.Planes {
		hit, ok := HitTestPlane(ray, anchor)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Plane looks up an anchor by identity
func (f *Frame) Plane(id uuid.UUID) (PlaneAnchor, bool) {
	for _, anchor := range f.Planes {
		if anchor.ID == id {
			return anchor, true
		}
	}
	return PlaneAnchor{}, false
}

// Clone returns a deep copy whose slices do not alias f's
func (f *Frame) Clone() *Frame {
	out := *f
	if f.Camera != nil {
		cam := *f.Camera
		out.Camera = &cam
	}
	if f.Light != nil {
		light := *f.Light
		out.Light = &light
	}
	out.Features = append([]geometry.Vector3(nil), f.Features...)
	out.Planes = append([]PlaneAnchor(nil), f.Planes...)
	return &out
}

// Session is the tracking collaborator as seen by the core
type Session interface {
	// CurrentFrame returns the latest snapshot, or false before the first frame
	CurrentFrame() (*Frame, bool)
}
