// Package focus drives the on-screen focus indicator: a square that rests
// closed on detected planes and opens up while hovering over anything else.
package focus

import (
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/logging"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
	"github.com/ungerik/go3d/float64/mat4"
)

// State is the indicator shape
type State int

const (
	// Open is the expanded, segmented square shown while hovering
	Open State = iota
	// Closed is the bounded square resting on a detected plane
	Closed
)

func (s State) String() string {
	if s == Closed {
		return "closed"
	}
	return "open"
}

// Transition describes what an Update did to the indicator state
type Transition struct {
	From, To State
	// Flash is set when the close animation includes the first-visit flash
	Flash bool
	// NewPlane is set when the anchor had not been seen before
	NewPlane bool
}

// Changed reports whether the state changed
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Pose is the smoothed placement of the indicator for draw time
type Pose struct {
	Position geometry.Vector3
	Yaw      float64
	Scale    float64
}

// Indicator is the focus indicator state machine.
//
// An Indicator is not safe for concurrent use; all calls must come from a
// single owner, see Controller.
type Indicator struct {
	opts     Options
	state    State
	hidden   bool
	closing  bool // holds the animating guard until the close phases finish
	smoother *Smoother
	visited  map[uuid.UUID]struct{}

	lastPosition      *geometry.Vector3
	lastPositionPlane *geometry.Vector3

	pose    Pose
	hasPose bool
	anim    animator
}

// NewIndicator creates an open, hidden indicator
func NewIndicator(opts Options) *Indicator {
	return &Indicator{
		opts:     opts,
		state:    Open,
		hidden:   true,
		smoother: NewSmoother(opts.HistorySize),
		visited:  make(map[uuid.UUID]struct{}),
		pose:     Pose{Scale: 1},
		anim:     newAnimator(openAppearance()),
	}
}

// Update moves the indicator to position. A plane anchor closes the square,
// flashing the first time that anchor is seen; no anchor opens it. The
// transform is recomputed from the smoothed position either way.
func (i *Indicator) Update(position geometry.Vector3, plane *tracking.PlaneAnchor, camera *viewer.Camera) Transition {
	p := position
	i.lastPosition = &p

	var tr Transition
	if plane != nil {
		_, seen := i.visited[plane.ID]
		if !seen {
			i.visited[plane.ID] = struct{}{}
		}
		tr = i.close(!seen)
		tr.NewPlane = !seen

		onPlane := position
		i.lastPositionPlane = &onPlane
	} else {
		tr = i.open()
	}

	i.updateTransform(position, camera)
	return tr
}

func (i *Indicator) updateTransform(position geometry.Vector3, camera *viewer.Camera) {
	avg := i.smoother.Add(position)
	i.pose.Position = avg
	i.hasPose = true

	var d float64
	if camera != nil {
		d = avg.Distance(camera.Position())
	}
	i.pose.Scale = i.opts.ScaleForDistance(d, camera != nil)

	if camera != nil {
		i.pose.Yaw = i.opts.Yaw(camera)
	}
}

func (i *Indicator) close(flash bool) Transition {
	tr := Transition{From: i.state, To: i.state}
	if i.state == Closed || i.closing {
		return tr
	}

	i.state = Closed
	i.closing = true
	i.anim.play(closeSteps(i.opts.AnimationDuration, flash)...)
	logging.Logger().Debug("focus indicator closing", "flash", flash)

	tr.To = Closed
	tr.Flash = flash
	return tr
}

func (i *Indicator) open() Transition {
	tr := Transition{From: i.state, To: i.state}
	if i.state == Open || i.closing {
		return tr
	}

	i.state = Open
	i.anim.play(openSteps(i.opts.AnimationDuration)...)
	logging.Logger().Debug("focus indicator opening")

	tr.To = Open
	return tr
}

// Advance runs the animation phases forward by dt
func (i *Indicator) Advance(dt time.Duration) {
	if i.anim.advance(dt) && i.closing {
		i.closing = false
	}
}

// Hide makes the indicator invisible. It is a no-op when already hidden.
func (i *Indicator) Hide() {
	if i.hidden {
		return
	}
	i.hidden = true
	logging.Logger().Debug("focus indicator hidden")
}

// Unhide makes the indicator visible. It is a no-op when already visible.
func (i *Indicator) Unhide() {
	if !i.hidden {
		return
	}
	i.hidden = false
	logging.Logger().Debug("focus indicator shown")
}

// SetAmbient sets the light-estimate alpha reported in Appearance
func (i *Indicator) SetAmbient(alpha float64) {
	i.anim.current.Ambient = alpha
	i.anim.from.Ambient = alpha
}

// State returns the current shape
func (i *Indicator) State() State {
	return i.state
}

// Animating reports whether a close animation holds the transition guard
func (i *Indicator) Animating() bool {
	return i.closing
}

// Hidden reports whether the indicator is hidden
func (i *Indicator) Hidden() bool {
	return i.hidden
}

// Visited reports whether the plane anchor has closed the indicator before
func (i *Indicator) Visited(id uuid.UUID) bool {
	_, ok := i.visited[id]
	return ok
}

// LastPosition returns the last raw position passed to Update, or nil
func (i *Indicator) LastPosition() *geometry.Vector3 {
	if i.lastPosition == nil {
		return nil
	}
	p := *i.lastPosition
	return &p
}

// LastPositionOnPlane returns the last raw position that came with a plane
// anchor, or nil
func (i *Indicator) LastPositionOnPlane() *geometry.Vector3 {
	if i.lastPositionPlane == nil {
		return nil
	}
	p := *i.lastPositionPlane
	return &p
}

// Pose returns the smoothed transform. It reports false before the first
// Update.
func (i *Indicator) Pose() (Pose, bool) {
	return i.pose, i.hasPose
}

// Matrix returns the pose as a column-major model matrix: scale, then yaw
// about +Y, then translation.
func (i *Indicator) Matrix() mat4.T {
	m := geometry.NewTransform(i.pose.Position, 0, i.pose.Yaw, 0).Matrix()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col][row] *= i.pose.Scale
		}
	}
	return m
}

// Appearance returns the current animation state for drawing
func (i *Indicator) Appearance() Appearance {
	a := i.anim.current
	a.Visible = !i.hidden
	a.Phase = i.anim.phase()
	return a
}
