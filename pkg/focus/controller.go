package focus

import (
	"sync"
	"time"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/logging"
	"github.com/philipparndt/arfocus/pkg/resolver"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
)

// TickResult is the outcome of one controller tick
type TickResult struct {
	Timestamp  time.Duration
	Tracking   tracking.State
	Resolved   resolver.Result
	Transition Transition
	State      State
	Pose       Pose
	HasPose    bool
	Appearance Appearance
}

// Controller owns an indicator and updates it once per frame from a
// tracking session. All methods are safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	session   tracking.Session
	resolver  *resolver.Resolver
	indicator *Indicator

	screen        *viewer.ScreenPoint
	infinitePlane bool
}

// NewController creates a controller for the given session
func NewController(session tracking.Session, res *resolver.Resolver, indicator *Indicator) *Controller {
	return &Controller{
		session:   session,
		resolver:  res,
		indicator: indicator,
	}
}

// SetScreenPoint overrides the resolved screen point. Nil restores the
// viewport center.
func (c *Controller) SetScreenPoint(p *viewer.ScreenPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == nil {
		c.screen = nil
		return
	}
	sp := *p
	c.screen = &sp
}

// SetAllowInfinitePlane sets whether resolution may prefer the infinite
// plane over feature hits
func (c *Controller) SetAllowInfinitePlane(allow bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infinitePlane = allow
}

// Tick resolves the current frame, updates the indicator and advances its
// animations by dt.
func (c *Controller) Tick(dt time.Duration) TickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out TickResult
	frame, ok := c.session.CurrentFrame()
	switch {
	case !ok || frame == nil:
		logging.Logger().Debug("no current frame")
		c.indicator.Hide()
	case frame.Tracking == tracking.NotAvailable:
		out.Timestamp = frame.Timestamp
		out.Tracking = frame.Tracking
		c.indicator.Hide()
	default:
		out.Timestamp = frame.Timestamp
		out.Tracking = frame.Tracking
		out.Resolved, out.Transition = c.update(frame)
	}

	c.indicator.Advance(dt)

	if out.Transition == (Transition{}) {
		out.Transition = Transition{From: c.indicator.State(), To: c.indicator.State()}
	}
	out.State = c.indicator.State()
	out.Pose, out.HasPose = c.indicator.Pose()
	out.Appearance = c.indicator.Appearance()
	return out
}

func (c *Controller) update(frame *tracking.Frame) (resolver.Result, Transition) {
	if frame.Light != nil {
		c.indicator.SetAmbient(AmbientAlpha(frame.Light.AmbientIntensity))
	}

	var screen viewer.ScreenPoint
	if c.screen != nil {
		screen = *c.screen
	} else if frame.Camera != nil {
		screen = frame.Camera.Viewport.Center()
	}

	// The infinite plane sits at the height of the smoothed indicator
	var reference *geometry.Vector3
	if pose, ok := c.indicator.Pose(); ok {
		reference = &pose.Position
	}

	res := c.resolver.Resolve(frame, screen, reference, c.infinitePlane)
	if !res.Found() {
		c.indicator.Hide()
		return res, Transition{}
	}

	tr := c.indicator.Update(*res.Position, res.Plane, frame.Camera)
	c.indicator.Unhide()
	return res, tr
}

// Indicator returns the controlled indicator. Callers must not use it
// concurrently with Tick.
func (c *Controller) Indicator() *Indicator {
	return c.indicator
}
