package focus

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/resolver"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = viewer.Viewport{Width: 100, Height: 100}

func newTestController(store *tracking.Store) *Controller {
	return NewController(store, resolver.New(resolver.DefaultConfig()), NewIndicator(DefaultOptions()))
}

// lookingDown puts the camera 1 m above the floor, pitched 45° down
func lookingDown() viewer.Camera {
	pose := geometry.NewTransform(geometry.NewVector3(0, 1, 0), -math.Pi/4, 0, 0)
	return *viewer.NewCamera(pose, math.Pi/3, square)
}

func lookingUp() viewer.Camera {
	pose := geometry.NewTransform(geometry.NewVector3(0, 1, 0), math.Pi/4, 0, 0)
	return *viewer.NewCamera(pose, math.Pi/3, square)
}

func TestControllerHidesWithoutFrame(t *testing.T) {
	c := newTestController(tracking.NewStore())

	res := c.Tick(16 * time.Millisecond)

	assert.False(t, res.Appearance.Visible)
	assert.False(t, res.HasPose)
	assert.False(t, res.Resolved.Found())
}

func TestControllerClosesOnPlane(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(time.Second, lookingDown())
	store.SetTrackingState(tracking.Normal)
	anchor := tracking.NewPlaneAnchor(geometry.Identity(), geometry.Vector3{}, geometry.NewVector3(4, 0, 4))
	require.NoError(t, store.UpsertPlane(anchor))

	c := newTestController(store)
	res := c.Tick(16 * time.Millisecond)

	assert.Equal(t, time.Second, res.Timestamp)
	assert.Equal(t, resolver.SourcePlane, res.Resolved.Source)
	assert.True(t, res.Transition.Flash)
	assert.Equal(t, Closed, res.State)
	assert.True(t, res.Appearance.Visible)
	require.True(t, res.HasPose)
	assert.True(t, res.Pose.Position.ApproxEqual(geometry.NewVector3(0, 0, -1), 1e-9))
	assert.True(t, c.Indicator().Visited(anchor.ID))
}

func TestControllerOpensOnInfinitePlane(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Limited)

	c := newTestController(store)
	res := c.Tick(16 * time.Millisecond)

	assert.Equal(t, resolver.SourceInfinitePlane, res.Resolved.Source)
	assert.Equal(t, Open, res.State)
	assert.True(t, res.Appearance.Visible)
}

func TestControllerHidesWhenTrackingUnavailable(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Normal)

	c := newTestController(store)
	require.True(t, c.Tick(0).Appearance.Visible)

	store.SetTrackingState(tracking.NotAvailable)
	res := c.Tick(0)
	assert.False(t, res.Appearance.Visible)
	assert.Equal(t, tracking.NotAvailable, res.Tracking)
}

func TestControllerHidesWhenNothingResolves(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Normal)

	c := newTestController(store)
	require.True(t, c.Tick(0).Appearance.Visible)

	// Looking up at the sky: no planes, no features, the floor is behind
	store.SetCamera(time.Second, lookingUp())
	res := c.Tick(0)
	assert.False(t, res.Resolved.Found())
	assert.False(t, res.Appearance.Visible)
	// The last pose survives for when the indicator comes back
	assert.True(t, res.HasPose)
}

func TestControllerUsesSmoothedPositionAsReference(t *testing.T) {
	store := tracking.NewStore()
	store.SetTrackingState(tracking.Normal)
	store.SetCamera(0, lookingDown())
	s := math.Sqrt2 / 2
	near := geometry.NewVector3(0, 1-0.5*s, -0.5*s)
	far := geometry.NewVector3(0, 1-s, -s)

	c := newTestController(store)
	c.SetAllowInfinitePlane(true)

	// Two feature hits on the center ray at 0.5 m and 1 m
	store.SetFeatures([]geometry.Vector3{near})
	require.Equal(t, resolver.SourceFeatureCone, c.Tick(0).Resolved.Source)
	store.SetFeatures([]geometry.Vector3{far})
	require.Equal(t, resolver.SourceFeatureCone, c.Tick(0).Resolved.Source)

	// Without features the infinite plane is taken at the averaged height,
	// not at the last raw hit
	store.SetFeatures(nil)
	res := c.Tick(0)
	require.Equal(t, resolver.SourceInfinitePlane, res.Resolved.Source)
	assert.InDelta(t, 1-0.75*s, res.Resolved.Position.Y, 1e-9)
	assert.InDelta(t, far.Y, c.Indicator().LastPosition().Y, 1e-9)
}

func TestControllerScreenPointOverride(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Normal)

	c := newTestController(store)
	c.SetScreenPoint(&viewer.ScreenPoint{X: 50, Y: 0})
	top := c.Tick(0)
	c.SetScreenPoint(nil)
	center := c.Tick(0)

	require.True(t, top.Resolved.Found())
	require.True(t, center.Resolved.Found())
	// The top edge of the screen looks further away
	assert.Less(t, top.Resolved.Position.Z, center.Resolved.Position.Z)
}

func TestControllerAmbientFromLightEstimate(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Normal)

	c := newTestController(store)
	assert.Equal(t, 1.0, c.Tick(0).Appearance.Ambient)

	store.SetLight(tracking.LightEstimate{AmbientIntensity: 600})
	assert.InDelta(t, 0.3, c.Tick(0).Appearance.Ambient, 1e-12)
}

func TestControllerConcurrentTicks(t *testing.T) {
	store := tracking.NewStore()
	store.SetCamera(0, lookingDown())
	store.SetTrackingState(tracking.Normal)
	c := newTestController(store)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Tick(time.Millisecond)
				c.SetAllowInfinitePlane(j%2 == 0)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			store.SetFeatures([]geometry.Vector3{geometry.NewVector3(0, 0.5, -0.5)})
		}
	}()
	wg.Wait()

	assert.True(t, c.Tick(0).Appearance.Visible)
}
