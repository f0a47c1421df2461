package resolver

import (
	"math"
	"testing"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test camera sits 1 m above the floor looking 45° down along -Z, so the
// center ray meets the floor at (0, 0, -1).
func testFrame(features []geometry.Vector3, planes ...tracking.PlaneAnchor) *tracking.Frame {
	pose := geometry.NewTransform(geometry.NewVector3(0, 1, 0), -math.Pi/4, 0, 0)
	return &tracking.Frame{
		Camera:   viewer.NewCamera(pose, math.Pi/3, viewer.Viewport{Width: 100, Height: 100}),
		Tracking: tracking.Normal,
		Features: features,
		Planes:   planes,
	}
}

var center = viewer.ScreenPoint{X: 50, Y: 50}

// onRay returns the point at distance t along the center ray
func onRay(t float64) geometry.Vector3 {
	s := math.Sqrt2 / 2
	return geometry.NewVector3(0, 1-t*s, -t*s)
}

func floor() tracking.PlaneAnchor {
	return tracking.NewPlaneAnchor(geometry.Identity(), geometry.Vector3{}, geometry.NewVector3(4, 0, 4))
}

func TestResolvePlaneBeatsCloserFeature(t *testing.T) {
	plane := floor()
	frame := testFrame([]geometry.Vector3{onRay(0.5)}, plane)

	res := New(DefaultConfig()).Resolve(frame, center, nil, false)

	require.True(t, res.Found())
	assert.Equal(t, SourcePlane, res.Source)
	assert.True(t, res.HitPlane)
	require.NotNil(t, res.Plane)
	assert.Equal(t, plane.ID, res.Plane.ID)
	assert.True(t, res.Position.ApproxEqual(geometry.NewVector3(0, 0, -1), 1e-9), "got %v", *res.Position)
}

func TestResolveConeFeature(t *testing.T) {
	frame := testFrame([]geometry.Vector3{onRay(1.0)})

	res := New(DefaultConfig()).Resolve(frame, center, nil, false)

	require.True(t, res.Found())
	assert.Equal(t, SourceFeatureCone, res.Source)
	assert.False(t, res.HitPlane)
	assert.Nil(t, res.Plane)
	assert.True(t, res.Position.ApproxEqual(onRay(1.0), 1e-9))
}

func TestResolveIgnoresNaNFeature(t *testing.T) {
	frame := testFrame([]geometry.Vector3{geometry.NewVector3(math.NaN(), 0.3, -0.7), onRay(1.0)})

	res := New(DefaultConfig()).Resolve(frame, center, nil, false)

	require.True(t, res.Found())
	assert.Equal(t, SourceFeatureCone, res.Source)
	assert.True(t, res.Position.ApproxEqual(onRay(1.0), 1e-9), "got %v", *res.Position)
}

func TestResolveInfinitePlaneNeedsFlagAndRequest(t *testing.T) {
	frame := testFrame([]geometry.Vector3{onRay(1.0)})
	enabled := DefaultConfig()
	enabled.InfinitePlaneDrag = true

	cases := []struct {
		name    string
		cfg     Config
		allow   bool
		want    Source
		hitPlan bool
	}{
		{"flag and request", enabled, true, SourceInfinitePlane, true},
		{"flag only", enabled, false, SourceFeatureCone, false},
		{"request only", DefaultConfig(), true, SourceFeatureCone, false},
		{"neither", DefaultConfig(), false, SourceFeatureCone, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := New(tc.cfg).Resolve(frame, center, nil, tc.allow)
			require.True(t, res.Found())
			assert.Equal(t, tc.want, res.Source)
			assert.Equal(t, tc.hitPlan, res.HitPlane)
			assert.Nil(t, res.Plane)
		})
	}
}

func TestResolveInfinitePlaneWithoutConeHit(t *testing.T) {
	// The only feature is far outside the cone.
	frame := testFrame([]geometry.Vector3{geometry.NewVector3(3, 0, 0)})
	r := New(DefaultConfig())

	res := r.Resolve(frame, center, nil, false)
	require.True(t, res.Found())
	assert.Equal(t, SourceInfinitePlane, res.Source)
	assert.True(t, res.HitPlane)
	assert.True(t, res.Position.ApproxEqual(geometry.NewVector3(0, 0, -1), 1e-9))

	ref := geometry.NewVector3(7, 0.5, 7)
	res = r.Resolve(frame, center, &ref, false)
	require.True(t, res.Found())
	assert.True(t, res.Position.ApproxEqual(geometry.NewVector3(0, 0.5, -0.5), 1e-9), "got %v", *res.Position)
}

func TestResolveClosestFeatureAsLastResort(t *testing.T) {
	feature := geometry.NewVector3(3, 0, 0)
	frame := testFrame([]geometry.Vector3{feature})
	above := geometry.NewVector3(0, 2, 0) // infinite plane behind the ray

	res := New(DefaultConfig()).Resolve(frame, center, &above, false)

	require.True(t, res.Found())
	assert.Equal(t, SourceFeatureClosest, res.Source)
	assert.False(t, res.HitPlane)
	assert.Nil(t, res.Plane)
}

func TestResolveNothing(t *testing.T) {
	above := geometry.NewVector3(0, 2, 0)
	res := New(DefaultConfig()).Resolve(testFrame(nil), center, &above, false)

	assert.False(t, res.Found())
	assert.Nil(t, res.Plane)
	assert.False(t, res.HitPlane)
	assert.Equal(t, SourceNone, res.Source)
}

func TestResolveWithoutCamera(t *testing.T) {
	r := New(DefaultConfig())

	assert.False(t, r.Resolve(nil, center, nil, true).Found())

	frame := testFrame([]geometry.Vector3{onRay(1.0)}, floor())
	frame.Camera = nil
	res := r.Resolve(frame, center, nil, true)
	assert.False(t, res.Found())
	assert.False(t, res.HitPlane)
}

type stubPlanes struct {
	hit tracking.PlaneHit
}

func (s stubPlanes) HitTestPlanes(geometry.Ray) (tracking.PlaneHit, bool) {
	return s.hit, true
}

func TestResolveUsesInjectedPlaneHitTester(t *testing.T) {
	anchor := floor()
	stub := stubPlanes{hit: tracking.PlaneHit{Position: geometry.NewVector3(9, 9, 9), Anchor: anchor}}

	res := New(DefaultConfig()).WithPlaneHitTester(stub).Resolve(testFrame(nil), center, nil, false)

	require.True(t, res.Found())
	assert.Equal(t, SourcePlane, res.Source)
	assert.Equal(t, geometry.NewVector3(9, 9, 9), *res.Position)
	assert.Equal(t, anchor.ID, res.Plane.ID)
}
